package service

import (
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
)

var (
	ErrTokenRequired = commonerrors.NewDomainError(
		"TOKEN_REQUIRED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"token required",
	)

	ErrTokenExpired = commonerrors.NewDomainError(
		"TOKEN_EXPIRED",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"token expired",
	)

	ErrWrongToken = commonerrors.NewDomainError(
		"WRONG_TOKEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"wrong token",
	)

	ErrInvalidUser = commonerrors.NewDomainError(
		"INVALID_USER",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid user",
	)

	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)
)
