package service

import (
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
)

var (
	ErrUsernameRequired = commonerrors.NewDomainError(
		"USERNAME_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username is required",
	)

	ErrInvalidUsername = commonerrors.NewDomainError(
		"INVALID_USERNAME",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid username",
	)

	ErrUUIDRequired = commonerrors.NewDomainError(
		"UUID_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"uuid is required",
	)

	// ErrUnknownPost is a 400 rather than a 404 on the statistics endpoint.
	ErrUnknownPost = commonerrors.NewDomainError(
		"UNKNOWN_POST",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid post uuid",
	)
)
