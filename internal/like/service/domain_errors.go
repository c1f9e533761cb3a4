package service

import (
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
)

var (
	ErrUUIDRequired = commonerrors.NewDomainError(
		"UUID_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"post uuid is required",
	)

	ErrPostNotFound = commonerrors.NewDomainError(
		"POST_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"post not found",
	)
)
