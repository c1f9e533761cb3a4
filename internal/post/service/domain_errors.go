package service

import (
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
)

var ErrTextRequired = commonerrors.NewDomainError(
	"TEXT_REQUIRED",
	commonerrors.CategoryValidation,
	http.StatusBadRequest,
	"post text is required",
)
