package service

import (
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
)

// ErrUserRejected keeps the 404 status clients of the registration endpoint already depend on.
var ErrUserRejected = commonerrors.NewDomainError(
	"USER_REJECTED",
	commonerrors.CategoryConflict,
	http.StatusNotFound,
	"cant create user",
)
