package http

import (
	"context"
	"errors"
	"net/http"

	authhttp "github.com/socialnet/api/internal/auth/http"
	"github.com/socialnet/api/internal/common/dto"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/mapper"
	"github.com/socialnet/api/internal/like/domain"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

type LikeService interface {
	Toggle(ctx context.Context, user userdomain.User, postUUID string) (domain.ToggleResult, error)
}

type toggleRequest struct {
	UUID string `json:"uuid"`
}

type Handler struct {
	likes LikeService
	errs  *commonhttp.ErrorHandler
	log   *logger.Logger
}

func NewHandler(likes LikeService, errs *commonhttp.ErrorHandler, log *logger.Logger) *Handler {
	return &Handler{likes: likes, errs: errs, log: log}
}

// Toggle must be mounted behind authhttp.RequireUser.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := authhttp.UserFromContext(r.Context())
	if !ok {
		h.errs.HandleError(w, r, commonerrors.ErrInternalError.WithCause(errors.New("no authenticated user in context")))
		return
	}

	var req toggleRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil && !errors.Is(err, commonhttp.ErrEmptyBody) {
		h.errs.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	result, err := h.likes.Toggle(r.Context(), user, req.UUID)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	if result.Outcome == domain.OutcomeUnliked {
		commonhttp.WriteJSON(w, http.StatusOK, dto.Message{Message: "post unliked"})
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.LikeToDTO(result.Like))
}
