package http

import (
	"context"
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/mapper"
	"github.com/socialnet/api/internal/user/domain"
	"github.com/socialnet/api/internal/user/service"
)

type UserService interface {
	Register(ctx context.Context, input service.RegisterInput) (string, error)
	List(ctx context.Context) ([]domain.User, error)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	users UserService
	errs  *commonhttp.ErrorHandler
	log   *logger.Logger
}

func NewHandler(users UserService, errs *commonhttp.ErrorHandler, log *logger.Logger) *Handler {
	return &Handler{users: users, errs: errs, log: log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.UsersToDTO(users))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_no_arguments"}).Warnf("register failed: %v", err)
		h.errs.HandleError(w, r, commonerrors.ErrNoArguments.WithCause(err))
		return
	}

	token, err := h.users.Register(r.Context(), input)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
