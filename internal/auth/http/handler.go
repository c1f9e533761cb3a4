package http

import (
	"context"
	"net/http"

	commonerrors "github.com/socialnet/api/internal/common/errors"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
)

type LoginService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	login LoginService
	errs  *commonhttp.ErrorHandler
	log   *logger.Logger
}

func NewHandler(login LoginService, errs *commonhttp.ErrorHandler, log *logger.Logger) *Handler {
	return &Handler{login: login, errs: errs, log: log}
}

// Login takes HTTP Basic credentials first, then the JSON body, then query parameters.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		params, err := commonhttp.Params(r)
		if err != nil {
			h.log.WithFields(r.Context(), logger.Fields{"action": "login_invalid_payload"}).Warnf("login failed: %v", err)
			h.errs.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
			return
		}
		username, password = params["username"], params["password"]
	}

	token, err := h.login.Login(r.Context(), username, password)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token})
}
