package http

import (
	"context"
	"errors"
	"net/http"

	authhttp "github.com/socialnet/api/internal/auth/http"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/mapper"
	"github.com/socialnet/api/internal/post/domain"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

type PostService interface {
	Create(ctx context.Context, author userdomain.User, text string) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
}

type createPostRequest struct {
	Text string `json:"text"`
}

type Handler struct {
	posts PostService
	errs  *commonhttp.ErrorHandler
	log   *logger.Logger
}

func NewHandler(posts PostService, errs *commonhttp.ErrorHandler, log *logger.Logger) *Handler {
	return &Handler{posts: posts, errs: errs, log: log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.PostsToDTO(posts))
}

// Create must be mounted behind authhttp.RequireUser.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := authhttp.UserFromContext(r.Context())
	if !ok {
		h.errs.HandleError(w, r, commonerrors.ErrInternalError.WithCause(errors.New("no authenticated user in context")))
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil && !errors.Is(err, commonhttp.ErrEmptyBody) {
		h.errs.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	post, err := h.posts.Create(r.Context(), author, req.Text)
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, mapper.PostToDTO(post))
}
