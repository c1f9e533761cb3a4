package http

import (
	"context"
	"net/http"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/analytics/service"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/mapper"
)

type AnalyticsService interface {
	UserStatistics(ctx context.Context, username string) ([]activitydomain.Entry, error)
	LikeStatistics(ctx context.Context, in service.LikeRange) (map[string]int64, error)
}

type Handler struct {
	analytics AnalyticsService
	errs      *commonhttp.ErrorHandler
	log       *logger.Logger
}

func NewHandler(analytics AnalyticsService, errs *commonhttp.ErrorHandler, log *logger.Logger) *Handler {
	return &Handler{analytics: analytics, errs: errs, log: log}
}

func (h *Handler) UserStatistics(w http.ResponseWriter, r *http.Request) {
	params, err := commonhttp.Params(r)
	if err != nil {
		h.errs.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	entries, err := h.analytics.UserStatistics(r.Context(), params["username"])
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.ActivitiesToDTO(entries))
}

func (h *Handler) LikeStatistics(w http.ResponseWriter, r *http.Request) {
	params, err := commonhttp.Params(r)
	if err != nil {
		h.errs.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	stats, err := h.analytics.LikeStatistics(r.Context(), service.LikeRange{
		UUID:      params["uuid"],
		StartDate: params["start_date"],
		EndDate:   params["end_date"],
	})
	if err != nil {
		h.errs.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, stats)
}
