package service

import (
	"context"
	"unicode/utf8"

	"github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/activity/repository"
	"github.com/socialnet/api/internal/common/constants"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/observability/metrics"
)

type Recorder interface {
	Record(ctx context.Context, entry domain.Entry) error
}

type PgRecorder struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewRecorder(repo repository.Repository, log *logger.Logger) *PgRecorder {
	return &PgRecorder{repo: repo, log: log}
}

func (r *PgRecorder) Record(ctx context.Context, entry domain.Entry) error {
	entry.Action = truncateRunes(entry.Action, constants.ActionMaxLength)

	saved, err := r.repo.Insert(ctx, entry)
	if err != nil {
		r.log.WithFields(ctx, logger.Fields{
			"action":   "activity_record_failed",
			"activity": entry.Action,
		}).Errorf("failed to record activity: %v", err)
		return err
	}

	metrics.ActivityEntriesWritten.Inc()
	r.log.WithFields(ctx, logger.Fields{
		"action":      "activity_recorded",
		"activity_id": saved.ID,
	}).Debug(entry.Action)
	return nil
}

// truncateRunes cuts s to at most n characters; the column limit counts characters, not bytes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func Ref(id int64) *int64 {
	return &id
}
