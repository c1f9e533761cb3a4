package repository

import (
	"context"
	"errors"
	"time"

	"github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/common/db"
)

var errNoRow = errors.New("activity insert returned no row")

const table = "activity_log"

type Repository interface {
	Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error)
}

type PgRepository struct {
	q db.Querier
}

func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

func (r *PgRepository) Insert(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	start := time.Now()
	err := r.q.QueryRow(
		ctx,
		`INSERT INTO activity_log (user_id, post_id, action) VALUES ($1, $2, $3) RETURNING id, created_at`,
		entry.UserID,
		entry.PostID,
		entry.Action,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err := db.HandleQueryError(err, errNoRow, "insert activity", table, start); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

// ListByUser returns entries in insertion order.
func (r *PgRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Entry, error) {
	start := time.Now()
	rows, err := r.q.Query(
		ctx,
		`SELECT id, user_id, post_id, action, created_at FROM activity_log WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list activity", table, start)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.PostID, &e.Action, &e.CreatedAt); err != nil {
			return nil, db.HandleExecError(err, "scan activity", table, start)
		}
		entries = append(entries, e)
	}
	return entries, db.HandleExecError(rows.Err(), "list activity", table, start)
}
