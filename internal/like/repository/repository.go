package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"

	"github.com/socialnet/api/internal/common/db"
	"github.com/socialnet/api/internal/like/domain"
)

var ErrConcurrentToggle = errors.New("like was inserted concurrently")

const table = "likes"

type Repository interface {
	Toggle(ctx context.Context, userID, postID int64) (domain.ToggleResult, error)
	CreatedAtBetween(ctx context.Context, postID int64, from, to time.Time) ([]time.Time, error)
}

type PgRepository struct {
	q  db.Querier
	tx db.TxManager
}

func NewPgRepository(q db.Querier, tx db.TxManager) *PgRepository {
	return &PgRepository{q: q, tx: tx}
}

// Toggle serialises on a per-(user, post) advisory lock, then deletes the like if present or inserts it otherwise.
func (r *PgRepository) Toggle(ctx context.Context, userID, postID int64) (domain.ToggleResult, error) {
	start := time.Now()
	var result domain.ToggleResult

	err := r.tx.WithTx(ctx, func(ctx context.Context, q db.Querier) error {
		lockKey := fmt.Sprintf("like:%d:%d", userID, postID)
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			result = domain.ToggleResult{Outcome: domain.OutcomeUnliked}
			return nil
		}

		like := domain.Like{UserID: userID, PostID: postID}
		err = q.QueryRow(
			ctx,
			`INSERT INTO likes (user_id, post_id) VALUES ($1, $2)
			 ON CONFLICT (user_id, post_id) DO NOTHING
			 RETURNING id, created_at`,
			userID,
			postID,
		).Scan(&like.ID, &like.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrConcurrentToggle
		}
		if err != nil {
			return err
		}
		result = domain.ToggleResult{Outcome: domain.OutcomeLiked, Like: like}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConcurrentToggle) {
			db.MeasureQueryDuration("toggle like", table, start)
			return domain.ToggleResult{}, err
		}
		return domain.ToggleResult{}, db.HandleExecError(err, "toggle like", table, start)
	}

	db.MeasureQueryDuration("toggle like", table, start)
	return result, nil
}

// CreatedAtBetween returns like timestamps for a post in the half-open interval [from, to).
func (r *PgRepository) CreatedAtBetween(ctx context.Context, postID int64, from, to time.Time) ([]time.Time, error) {
	start := time.Now()
	rows, err := r.q.Query(
		ctx,
		`SELECT created_at FROM likes WHERE post_id = $1 AND created_at >= $2 AND created_at < $3 ORDER BY created_at`,
		postID,
		from,
		to,
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list like timestamps", table, start)
	}
	defer rows.Close()

	stamps := make([]time.Time, 0)
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, db.HandleExecError(err, "scan like timestamp", table, start)
		}
		stamps = append(stamps, ts)
	}
	return stamps, db.HandleExecError(rows.Err(), "list like timestamps", table, start)
}
