package repository

import (
	"context"
	"errors"
	"time"

	"github.com/socialnet/api/internal/common/db"
	"github.com/socialnet/api/internal/post/domain"
)

var ErrPostNotFound = errors.New("post not found")

const table = "posts"

type Repository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	FindByUUID(ctx context.Context, uuid string) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
}

type PgRepository struct {
	q db.Querier
}

func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

func (r *PgRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	start := time.Now()
	err := r.q.QueryRow(
		ctx,
		`INSERT INTO posts (uuid, author_id, text) VALUES ($1, $2, $3) RETURNING id, created_at`,
		post.UUID,
		post.AuthorID,
		post.Text,
	).Scan(&post.ID, &post.CreatedAt)
	if err := db.HandleQueryError(err, ErrPostNotFound, "create post", table, start); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// FindByUUID expects a syntactically valid uuid; callers screen malformed input first.
func (r *PgRepository) FindByUUID(ctx context.Context, uuid string) (domain.Post, error) {
	start := time.Now()
	var p domain.Post
	err := r.q.QueryRow(
		ctx,
		`SELECT id, uuid, author_id, text, created_at FROM posts WHERE uuid = $1`,
		uuid,
	).Scan(&p.ID, &p.UUID, &p.AuthorID, &p.Text, &p.CreatedAt)
	if err := db.HandleQueryError(err, ErrPostNotFound, "find post by uuid", table, start); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Post, error) {
	start := time.Now()
	rows, err := r.q.Query(ctx, `SELECT id, uuid, author_id, text, created_at FROM posts ORDER BY id`)
	if err != nil {
		return nil, db.HandleExecError(err, "list posts", table, start)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UUID, &p.AuthorID, &p.Text, &p.CreatedAt); err != nil {
			return nil, db.HandleExecError(err, "scan post", table, start)
		}
		posts = append(posts, p)
	}
	return posts, db.HandleExecError(rows.Err(), "list posts", table, start)
}
