package repository

import (
	"context"
	"errors"
	"time"

	"github.com/socialnet/api/internal/common/db"
	"github.com/socialnet/api/internal/user/domain"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

const table = "users"

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type PgRepository struct {
	q db.Querier
}

func NewPgRepository(q db.Querier) *PgRepository {
	return &PgRepository{q: q}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	err := r.q.QueryRow(
		ctx,
		`INSERT INTO users (uuid, name, surname, username, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		user.UUID,
		user.Name,
		user.Surname,
		user.Username,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil && db.IsUniqueViolation(err) {
		db.MeasureQueryDuration("create user", table, start)
		return domain.User{}, ErrUsernameAlreadyExists
	}
	if err := db.HandleQueryError(err, ErrUserNotFound, "create user", table, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

const selectUser = `SELECT id, uuid, name, surname, username, password_hash, created_at FROM users`

func scanUser(row interface{ Scan(dest ...interface{}) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.UUID, &u.Name, &u.Surname, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()
	user, err := scanUser(r.q.QueryRow(ctx, selectUser+` WHERE username = $1`, username))
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by username", table, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	rows, err := r.q.Query(ctx, selectUser+` ORDER BY id`)
	if err != nil {
		return nil, db.HandleExecError(err, "list users", table, start)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, db.HandleExecError(err, "scan user", table, start)
		}
		users = append(users, u)
	}
	return users, db.HandleExecError(rows.Err(), "list users", table, start)
}
