package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/social?sslmode=disable", "pgx://u:p@localhost:5432/social?sslmode=disable"},
		{"postgresql://u:p@db/social", "pgx://u:p@db/social"},
		{"pgx://u:p@db/social", "pgx://u:p@db/social"},
	}

	for _, tt := range tests {
		if got := migrateURL(tt.in); got != tt.want {
			t.Errorf("migrateURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !IsUniqueViolation(wrapped) {
		t.Error("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected foreign key violation not to match")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("expected plain error not to match")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&pgconn.PgError{Code: "40P01"}) {
		t.Error("expected deadlock to be retryable")
	}
	if IsRetryable(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected unique violation not to be retryable")
	}
	if IsRetryable(errors.New("boom")) {
		t.Error("expected plain error not to be retryable")
	}
}
