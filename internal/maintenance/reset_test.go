package maintenance

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/socialnet/api/internal/common/db"
	"github.com/socialnet/api/internal/common/logger"
)

type recordingQuerier struct {
	statements []string
	failOn     string
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	if sql == q.failOn {
		return nil, errors.New("boom")
	}
	q.statements = append(q.statements, sql)
	return pgconn.CommandTag("DELETE 3"), nil
}

func (q *recordingQuerier) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

type fakeTx struct {
	q          *recordingQuerier
	rolledBack bool
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context, q db.Querier) error) error {
	err := fn(ctx, f.q)
	f.rolledBack = err != nil
	return err
}

func TestReset_ClearsTablesInDependencyOrder(t *testing.T) {
	tx := &fakeTx{q: &recordingQuerier{}}
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR")

	if err := Reset(context.Background(), tx, log); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{
		"DELETE FROM activity_log",
		"DELETE FROM likes",
		"DELETE FROM posts",
		"DELETE FROM users",
	}
	if !reflect.DeepEqual(tx.q.statements, want) {
		t.Errorf("expected %v, got %v", want, tx.q.statements)
	}
}

func TestReset_StopsAndRollsBackOnFailure(t *testing.T) {
	tx := &fakeTx{q: &recordingQuerier{failOn: "DELETE FROM posts"}}
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR")

	if err := Reset(context.Background(), tx, log); err == nil {
		t.Fatal("expected error")
	}
	if !tx.rolledBack {
		t.Error("expected transaction to be rolled back")
	}
	if len(tx.q.statements) != 2 {
		t.Errorf("expected to stop after two statements, got %v", tx.q.statements)
	}
}
