package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/post/domain"
	"github.com/socialnet/api/internal/post/service"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

type mockRepository struct {
	createFunc func(ctx context.Context, post domain.Post) (domain.Post, error)
}

func (m *mockRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	return m.createFunc(ctx, post)
}

func (m *mockRepository) FindByUUID(context.Context, string) (domain.Post, error) {
	return domain.Post{}, errors.New("not implemented")
}

func (m *mockRepository) List(context.Context) ([]domain.Post, error) {
	return nil, nil
}

type memoryRecorder struct {
	entries []activitydomain.Entry
}

func (r *memoryRecorder) Record(_ context.Context, e activitydomain.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

type fixedID struct{}

func (fixedID) NewID() (string, error) { return "0b1c9f8e-3c1a-4a8e-9d0e-6a4b2f1c7d55", nil }

func TestCreate_EmptyTextRecordsAttempt(t *testing.T) {
	repo := &mockRepository{createFunc: func(context.Context, domain.Post) (domain.Post, error) {
		t.Fatal("repository must not be called")
		return domain.Post{}, nil
	}}
	rec := &memoryRecorder{}
	svc := service.NewPostService(repo, fixedID{}, rec, logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR"))

	_, err := svc.Create(context.Background(), userdomain.User{ID: 5}, "")
	if !errors.Is(err, service.ErrTextRequired) {
		t.Fatalf("expected ErrTextRequired, got %v", err)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != "tried to add post without text" || *rec.entries[0].UserID != 5 {
		t.Errorf("unexpected activity %+v", rec.entries)
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRepository{createFunc: func(_ context.Context, p domain.Post) (domain.Post, error) {
		p.ID = 11
		return p, nil
	}}
	rec := &memoryRecorder{}
	svc := service.NewPostService(repo, fixedID{}, rec, logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR"))

	post, err := svc.Create(context.Background(), userdomain.User{ID: 5}, "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if post.AuthorID != 5 || post.UUID == "" {
		t.Errorf("unexpected post %+v", post)
	}

	e := rec.entries[0]
	if e.Action != "new post added" || *e.UserID != 5 || *e.PostID != 11 {
		t.Errorf("unexpected activity %+v", e)
	}
}
