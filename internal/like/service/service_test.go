package service_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"strings"
	"testing"
	"time"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/common/cache"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/like/domain"
	"github.com/socialnet/api/internal/like/service"
	postdomain "github.com/socialnet/api/internal/post/domain"
	postrepo "github.com/socialnet/api/internal/post/repository"
	userdomain "github.com/socialnet/api/internal/user/domain"
)

const postUUID = "0b1c9f8e-3c1a-4a8e-9d0e-6a4b2f1c7d55"

type memoryLikes struct {
	mu    sync.Mutex
	likes map[[2]int64]domain.Like
}

func (m *memoryLikes) Toggle(_ context.Context, userID, postID int64) (domain.ToggleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int64{userID, postID}
	if _, ok := m.likes[key]; ok {
		delete(m.likes, key)
		return domain.ToggleResult{Outcome: domain.OutcomeUnliked}, nil
	}
	like := domain.Like{ID: int64(len(m.likes) + 1), UserID: userID, PostID: postID, CreatedAt: time.Now()}
	m.likes[key] = like
	return domain.ToggleResult{Outcome: domain.OutcomeLiked, Like: like}, nil
}

func (m *memoryLikes) CreatedAtBetween(context.Context, int64, time.Time, time.Time) ([]time.Time, error) {
	return nil, nil
}

type mockPostLookup struct{}

func (mockPostLookup) FindByUUID(_ context.Context, uuid string) (postdomain.Post, error) {
	if uuid == postUUID {
		return postdomain.Post{ID: 4, UUID: uuid}, nil
	}
	return postdomain.Post{}, postrepo.ErrPostNotFound
}

type memoryRecorder struct {
	mu      sync.Mutex
	entries []activitydomain.Entry
}

func (r *memoryRecorder) Record(_ context.Context, e activitydomain.Entry) error {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
	return nil
}

func (r *memoryRecorder) last() activitydomain.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[len(r.entries)-1]
}

type countingCache struct {
	cache.NoopLikeStatsCache
	invalidated atomic.Int32
}

func (c *countingCache) Invalidate(context.Context, int64) error {
	c.invalidated.Add(1)
	return nil
}

func newService() (*service.LikeService, *memoryLikes, *memoryRecorder, *countingCache) {
	likes := &memoryLikes{likes: make(map[[2]int64]domain.Like)}
	rec := &memoryRecorder{}
	stats := &countingCache{}
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR")
	return service.NewLikeService(likes, mockPostLookup{}, rec, stats, log), likes, rec, stats
}

func TestToggle_Alternates(t *testing.T) {
	svc, _, rec, stats := newService()
	user := userdomain.User{ID: 2}

	want := []domain.Outcome{domain.OutcomeLiked, domain.OutcomeUnliked, domain.OutcomeLiked}
	wantActions := []string{"liked post", "unliked post", "liked post"}
	for i, outcome := range want {
		result, err := svc.Toggle(context.Background(), user, postUUID)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if result.Outcome != outcome {
			t.Errorf("toggle %d: expected %s, got %s", i, outcome, result.Outcome)
		}
		last := rec.last()
		if last.Action != wantActions[i] || *last.UserID != 2 || *last.PostID != 4 {
			t.Errorf("toggle %d: unexpected activity %+v", i, last)
		}
	}

	if n := stats.invalidated.Load(); n != 3 {
		t.Errorf("expected cache invalidated per toggle, got %d", n)
	}
}

func TestToggle_ConcurrentPairsLeaveConsistentState(t *testing.T) {
	svc, likes, _, _ := newService()
	user := userdomain.User{ID: 2}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Toggle(context.Background(), user, postUUID)
		}()
	}
	wg.Wait()

	if n := len(likes.likes); n != 0 {
		t.Errorf("expected an even number of toggles to leave no like, got %d", n)
	}
}

func TestToggle_MissingUUID(t *testing.T) {
	svc, _, rec, _ := newService()

	_, err := svc.Toggle(context.Background(), userdomain.User{ID: 2}, "")
	if !errors.Is(err, service.ErrUUIDRequired) {
		t.Fatalf("expected ErrUUIDRequired, got %v", err)
	}
	if last := rec.last(); last.Action != "tried to like post without uuid" || *last.UserID != 2 {
		t.Errorf("unexpected activity %+v", last)
	}
}

func TestToggle_UnknownPost(t *testing.T) {
	svc, _, rec, _ := newService()
	unknown := "11111111-2222-4333-8444-555555555555"

	_, err := svc.Toggle(context.Background(), userdomain.User{ID: 2}, unknown)
	if !errors.Is(err, service.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if last := rec.last(); last.Action != "tried to like not existing post: "+unknown {
		t.Errorf("unexpected activity %+v", last)
	}
}

func TestToggle_MalformedUUIDIsUnknownPost(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.Toggle(context.Background(), userdomain.User{ID: 2}, "not-a-uuid")
	if !errors.Is(err, service.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestToggle_NonCanonicalUUIDForms(t *testing.T) {
	svc, _, _, _ := newService()
	user := userdomain.User{ID: 2}

	for _, raw := range []string{"urn:uuid:" + postUUID, "{" + postUUID + "}"} {
		if _, err := svc.Toggle(context.Background(), user, raw); !errors.Is(err, service.ErrPostNotFound) {
			t.Errorf("%q: expected ErrPostNotFound, got %v", raw, err)
		}
	}

	result, err := svc.Toggle(context.Background(), user, strings.ToUpper(postUUID))
	if err != nil {
		t.Fatalf("expected upper-case uuid to resolve, got %v", err)
	}
	if result.Outcome != domain.OutcomeLiked {
		t.Errorf("expected liked, got %s", result.Outcome)
	}
}
