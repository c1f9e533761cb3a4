package service_test

import (
	"context"
	"sync"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	"github.com/socialnet/api/internal/user/domain"
	"github.com/socialnet/api/internal/user/repository"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	users  []domain.User
	nextID int64
	events *[]string
}

func (r *memoryUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.User{}, repository.ErrUsernameAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, user)
	if r.events != nil {
		*r.events = append(*r.events, "create:"+user.Username)
	}
	return user, nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (r *memoryUserRepo) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.User(nil), r.users...), nil
}

type memoryRecorder struct {
	entries []activitydomain.Entry
	events  *[]string
}

func (r *memoryRecorder) Record(_ context.Context, entry activitydomain.Entry) error {
	r.entries = append(r.entries, entry)
	if r.events != nil {
		*r.events = append(*r.events, "activity:"+entry.Action)
	}
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) error  { return nil }

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return "00000000-0000-4000-8000-00000000000" + string(rune('0'+g.n)), nil
}

type stubTokens struct{}

func (stubTokens) IssueToken(username, _ string) (string, error) { return "token-for-" + username, nil }
