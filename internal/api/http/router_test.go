package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	activitydomain "github.com/socialnet/api/internal/activity/domain"
	analyticshttp "github.com/socialnet/api/internal/analytics/http"
	analyticsservice "github.com/socialnet/api/internal/analytics/service"
	authhttp "github.com/socialnet/api/internal/auth/http"
	authservice "github.com/socialnet/api/internal/auth/service"
	"github.com/socialnet/api/internal/common/clock"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
	likedomain "github.com/socialnet/api/internal/like/domain"
	likehttp "github.com/socialnet/api/internal/like/http"
	postdomain "github.com/socialnet/api/internal/post/domain"
	posthttp "github.com/socialnet/api/internal/post/http"
	userdomain "github.com/socialnet/api/internal/user/domain"
	userhttp "github.com/socialnet/api/internal/user/http"
	userrepo "github.com/socialnet/api/internal/user/repository"
	userservice "github.com/socialnet/api/internal/user/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubUsers struct{}

func (stubUsers) Register(context.Context, userservice.RegisterInput) (string, error) { return "t", nil }
func (stubUsers) List(context.Context) ([]userdomain.User, error)                     { return nil, nil }
func (stubUsers) FindByUsername(_ context.Context, username string) (userdomain.User, error) {
	if username == "pete" {
		return userdomain.User{ID: 1, Username: "pete"}, nil
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

type stubPosts struct {
	created int
}

func (s *stubPosts) Create(_ context.Context, author userdomain.User, text string) (postdomain.Post, error) {
	s.created++
	return postdomain.Post{ID: 1, AuthorID: author.ID, Text: text, CreatedAt: time.Now()}, nil
}

func (s *stubPosts) List(context.Context) ([]postdomain.Post, error) { return nil, nil }

type stubLikes struct{}

func (stubLikes) Toggle(context.Context, userdomain.User, string) (likedomain.ToggleResult, error) {
	return likedomain.ToggleResult{Outcome: likedomain.OutcomeUnliked}, nil
}

type stubAnalytics struct{}

func (stubAnalytics) UserStatistics(context.Context, string) ([]activitydomain.Entry, error) {
	return nil, nil
}

func (stubAnalytics) LikeStatistics(context.Context, analyticsservice.LikeRange) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type stubLogin struct{}

func (stubLogin) Login(context.Context, string, string) (string, error) { return "t", nil }

func newTestRouter(t *testing.T, posts *stubPosts, tokens *authservice.TokenIssuer) *Router {
	t.Helper()
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR")
	errs := commonhttp.NewErrorHandler(log)

	rt := NewRouter(RouterConfig{
		Handlers: Handlers{
			Users:     userhttp.NewHandler(stubUsers{}, errs, log),
			Posts:     posthttp.NewHandler(posts, errs, log),
			Likes:     likehttp.NewHandler(stubLikes{}, errs, log),
			Analytics: analyticshttp.NewHandler(stubAnalytics{}, errs, log),
			Login:     authhttp.NewHandler(stubLogin{}, errs, log),
		},
		Authenticator:  authservice.NewGate(tokens, stubUsers{}, log),
		Errors:         errs,
		AllowedOrigins: []string{"http://localhost:3000"},
		Log:            log,
	})
	t.Cleanup(rt.Stop)
	return rt
}

func TestRouter_CreatePostWithoutTokenIsRejected(t *testing.T) {
	posts := &stubPosts{}
	rt := newTestRouter(t, posts, authservice.NewTokenIssuer(testSecret, time.Minute, clock.NewRealClock()))

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"text":"hi"}`))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var env commonhttp.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != authservice.ErrTokenRequired.Code() {
		t.Errorf("expected %s, got %s", authservice.ErrTokenRequired.Code(), env.Code)
	}
	if posts.created != 0 {
		t.Error("post creation must not be reached")
	}
}

func TestRouter_CreatePostWithToken(t *testing.T) {
	posts := &stubPosts{}
	tokens := authservice.NewTokenIssuer(testSecret, time.Minute, clock.NewRealClock())
	rt := newTestRouter(t, posts, tokens)

	token, err := tokens.IssueToken("pete", "login")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set("X-Api-Key", token)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if posts.created != 1 {
		t.Errorf("expected one post created, got %d", posts.created)
	}
}

func TestRouter_ExpiredTokenIsRejected(t *testing.T) {
	mock := clock.NewMockClock(time.Now())
	tokens := authservice.NewTokenIssuer(testSecret, 30*time.Minute, mock)
	rt := newTestRouter(t, &stubPosts{}, tokens)

	token, _ := tokens.IssueToken("pete", "login")
	mock.Advance(31 * time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/api/like", strings.NewReader(`{"uuid":"x"}`))
	req.Header.Set("X-Api-Key", token)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)

	var env commonhttp.ErrorEnvelope
	_ = json.NewDecoder(rec.Body).Decode(&env)
	if rec.Code != http.StatusUnauthorized || env.Code != authservice.ErrTokenExpired.Code() {
		t.Errorf("expected expired token rejection, got %d %s", rec.Code, env.Code)
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	rt := newTestRouter(t, &stubPosts{}, authservice.NewTokenIssuer(testSecret, time.Minute, clock.NewRealClock()))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/posts", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRouter_HealthWithoutDependencies(t *testing.T) {
	rt := newTestRouter(t, &stubPosts{}, authservice.NewTokenIssuer(testSecret, time.Minute, clock.NewRealClock()))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Trace-ID") == "" {
		t.Error("expected trace id header")
	}
}
