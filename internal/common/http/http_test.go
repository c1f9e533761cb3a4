package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/socialnet/api/internal/common/constants"
	commonerrors "github.com/socialnet/api/internal/common/errors"
	"github.com/socialnet/api/internal/common/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(&bytes.Buffer{}, "test", "DEBUG")
}

func TestErrorHandler_DomainError(t *testing.T) {
	h := NewErrorHandler(testLogger())
	err := commonerrors.ErrNoArguments.WithDetails(map[string]any{"name": nil})

	req := httptest.NewRequest(http.MethodPost, "/api/user", nil)
	req = req.WithContext(context.WithValue(req.Context(), constants.TraceIDKey, "trace-1"))
	rec := httptest.NewRecorder()

	h.HandleError(rec, req, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var env ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != "NO_ARGUMENTS" || env.Message != "no arguments passed" {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if env.TraceID != "trace-1" {
		t.Errorf("expected trace id in envelope, got %q", env.TraceID)
	}
	if _, ok := env.Details["name"]; !ok {
		t.Errorf("expected details to carry name, got %v", env.Details)
	}
}

func TestErrorHandler_UnauthorizedSetsChallenge(t *testing.T) {
	h := NewErrorHandler(testLogger())
	err := commonerrors.NewDomainError("TOKEN_REQUIRED", commonerrors.CategoryUnauthorized, http.StatusUnauthorized, "token required")

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil), err)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != constants.AuthRealm {
		t.Errorf("expected challenge header, got %q", got)
	}
}

func TestErrorHandler_UnknownErrorIsInternal(t *testing.T) {
	h := NewErrorHandler(testLogger())

	rec := httptest.NewRecorder()
	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil), errors.New("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Error("expected internal error text not to leak")
	}
}

func TestParams_PrefersJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/statistics?username=query", strings.NewReader(`{"username":"body","limit":5}`))

	params, err := Params(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if params["username"] != "body" {
		t.Errorf("expected body value, got %q", params["username"])
	}
	if params["limit"] != "5" {
		t.Errorf("expected numeric value stringified, got %q", params["limit"])
	}
}

func TestParams_FallsBackToQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/posts/statistics?uuid=abc&start=2020-05-08", nil)

	params, err := Params(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if params["uuid"] != "abc" || params["start"] != "2020-05-08" {
		t.Errorf("unexpected params: %v", params)
	}
}

func TestParams_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users", strings.NewReader(`{broken`))

	if _, err := Params(req); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	var v map[string]any
	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/api/user", nil), &v)
	if !errors.Is(err, ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

func TestDecodeJSON_NullBodyIsEmpty(t *testing.T) {
	for _, body := range []string{"null", "  null\n", " \t "} {
		var v map[string]any
		err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body)), &v)
		if !errors.Is(err, ErrEmptyBody) {
			t.Errorf("body %q: expected ErrEmptyBody, got %v", body, err)
		}
	}
}

func TestDecodeJSON_ObjectBody(t *testing.T) {
	var v struct {
		Username string `json:"username"`
	}
	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"pete"}`)), &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Username != "pete" {
		t.Errorf("expected pete, got %q", v.Username)
	}
}

func TestTraceIDMiddleware(t *testing.T) {
	var seen string
	h := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc" || rec.Header().Get("X-Trace-ID") != "abc" {
		t.Errorf("expected incoming trace id to propagate, got ctx=%q header=%q", seen, rec.Header().Get("X-Trace-ID"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Trace-ID") == "" {
		t.Error("expected generated trace id")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestMaxRequestSizeMiddleware(t *testing.T) {
	h := MaxRequestSizeMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter("test", 0.001, 2)
	defer rl.Stop()

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence: %v", codes)
	}
}
