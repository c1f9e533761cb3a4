package httpmetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/api", "/api"},
		{"/api/nope/42", "/api/{unmatched}"},
		{"/wp-admin/setup.php", "/{unmatched}"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoutePath_UsesChiPattern(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Get("/api/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		got = RoutePath(req)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/7", nil))

	if got != "/api/users/{id}" {
		t.Errorf("expected chi route pattern, got %q", got)
	}
}

func TestMiddleware_PassesThroughStatus(t *testing.T) {
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}
}
