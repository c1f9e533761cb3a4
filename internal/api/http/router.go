package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analyticshttp "github.com/socialnet/api/internal/analytics/http"
	authhttp "github.com/socialnet/api/internal/auth/http"
	"github.com/socialnet/api/internal/common/constants"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/httpmetrics"
	"github.com/socialnet/api/internal/common/logger"
	likehttp "github.com/socialnet/api/internal/like/http"
	posthttp "github.com/socialnet/api/internal/post/http"
	userhttp "github.com/socialnet/api/internal/user/http"
)

type Handlers struct {
	Users     *userhttp.Handler
	Posts     *posthttp.Handler
	Likes     *likehttp.Handler
	Analytics *analyticshttp.Handler
	Login     *authhttp.Handler
}

type RouterConfig struct {
	Handlers       Handlers
	Authenticator  authhttp.Authenticator
	Errors         *commonhttp.ErrorHandler
	Health         map[string]commonhttp.Pinger
	AllowedOrigins []string
	MaxRequestSize int64
	RequestTimeout time.Duration
	Log            *logger.Logger
}

// Router owns the per-route rate limiters, so Stop must be called on shutdown.
type Router struct {
	handler  http.Handler
	limiters []*commonhttp.RateLimiter
}

func NewRouter(cfg RouterConfig) *Router {
	maxSize := cfg.MaxRequestSize
	if maxSize <= 0 {
		maxSize = constants.DefaultMaxRequestSize
	}

	loginLimiter := commonhttp.NewRateLimiter("login", constants.RateLimitLoginRequestsPerSecond, constants.RateLimitLoginBurst)
	signupLimiter := commonhttp.NewRateLimiter("signup", constants.RateLimitSignupRequestsPerSecond, constants.RateLimitSignupBurst)
	generalLimiter := commonhttp.NewRateLimiter("general", constants.RateLimitGeneralRequestsPerSecond, constants.RateLimitGeneralBurst)

	requireUser := authhttp.RequireUser(cfg.Authenticator, cfg.Errors)
	h := cfg.Handlers

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(commonhttp.SecurityHeadersMiddleware)
	r.Use(commonhttp.RecoveryMiddleware(cfg.Log))
	r.Use(commonhttp.TraceIDMiddleware)
	r.Use(commonhttp.MaxRequestSizeMiddleware(maxSize))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", constants.APIKeyHeader},
		ExposedHeaders: []string{constants.TraceIDHeader},
		MaxAge:         300,
	}))
	r.Use(httpmetrics.Middleware)

	r.Get("/health", commonhttp.HealthHandler(cfg.Log, cfg.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(generalLimiter.Middleware)

		r.Get("/users", h.Users.List)
		r.With(signupLimiter.Middleware).Post("/users", h.Users.Register)

		r.Get("/posts", h.Posts.List)
		r.With(requireUser).Post("/posts", h.Posts.Create)

		r.With(requireUser).Post("/like", h.Likes.Toggle)

		r.Get("/analytics/user", h.Analytics.UserStatistics)
		r.Get("/analytics/likes", h.Analytics.LikeStatistics)

		r.With(loginLimiter.Middleware).Get("/login", h.Login.Login)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeNotFound, "resource not found", nil, commonhttp.TraceIDFromContext(r.Context()))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
	})

	return &Router{
		handler:  r,
		limiters: []*commonhttp.RateLimiter{loginLimiter, signupLimiter, generalLimiter},
	}
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.handler.ServeHTTP(w, r)
}

func (rt *Router) Stop() {
	for _, l := range rt.limiters {
		l.Stop()
	}
}
