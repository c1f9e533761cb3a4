package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	activityrepo "github.com/socialnet/api/internal/activity/repository"
	activityservice "github.com/socialnet/api/internal/activity/service"
	analyticshttp "github.com/socialnet/api/internal/analytics/http"
	analyticsservice "github.com/socialnet/api/internal/analytics/service"
	apihttp "github.com/socialnet/api/internal/api/http"
	authhttp "github.com/socialnet/api/internal/auth/http"
	authservice "github.com/socialnet/api/internal/auth/service"
	"github.com/socialnet/api/internal/common/cache"
	"github.com/socialnet/api/internal/common/clock"
	"github.com/socialnet/api/internal/common/config"
	"github.com/socialnet/api/internal/common/constants"
	commoncrypto "github.com/socialnet/api/internal/common/crypto"
	"github.com/socialnet/api/internal/common/db"
	commonhttp "github.com/socialnet/api/internal/common/http"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/server"
	likehttp "github.com/socialnet/api/internal/like/http"
	likerepo "github.com/socialnet/api/internal/like/repository"
	likeservice "github.com/socialnet/api/internal/like/service"
	posthttp "github.com/socialnet/api/internal/post/http"
	postrepo "github.com/socialnet/api/internal/post/repository"
	postservice "github.com/socialnet/api/internal/post/service"
	userhttp "github.com/socialnet/api/internal/user/http"
	userrepo "github.com/socialnet/api/internal/user/repository"
	userservice "github.com/socialnet/api/internal/user/service"
)

// App is the explicit application context: one store handle, one signing key, built once at startup.
type App struct {
	Config config.APIConfig
	Log    *logger.Logger
	Pool   *pgxpool.Pool
	Cache  cache.LikeStatsCache
	Router *apihttp.Router

	stopMetrics context.CancelFunc
}

type ResetApp struct {
	Config config.ResetConfig
	Log    *logger.Logger
	Pool   *pgxpool.Pool
	Tx     db.TxManager
}

func NewAPIApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, "api", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := db.ApplyMigrations(log, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := db.NewPool(ctx, log, db.PoolConfig{
		DatabaseURL:     cfg.DatabaseURL,
		MaxConns:        cfg.DBMaxConns,
		ApplicationName: "socialnet-api",
	})
	if err != nil {
		return nil, err
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	stats := newLikeStatsCache(ctx, cfg, log)

	clk := clock.NewRealClock()
	hasher := commoncrypto.NewBcryptHasher()
	idGenerator := commoncrypto.NewUUIDGenerator()
	tokens := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, clk)
	errs := commonhttp.NewErrorHandler(log)

	users := userrepo.NewPgRepository(pool)
	posts := postrepo.NewPgRepository(pool)
	likes := likerepo.NewPgRepository(pool, db.NewPgTxManager(pool))
	activity := activityrepo.NewPgRepository(pool)
	recorder := activityservice.NewRecorder(activity, log)

	userService := userservice.NewUserService(users, hasher, idGenerator, tokens, recorder, log)
	postService := postservice.NewPostService(posts, idGenerator, recorder, log)
	likeService := likeservice.NewLikeService(likes, posts, recorder, stats, log)
	analyticsService := analyticsservice.NewAnalyticsService(users, posts, activity, likes, stats, clk, log)
	loginService := authservice.NewLoginService(users, hasher, tokens, log)

	router := apihttp.NewRouter(apihttp.RouterConfig{
		Handlers: apihttp.Handlers{
			Users:     userhttp.NewHandler(userService, errs, log),
			Posts:     posthttp.NewHandler(postService, errs, log),
			Likes:     likehttp.NewHandler(likeService, errs, log),
			Analytics: analyticshttp.NewHandler(analyticsService, errs, log),
			Login:     authhttp.NewHandler(loginService, errs, log),
		},
		Authenticator: authservice.NewGate(tokens, users, log),
		Errors:        errs,
		Health: map[string]commonhttp.Pinger{
			"database": pool,
			"cache":    stats,
		},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxRequestSize: constants.DefaultMaxRequestSize,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})

	return &App{
		Config:      cfg,
		Log:         log,
		Pool:        pool,
		Cache:       stats,
		Router:      router,
		stopMetrics: stopMetrics,
	}, nil
}

// newLikeStatsCache falls back to the no-op cache when Redis is absent or unreachable.
func newLikeStatsCache(ctx context.Context, cfg config.APIConfig, log *logger.Logger) cache.LikeStatsCache {
	if cfg.RedisAddr == "" {
		log.Infof("REDIS_ADDR not set, analytics cache disabled")
		return cache.NoopLikeStatsCache{}
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warnf("redis unavailable at %s, analytics cache disabled: %v", cfg.RedisAddr, err)
		return cache.NoopLikeStatsCache{}
	}

	log.Infof("analytics cache connected: addr=%s ttl=%s", cfg.RedisAddr, cfg.AnalyticsCacheTTL)
	return cache.NewRedisLikeStatsCache(rdb, cfg.AnalyticsCacheTTL, log)
}

func (a *App) ShutdownHooks() []server.ShutdownHook {
	return []server.ShutdownHook{
		func(ctx context.Context) error {
			a.Router.Stop()
			a.stopMetrics()
			return nil
		},
		func(ctx context.Context) error {
			return a.Cache.Close()
		},
		func(ctx context.Context) error {
			a.Pool.Close()
			return nil
		},
	}
}

func NewResetApp(ctx context.Context) (*ResetApp, error) {
	cfg, err := config.LoadResetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, "dbreset", cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := db.ApplyMigrations(log, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	pool, err := db.NewPool(ctx, log, db.PoolConfig{
		DatabaseURL:     cfg.DatabaseURL,
		MaxConns:        2,
		ApplicationName: "socialnet-dbreset",
	})
	if err != nil {
		return nil, err
	}

	return &ResetApp{
		Config: cfg,
		Log:    log,
		Pool:   pool,
		Tx:     db.NewPgTxManager(pool),
	}, nil
}
