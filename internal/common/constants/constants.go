package constants

import "time"

const (
	JWTSecretMinLength = 32

	NameMaxLength     = 50
	UsernameMaxLength = 50
	PasswordMaxLength = 72
	ActionMaxLength   = 255

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerMaxHeaderBytes    = 1 << 16

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultAPIHTTPPort       = "8080"
	DefaultTokenTTL          = 30 * time.Minute
	DefaultRequestTimeout    = 5 * time.Second
	DefaultAnalyticsCacheTTL = 1 * time.Minute

	CORSMaxAge = 300

	RateLimitCleanupInterval          = 5 * time.Minute
	RateLimitLoginRequestsPerSecond   = 1.0
	RateLimitLoginBurst               = 5
	RateLimitSignupRequestsPerSecond  = 0.5
	RateLimitSignupBurst              = 3
	RateLimitGeneralRequestsPerSecond = 20.0
	RateLimitGeneralBurst             = 40

	CacheCircuitBreakerThreshold = 5
	CacheCircuitBreakerTimeout   = 200 * time.Millisecond
	CacheCircuitBreakerReset     = 30 * time.Second

	DBRetryMaxAttempts  = 3
	DBRetryInitialDelay = 100 * time.Millisecond
	DBRetryMaxDelay     = 2 * time.Second

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	APIKeyHeader  = "X-Api-Key"
	TraceIDHeader = "X-Trace-ID"
	AuthRealm     = `Basic realm="Authentication required"`
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
