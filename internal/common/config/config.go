package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/socialnet/api/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
)

type APIConfig struct {
	HTTPPort           string
	DatabaseURL        string
	DBMaxConns         int
	JWTSecret          string
	TokenTTL           time.Duration
	RequestTimeout     time.Duration
	RedisAddr          string
	RedisPassword      string
	AnalyticsCacheTTL  time.Duration
	CORSAllowedOrigins []string
	LogDir             string
	LogLevel           string
}

type ResetConfig struct {
	DatabaseURL string
	LogDir      string
	LogLevel    string
}

func LoadAPIConfig() (APIConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return APIConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return APIConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return APIConfig{}, err
	}

	return APIConfig{
		HTTPPort:           getEnv("API_HTTP_PORT", constants.DefaultAPIHTTPPort),
		DatabaseURL:        databaseURL,
		DBMaxConns:         getIntEnv("DB_MAX_CONNS", constants.DBPoolMaxOpenConns),
		JWTSecret:          jwtSecret,
		TokenTTL:           getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout:     getDurationEnv("API_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		AnalyticsCacheTTL:  getDurationEnv("ANALYTICS_CACHE_TTL", constants.DefaultAnalyticsCacheTTL),
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LogDir:             getEnv("LOG_DIR", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}, nil
}

func LoadResetConfig() (ResetConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return ResetConfig{}, err
	}

	return ResetConfig{
		DatabaseURL: databaseURL,
		LogDir:      getEnv("LOG_DIR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getListEnv(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
