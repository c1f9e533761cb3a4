package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/socialnet/api/internal/common/constants"
	"github.com/socialnet/api/internal/common/logger"
)

type PoolConfig struct {
	DatabaseURL     string
	MaxConns        int
	ApplicationName string
}

// NewPool connects with a fixed number of attempts so the service can start before the database is ready.
func NewPool(ctx context.Context, log *logger.Logger, cfg PoolConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = constants.DBPoolMaxOpenConns
	}
	minConns := constants.DBPoolMinOpenConns
	if minConns > maxConns {
		minConns = maxConns
	}

	poolCfg.MaxConns = int32(maxConns)
	poolCfg.MinConns = int32(minConns)
	poolCfg.MaxConnLifetime = constants.DBPoolConnMaxLifetime
	poolCfg.MaxConnIdleTime = constants.DBPoolConnMaxIdleTime
	poolCfg.HealthCheckPeriod = constants.DBPoolHealthCheck
	poolCfg.ConnConfig.ConnectTimeout = constants.DBPoolConnectTimeout
	if cfg.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}

	var lastErr error
	for attempt := 1; attempt <= constants.DBPoolMaxAttempts; attempt++ {
		pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
		if err == nil {
			log.Infof("database connection pool initialized: max=%d, min=%d", poolCfg.MaxConns, poolCfg.MinConns)
			return pool, nil
		}
		lastErr = err

		log.Warnf("failed to connect to database (attempt %d/%d): %v", attempt, constants.DBPoolMaxAttempts, err)
		if attempt == constants.DBPoolMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(constants.DBPoolRetryDelay):
		}
	}

	return nil, fmt.Errorf("connect to database after %d attempts: %w", constants.DBPoolMaxAttempts, lastErr)
}
