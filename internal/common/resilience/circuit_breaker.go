package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/socialnet/api/internal/common/clock"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/observability/metrics"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker trips after Threshold consecutive failures and stays open for ResetAfter.
type CircuitBreaker struct {
	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	threshold   int
	timeout     time.Duration
	resetAfter  time.Duration
	name        string
	clock       clock.Clock
	log         *logger.Logger
}

type CircuitBreakerConfig struct {
	Threshold  int
	Timeout    time.Duration
	ResetAfter time.Duration
	Name       string
	Clock      clock.Clock
	Logger     *logger.Logger
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	c := config.Clock
	if c == nil {
		c = clock.NewRealClock()
	}
	return &CircuitBreaker{
		threshold:  config.Threshold,
		timeout:    config.Timeout,
		resetAfter: config.ResetAfter,
		name:       config.Name,
		clock:      c,
		log:        config.Logger,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.isOpenLocked()
}

func (cb *CircuitBreaker) isOpenLocked() bool {
	if cb.failures < cb.threshold {
		cb.setState(0)
		return false
	}
	if cb.clock.Now().Sub(cb.lastFailure) > cb.resetAfter {
		cb.failures = 0
		cb.setState(0)
		return false
	}
	cb.setState(1)
	return true
}

func (cb *CircuitBreaker) setState(state float64) {
	if cb.name != "" {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(state)
	}
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.failures = 0
		return
	}
	cb.failures++
	cb.lastFailure = cb.clock.Now()
	if cb.name != "" {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	if cb.log != nil && cb.failures == cb.threshold {
		cb.log.Warnf("circuit breaker [%s]: opened after %d failures: %v", cb.name, cb.failures, err)
	}
}

// Call runs fn under the breaker's timeout. ignore marks errors that are expected outcomes, not failures.
func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error, ignore ...error) error {
	if cb.IsOpen() {
		if cb.name != "" {
			metrics.CircuitBreakerRejections.WithLabelValues(cb.name).Inc()
		}
		return ErrCircuitOpen
	}

	callCtx := ctx
	if cb.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cb.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	for _, target := range ignore {
		if errors.Is(err, target) {
			cb.record(nil)
			return err
		}
	}
	cb.record(err)
	return err
}
