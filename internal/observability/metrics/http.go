package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitBlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_blocked_total",
			Help: "Requests rejected with 429 by limiter",
		},
		[]string{"limiter"},
	)

	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_domain_errors_total",
			Help: "Domain errors returned to clients by category and code",
		},
		[]string{"category", "code", "status"},
	)

	HTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_http_errors_total",
			Help: "Error responses by status and route",
		},
		[]string{"status", "route", "method"},
	)
)
