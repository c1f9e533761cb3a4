package service

import (
	"github.com/socialnet/api/internal/observability/metrics"
)

func incrementTokensIssued(reason string) {
	metrics.TokensIssued.WithLabelValues(reason).Inc()
}

func incrementAuthFailures(reason string) {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
}
