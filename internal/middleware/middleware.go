package middleware

import (
	"strings"

	"ems/internal/database/redis/repository"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewRecovery,
	NewCors,
	NewDecode,
	NewLogger,
	NewResponse,
	NewStatic,
	NewRateLimit,
	wire.Bind(new(SubmissionLimiter), new(*repository.RateLimiterRepository)),
)

const (
	contextRequestStart = "requestDuration"
	contextRequestID    = "requestID"
)

// untraced paths still run through CORS and recovery
func isUntracedPath(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}

// metricEndpoint keeps label cardinality bounded for unmatched paths.
func metricEndpoint(fullPath string) string {
	if fullPath == "" {
		return "unmatched"
	}
	return fullPath
}
