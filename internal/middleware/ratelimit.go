package middleware

import (
	"context"
	"errors"
	"strconv"

	"ems/config"
	"ems/internal/core"
	"ems/internal/database/redis/repository"
	cErr "ems/internal/pkg/error"
	"ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionLimiter counts submissions per key in a fixed window.
type SubmissionLimiter interface {
	Consume(ctx context.Context, key string, windowSeconds int64, limit int) (remaining int, ttlSeconds int64, err error)
}

type RateLimit struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	limiter SubmissionLimiter
	enabled bool
	limit   int
	window  int64
}

func NewRateLimit(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	limiter SubmissionLimiter,
) *RateLimit {
	rl := config.Submission.RateLimit
	limit, window := rl.Limit, rl.WindowSeconds
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = 60
	}
	return &RateLimit{
		logger:  logger,
		trace:   trace,
		metric:  metric,
		limiter: limiter,
		enabled: rl.Enabled,
		limit:   limit,
		window:  window,
	}
}

// Guard blocks a client IP once its window is spent. Limiter failures let the request through.
func (middleware *RateLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.enabled {
			c.Next()
			return
		}
		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRateLimitMiddleware))

		key := c.ClientIP()
		remaining, ttlSec, err := middleware.limiter.Consume(ctx, key, middleware.window, middleware.limit)
		if err != nil && !errors.Is(err, repository.ErrRateLimitExceeded) {
			middleware.logger.Warn("rate limiter unavailable, letting request through", zap.Error(err))
			end(err)
			c.Next()
			return
		}

		blocked := err != nil
		middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMeta{
			Key:       key,
			Limit:     middleware.limit,
			WindowSec: middleware.window,
			Remaining: remaining,
			TTL:       ttlSec,
			Blocked:   blocked,
			Op:        "guard",
		})

		c.Header("X-RateLimit-Limit", strconv.Itoa(middleware.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		if blocked {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			if middleware.metric.RateLimitedTotal != nil {
				middleware.metric.RateLimitedTotal.Inc()
			}
			appErr := cErr.RateLimitExceeded("too many submissions, retry later")
			end(nil)
			response.AbortWithError(c, appErr)
			return
		}
		end(nil)
		c.Next()
	}
}
