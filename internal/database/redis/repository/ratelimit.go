package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ems/internal/core"
	client "ems/internal/database/client"
	"ems/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

// RateLimiterRepository keeps fixed-window submission counters in Redis.
type RateLimiterRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewRateLimiterRepository(trace *telemetry.Trace, client *client.RedisClient) *RateLimiterRepository {
	return &RateLimiterRepository{trace: trace, client: client.Client()}
}

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrLimiterDisabled   = errors.New("rate limiter has no redis client")
)

// Consume takes one unit from key's window, starting a new window when none exists.
// It returns the remaining count, the window TTL in seconds and ErrRateLimitExceeded
// once the window is spent.
func (repository *RateLimiterRepository) Consume(
	contextValue context.Context,
	key string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		if errors.Is(returnedError, ErrRateLimitExceeded) {
			endSpan(nil)
			return
		}
		endSpan(returnedError)
	}()

	if repository.client == nil {
		return 0, 0, ErrLimiterDisabled
	}

	traceMetadata := core.TraceRateLimitMeta{
		Key:       key,
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Op:        "consume",
	}

	redisKey := repository.buildKey(key)
	expiration := time.Duration(windowSeconds) * time.Second

	// SETNX starts the window with this request already counted
	wasSet, setError := repository.client.SetNX(contextValue, redisKey, limitCount-1, expiration).Result()
	if setError != nil {
		return 0, 0, setError
	}
	if wasSet {
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrRateLimitExceeded
		}
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, windowSeconds
		traceMetadata.Blocked = returnedError != nil
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, windowSeconds, returnedError
	}

	newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
	if decrError != nil {
		return 0, 0, decrError
	}

	ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	} else {
		// a key without expiry would block forever; restart the window
		_ = repository.client.Expire(contextValue, redisKey, expiration).Err()
		timeToLiveSeconds = windowSeconds
	}

	if newValue < 0 {
		traceMetadata.TTL, traceMetadata.Blocked = timeToLiveSeconds, true
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return 0, timeToLiveSeconds, ErrRateLimitExceeded
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// Reset drops key's window.
func (repository *RateLimiterRepository) Reset(contextValue context.Context, key string) (returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	if repository.client == nil {
		return ErrLimiterDisabled
	}
	return repository.client.Del(contextValue, repository.buildKey(key)).Err()
}

func (repository *RateLimiterRepository) buildKey(key string) string {
	return fmt.Sprintf("%s:%s:%s", core.RedisKeyServerName, core.RedisKeySubmissionWindow, key)
}
