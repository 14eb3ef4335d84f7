package repository

import (
	"context"
	"testing"

	"ems/config"
	client "ems/internal/database/client"
	"ems/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDisabledRepository(t *testing.T) *RateLimiterRepository {
	conf := &config.Configuration{}
	tr, _, err := telemetry.NewTrace(conf)
	require.NoError(t, err)
	redisClient, cleanup, err := client.NewRedisClient(zap.NewNop(), conf)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewRateLimiterRepository(tr, redisClient)
}

func TestBuildKey(t *testing.T) {
	repository := &RateLimiterRepository{}
	assert.Equal(t, "ems:submission_window:10.0.0.7", repository.buildKey("10.0.0.7"))
}

func TestDisabledLimiterNeverDialsRedis(t *testing.T) {
	repository := newDisabledRepository(t)

	_, _, err := repository.Consume(context.Background(), "10.0.0.7", 60, 30)
	assert.ErrorIs(t, err, ErrLimiterDisabled)
	assert.ErrorIs(t, repository.Reset(context.Background(), "10.0.0.7"), ErrLimiterDisabled)
}
