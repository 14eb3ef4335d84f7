package cron

import (
	"context"
	"time"

	"ems/config"
	"ems/internal/core"
	"ems/internal/telemetry"

	"go.uber.org/zap"
)

// Pinger probes the database and records the outcome as a connection state.
type Pinger interface {
	Ping(ctx context.Context) error
	DatabaseName() string
	State() (core.ConnectionState, error)
}

// HeartbeatJob pings MongoDB so the connection state keeps moving between open and
// error even when no request touches the database.
type HeartbeatJob struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	pinger  Pinger
	timeout time.Duration
}

func NewHeartbeatJob(logger *zap.Logger, trace *telemetry.Trace, config *config.Configuration, pinger Pinger) *HeartbeatJob {
	timeout := 5 * time.Second
	if config.MongoDB.PingTimeoutMs > 0 {
		timeout = time.Duration(config.MongoDB.PingTimeoutMs) * time.Millisecond
	}
	return &HeartbeatJob{logger: logger, trace: trace, pinger: pinger, timeout: timeout}
}

// Run implements cron.Job.
func (j *HeartbeatJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	ctx, span, end := j.trace.WithSpan(ctx, string(core.SpanMongoPing))
	err := j.pinger.Ping(ctx)
	state, _ := j.pinger.State()

	meta := core.TraceMongoPingMeta{Database: j.pinger.DatabaseName(), State: string(state)}
	if err != nil {
		msg := err.Error()
		meta.Error = &msg
		j.logger.Debug("mongo heartbeat failed", zap.Error(err))
	}
	j.trace.ApplyTraceAttributes(span, meta)
	end(err)
}
