package cron

import (
	"context"

	"ems/config"
	"ems/internal/database/client"

	"github.com/google/wire"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewCron, NewHeartbeatJob, wire.Bind(new(Pinger), new(*client.MongoClient)))

type Cron struct {
	logger    *zap.Logger
	server    *cron.Cron
	heartbeat *HeartbeatJob
	spec      string
}

// NewCron .
func NewCron(logger *zap.Logger, config *config.Configuration, heartbeat *HeartbeatJob) *Cron {
	server := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Cron{
		logger:    logger,
		server:    server,
		heartbeat: heartbeat,
		spec:      config.MongoDB.HeartbeatSpec,
	}
}

func (c *Cron) Run() error {
	if c.spec != "" {
		if _, err := c.server.AddJob(c.spec, c.heartbeat); err != nil {
			return err
		}
		c.logger.Info("mongo heartbeat scheduled", zap.String("spec", c.spec))
	}

	c.server.Start()
	return nil
}

// Stop waits for running jobs or ctx, whichever ends first.
func (c *Cron) Stop(ctx context.Context) error {
	done := c.server.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
