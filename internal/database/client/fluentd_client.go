package client

import (
	"context"
	"time"

	"ems/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// LogShipper forwards structured records to a log collector.
type LogShipper interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

type FluentdClient struct {
	client *fluent.Fluent
}

// NewFluentdClient returns a NoopClient when no Fluentd host is configured.
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (LogShipper, func(), error) {
	if config.Fluentd.Host == "" {
		return &NoopClient{}, func() {}, nil
	}
	prefix := "ems"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
		// never block a request on the collector
		Async: true,
	})
	if err != nil {
		logger.Error("failed to create Fluentd client", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Fluentd log shipping enabled", zap.String("host", config.Fluentd.Host), zap.String("tag_prefix", prefix))

	shipper := &FluentdClient{client: f}
	cleanup := func() {
		if err := shipper.Close(); err != nil {
			logger.Error("failed to close Fluentd client", zap.Error(err))
		}
	}
	return shipper, cleanup, nil
}

// Post sends message under tag; fluent-logger prepends the configured prefix.
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	return c.client.Post(tag, message)
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// NoopClient drops every record.
type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, message any) error { return nil }
func (n *NoopClient) Close() error                                            { return nil }
