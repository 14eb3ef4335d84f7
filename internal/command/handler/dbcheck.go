package command

import (
	"context"
	"time"

	"ems/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Pinger is the part of the Mongo client the check needs.
type Pinger interface {
	Ping(ctx context.Context) error
	DatabaseName() string
}

type DBCheckHandler struct {
	logger  *zap.Logger
	pinger  Pinger
	timeout time.Duration
}

func NewDBCheckHandler(logger *zap.Logger, config *config.Configuration, pinger Pinger) *DBCheckHandler {
	timeout := 5 * time.Second
	if config.MongoDB.PingTimeoutMs > 0 {
		timeout = time.Duration(config.MongoDB.PingTimeoutMs) * time.Millisecond
	}
	return &DBCheckHandler{
		logger:  logger,
		pinger:  pinger,
		timeout: timeout,
	}
}

// Check prints "ok" when the server answers, otherwise returns the ping error.
func (handler *DBCheckHandler) Check(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), handler.timeout)
	defer cancel()

	if err := handler.pinger.Ping(ctx); err != nil {
		cmd.PrintErrf("%s: %v\n", handler.pinger.DatabaseName(), err)
		return err
	}
	cmd.Println("ok")
	return nil
}
