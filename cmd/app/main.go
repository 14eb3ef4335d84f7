package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ems/config"
	"ems/internal/command"
	"ems/internal/log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "ems/cmd/docs"
)

var (
	Version  string
	envPath  string
	yamlPath string
	conf     *config.Configuration
	logger   *zap.Logger
)

func bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	fs.StringVarP(&yamlPath, "config", "c", "", "YAML config file under conf/, e.g. --config config.yaml")
}

func initConfig() error {
	if envPath != "" && yamlPath != "" {
		fmt.Println("both --env and --config given, --env wins")
	}
	opts := config.LoadOptions{EnvPath: envPath, YamlPath: yamlPath}
	loaded, err := config.Load(opts)
	if err != nil {
		return err
	}
	if Version != "" {
		loaded.App.Version = Version
	}
	conf = loaded

	var level zap.AtomicLevel
	logger, level = log.NewLeveledLogger(conf)

	// only the log level is live; everything else is read once at wiring time
	return config.Watch(opts, func(next *config.Configuration, err error) {
		if err != nil {
			logger.Warn("config reload failed", zap.Error(err))
			return
		}
		level.SetLevel(log.ParseLevel(next.Log.Level))
		logger.Info("config file changed, restart to apply settings other than LOG.LEVEL",
			zap.String("level", next.Log.Level))
	})
}

// @title        Employee Management System API
// @version      1.0
// @description  Intake endpoint for the employee form.
// @host         localhost:3000
// @basePath     /
func main() {
	rootCmd := &cobra.Command{
		Use:          "app",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync()

			app, cleanup, err := wireApp(conf, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Info("start app ...")
			if err := app.Run(); err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case err := <-app.Err():
				logger.Error("http server stopped", zap.Error(err))
			}

			logger.Info("shutdown app ...")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return app.Stop(ctx)
		},
	}
	bindFlags(rootCmd.PersistentFlags())

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		return wireCommand(conf, logger)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
