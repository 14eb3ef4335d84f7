//go:build wireinject
// +build wireinject

package main

import (
	"ems/config"
	"ems/internal/command"
	"ems/internal/cron"
	"ems/internal/database"
	"ems/internal/handler"
	"ems/internal/middleware"
	"ems/internal/router"
	"ems/internal/service"
	"ems/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(command.ProviderSet))
}
