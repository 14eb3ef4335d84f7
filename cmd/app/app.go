package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"ems/config"
	"ems/internal/core"
	"ems/internal/cron"
	"ems/internal/database/client"
	"ems/internal/service"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RuntimeInfo struct {
	Env       string        `json:"env"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	GoVersion string        `json:"go_version"`
	StartAt   time.Time     `json:"start_at"`
	Uptime    time.Duration `json:"uptime"`
}

type App struct {
	conf          *config.Configuration
	logger        *zap.Logger
	cronSrv       *cron.Cron
	server        *http.Server
	Router        *gin.Engine
	healthService *service.HealthService
	mongoClient   *client.MongoClient
	metric        *telemetry.Metric

	serveErr chan error
	startAt  time.Time
	appInfo  RuntimeInfo
}

func newHttpServer(
	conf *config.Configuration,
	router *gin.Engine,
) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.FormatUint(uint64(conf.App.Port), 10),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newApp(
	conf *config.Configuration,
	logger *zap.Logger,
	router *gin.Engine,
	server *http.Server,
	healthService *service.HealthService,
	mongoClient *client.MongoClient,
	metric *telemetry.Metric,
	cronSrv *cron.Cron,
) *App {
	startAt := time.Now()
	return &App{
		conf:          conf,
		logger:        logger,
		Router:        router,
		server:        server,
		healthService: healthService,
		mongoClient:   mongoClient,
		metric:        metric,
		cronSrv:       cronSrv,
		serveErr:      make(chan error, 1),
		startAt:       startAt,
		appInfo: RuntimeInfo{
			Env:       conf.App.Env,
			Name:      conf.App.Name,
			Version:   conf.App.Version,
			GoVersion: runtime.Version(),
			StartAt:   startAt,
		},
	}
}

func (a *App) Run() error {
	info := a.appInfo
	a.logger.Info("app runtime info",
		zap.String("env", info.Env),
		zap.String("name", info.Name),
		zap.String("version", info.Version),
		zap.String("go_version", info.GoVersion),
		zap.Time("start_at", info.StartAt),
	)

	a.Router.GET("/version", func(c *gin.Context) {
		resp := a.appInfo
		resp.Uptime = time.Since(a.startAt)
		c.JSON(http.StatusOK, resp)
	})

	// readiness follows the database connection
	a.mongoClient.WatchState(func(ev client.ConnectionEvent) {
		a.applyConnectionState(ev.State)
	})

	if err := a.cronSrv.Run(); err != nil {
		return err
	}
	a.logger.Info("cron server started")

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serveErr <- err
		}
	}()
	a.logger.Info("Listening on PORT " + strconv.FormatUint(uint64(a.conf.App.Port), 10))

	return nil
}

func (a *App) applyConnectionState(state core.ConnectionState) {
	a.healthService.SetReady(state == core.ConnectionOpen)
	a.metric.SetMongoState(state)
}

// Err reports a listener failure after Run.
func (a *App) Err() <-chan error {
	return a.serveErr
}

func (a *App) Stop(ctx context.Context) error {
	a.healthService.SetReady(false)

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	a.logger.Info("http server has been stop")

	if a.cronSrv != nil {
		if err := a.cronSrv.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
		a.logger.Info("cron server has been stop")
	}
	return errors.Join(errs...)
}
