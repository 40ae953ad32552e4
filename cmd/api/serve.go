package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpHandler "merchant-pulse/internal/adapter/http/handler"
	"merchant-pulse/internal/adapter/storage/memory"
	redisStorage "merchant-pulse/internal/adapter/storage/redis"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/internal/service"
	"merchant-pulse/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const openAPIPath = "docs/api/openapi.yaml"

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API and live feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configPath)
		},
	}
}

func runServe(cmd *cobra.Command, configPath string) error {
	a, err := newApp(configPath, os.Stdout)
	if err != nil {
		return err
	}
	cfg, log := a.cfg, a.log

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Merchant Pulse")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	checkers := []ports.HealthChecker{memory.NewHealthCheck(a.store)}

	// Redis backs the export cache and rate limiting; both are optional.
	var exportCache ports.ExportCache
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer rdb.Close()

		exportCache = redisStorage.NewExportCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Info().Msg("Redis disabled, export cache and rate limiting off")
	}

	dashboardSvc := service.NewDashboardService(a.store, service.DashboardConfig{
		SimulatedLatency: cfg.API.SimulatedLatency,
		Analytics:        a.analytics(),
	}, logger.Component(log, "dashboard"))
	exportSvc := service.NewExportService(a.store, exportCache, a.exportConfig(), logger.Component(log, "export"))
	feedSvc := service.NewFeedService(a.store, a.gen, service.NewHub(), a.feedConfig(), logger.Component(log, "feed"))

	spec, err := os.ReadFile(openAPIPath)
	if err == nil {
		log.Info().Str("path", openAPIPath).Msg("OpenAPI document loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	gin.SetMode(cfg.Server.Mode)
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		DashboardSvc:   dashboardSvc,
		ExportSvc:      exportSvc,
		FeedSvc:        feedSvc,
		RateLimitStore: rateLimitStore,
		RateLimits:     cfg.RateLimit,
		OpenAPISpec:    spec,
		HealthCheckers: checkers,
		Logger:         logger.Component(log, "http"),
	})

	// Cancelling baseCtx ends every open stream on shutdown.
	baseCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()
	srv := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	stopStreams()
	feedSvc.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
