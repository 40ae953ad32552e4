package main

import (
	"io"
	"os"

	"merchant-pulse/config"
	"merchant-pulse/internal/adapter/storage/memory"
	"merchant-pulse/internal/service"
	"merchant-pulse/pkg/logger"

	"github.com/rs/zerolog"
)

// app is the ledger every command runs against.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *memory.LedgerStore
	gen   *service.Generator
}

// newApp loads configuration and backfills the ledger. Logs go to logOut so
// commands printing data on stdout stay parseable.
func newApp(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var log zerolog.Logger
	if logOut == os.Stdout {
		log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	} else {
		log = logger.NewWithWriter(cfg.Log.Level, logOut)
	}

	store := memory.NewLedgerStore(cfg.Ledger.Capacity, cfg.Ledger.StartTime)
	gen := service.NewGenerator(service.GeneratorConfig{Seed: cfg.Ledger.Seed})
	if err := service.BootstrapLedger(store, gen, cfg.Ledger.Merchants, cfg.Ledger.LookbackDays, logger.Component(log, "ledger")); err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, store: store, gen: gen}, nil
}

func (a *app) analytics() service.AnalyticsOptions {
	return service.AnalyticsOptions{
		RecentLimit:  a.cfg.API.RecentLimit,
		TopMerchants: a.cfg.API.TopMerchants,
	}
}

func (a *app) feedConfig() service.FeedConfig {
	return service.FeedConfig{
		RefreshInterval:      a.cfg.Feed.RefreshInterval,
		ReconnectInterval:    a.cfg.Feed.ReconnectInterval,
		MaxReconnectAttempts: a.cfg.Feed.MaxReconnectAttempts,
		ConnectDelay:         a.cfg.Feed.ConnectDelay,
		MaxClockJump:         a.cfg.Feed.MaxClockJump,
		FixedStep:            a.cfg.Feed.FixedStep,
		Analytics:            a.analytics(),
	}
}

func (a *app) exportConfig() service.ExportConfig {
	return service.ExportConfig{
		MerchantLimit: a.cfg.API.ExportLimit,
		CacheTTL:      a.cfg.Redis.ExportTTL,
	}
}
