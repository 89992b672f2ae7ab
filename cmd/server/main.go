package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"StockScope/internal/cache"
	"StockScope/internal/collector"
	"StockScope/internal/config"
	"StockScope/internal/metadata"
	"StockScope/internal/report"
	"StockScope/internal/scheduler"
	"StockScope/internal/server"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Info("StockScope starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"symbols":   strings.Join(cfg.Symbols(), ", "),
		"cache_dir": cfg.Cache.Dir,
		"ttl_hours": cfg.Cache.TTLHours,
	}).Info("configuration loaded")
	if cfg.Anthropic.APIKey == "" {
		logrus.Warn("ANTHROPIC_API_KEY not set, report generation will fail")
	}

	store, err := cache.NewStore(cfg.Cache.Dir, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		logrus.Fatalf("init cache store: %v", err)
	}

	fetcher := collector.NewYahooFetcher(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Proxy)
	logrus.WithField("source", fetcher.Name()).Info("data source ready")

	col := collector.NewCollector(fetcher, store, cfg.Fetch.MaxAttempts,
		time.Duration(cfg.Fetch.RetryDelaySeconds)*time.Second)

	resolver := metadata.NewResolver(cfg.Registry(),
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Proxy)

	generator := report.NewClaudeGenerator(cfg.Anthropic.APIKey, cfg.Anthropic.Model,
		cfg.Anthropic.Temperature, cfg.Anthropic.MaxTokens)
	synthesizer := report.NewSynthesizer(generator, cfg.Currency,
		time.Duration(cfg.Anthropic.TimeoutSeconds)*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Schedule.RefreshCron != "" {
		sched := scheduler.New(ctx, col, cfg.Symbols())
		if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
			logrus.Fatalf("register refresh task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := server.New(cfg.Stocks, col, resolver, synthesizer)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(cfg.Server.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logrus.Fatalf("http server: %v", err)
	case <-sigCh:
		logrus.Info("shutdown signal received, stopping...")
		cancel()
	}
	logrus.Info("StockScope stopped")
}
