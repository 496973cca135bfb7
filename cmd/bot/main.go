package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EvgenijZaharo/medspravkiBot/bot"
	"github.com/EvgenijZaharo/medspravkiBot/core/buildinfo"
	coreconfig "github.com/EvgenijZaharo/medspravkiBot/core/config"
	"github.com/EvgenijZaharo/medspravkiBot/core/logger"
	"github.com/EvgenijZaharo/medspravkiBot/core/metrics"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("bot: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	app := logger.L.With("component", "app")
	app.Info("starting",
		slog.String("event", "starting"),
		slog.String("version", buildinfo.Version),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metricsErr := make(chan error, 1)
	var metricsSrv *metrics.Server
	if addr := cfg.Metrics.Listen; addr != "" {
		metricsSrv = metrics.Serve(addr, metricsErr)
		app.Info("metrics listener up",
			slog.String("event", "metrics"),
			slog.String("listen", addr),
		)
	}

	startedAt := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- bot.Run(ctx, cfg)
	}()
	app.Info("app ready",
		slog.String("event", "ready"),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	var runErr error
	select {
	case runErr = <-done:
	case err := <-metricsErr:
		app.Error("metrics listener failed",
			slog.String("event", "metrics"),
			slog.String("err", err.Error()),
		)
		cancel()
		runErr = <-done
	}

	app.Info("shutting down...",
		slog.String("event", "shutdown"),
	)
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(context.Background()); err != nil {
			app.Warn("metrics shutdown error",
				slog.String("event", "metrics"),
				slog.String("err", err.Error()),
			)
		}
	}
	return runErr
}
