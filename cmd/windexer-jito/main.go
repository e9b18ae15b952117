package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"windexer-jito/internal/config"
	"windexer-jito/internal/notifications"
	"windexer-jito/internal/pipeline"
	windexerprom "windexer-jito/internal/prometheus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *pipeline.Pipeline
}

func newApp(ctx context.Context, extra ...pipeline.Option) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return nil, err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Setup structured logging
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	logger := slog.New(handler)

	registry := prometheus.NewRegistry()
	metrics, err := windexerprom.New(cfg.EnablePrometheus, registry)
	if err != nil {
		return nil, err
	}
	if cfg.EnablePrometheus {
		go func() {
			if err := windexerprom.Serve(ctx, cfg.PrometheusPort, registry, logger); err != nil {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	notifier := notifications.New(&cfg, logger)

	options := append([]pipeline.Option{
		pipeline.WithObserver(metrics),
		pipeline.WithObserver(notifier),
	}, extra...)

	p, err := pipeline.New(cfg.Integration, logger, options...)
	if err != nil {
		logger.Error("Failed to create validation pipeline", "error", err)
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, pipeline: p}, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			slog.Info("Received shutdown signal, initiating graceful shutdown...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
