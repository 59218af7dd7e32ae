package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dmcneil/frontdesk/api"
	"github.com/dmcneil/frontdesk/internal/config"
)

// runServe initializes and starts the HTTP API server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	addr, err := parseServeAddr(cfg.Addr)
	if err != nil {
		return fmt.Errorf("parsing address: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := buildLogger(cfg)
	logger.Info("starting frontdesk", "version", Version, "config", cfg)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	transcriber, err := buildTranscriber(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := api.NewServer(api.Config{
		Engine:      engine,
		Transcriber: transcriber,
		Logger:      logger.With("component", "api"),
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	return srv.Run(ctx, addr)
}
