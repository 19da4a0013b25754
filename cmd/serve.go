package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/koopa0/studybot/internal/config"
	"github.com/koopa0/studybot/internal/log"
	"github.com/koopa0/studybot/internal/web"
)

// runServe initializes and starts the chat web server.
func runServe(logger log.Logger) error {
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

	logger.Info("starting StudyBot server", "version", Version)

	app, err := setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer app.close()

	app.seed(ctx)

	srv := web.NewServer(web.ServerConfig{
		Logger:        logger,
		Responder:     app.responder,
		Store:         app.store,
		RatePerSecond: cfg.RatePerSecond,
		RateBurst:     cfg.RateBurst,
	})

	logger.Info("HTTP server ready",
		"addr", addr,
		"chat", "/api/chat",
		"health", "/health, /ready",
	)

	return srv.Run(ctx, addr)
}
