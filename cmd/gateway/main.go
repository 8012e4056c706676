package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ai-gateway/chat-relay/internal/config"
	"github.com/ai-gateway/chat-relay/internal/logging"
	"github.com/ai-gateway/chat-relay/internal/metrics"
	"github.com/ai-gateway/chat-relay/internal/observability"
	"github.com/ai-gateway/chat-relay/internal/provider/minimax"
	"github.com/ai-gateway/chat-relay/internal/routing"
	"github.com/ai-gateway/chat-relay/internal/server"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	if dump, err := cfg.Redacted(); err == nil {
		logger.Debug("effective config", "config", dump)
	}
	if cfg.MiniMax.APIKey == "" {
		logger.Warn(config.APIKeyEnv + " is not set; chat requests will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Setup(ctx, cfg.TelemetryEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown", "error", err)
		}
	}()

	m := metrics.New()
	rt := routing.New()
	rt.Register(minimax.Name, minimax.New(cfg.MiniMax, logger, m))

	srv := server.New(cfg, rt, logger, m)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		exitCode = 1
	}
}
