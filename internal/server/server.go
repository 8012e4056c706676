package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ai-gateway/chat-relay/internal/config"
	"github.com/ai-gateway/chat-relay/internal/metrics"
	"github.com/ai-gateway/chat-relay/internal/routing"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	router  *routing.Router
	logger  *slog.Logger
	metrics *metrics.Collector
}

func New(cfg *config.Config, rt *routing.Router, logger *slog.Logger, m *metrics.Collector) *Server {
	r := gin.New()
	srv := &Server{cfg: cfg, engine: r, router: rt, logger: logger, metrics: m}
	r.Use(gin.Recovery(), srv.requestID(), srv.accessLog())
	srv.registerRoutes()
	return srv
}

// registerRoutes mounts the chat endpoint at /api/chat and on every unmatched
// path, so the relay answers wherever it is deployed.
func (s *Server) registerRoutes() {
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	chat := []gin.HandlerFunc{s.observe(), cors(), s.chat}
	s.engine.Any("/api/chat", chat...)
	s.engine.NoRoute(chat...)
}

// Handler exposes the engine for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.logger.Info("listening", "address", s.cfg.Address, "services", s.router.Services())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
