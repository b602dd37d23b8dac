/*
 * ROSA Agent - AI assistant for Red Hat OpenShift Service on AWS
 * License: MIT
 */
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manu-joy/rosa-agent/config"
	"github.com/manu-joy/rosa-agent/metrics"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds server configuration.
type Config struct {
	Port      int
	StaticDir string // frontend assets directory ("" = no static serving)
	RateLimit int    // sustained requests per second (0 = no limiting)
	RateBurst int
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	config     Config
	httpServer *http.Server
	logger     *zap.Logger
}

// New creates the ROSA agent HTTP server with routing and middleware wired.
func New(cfg Config, handler *Handler, logger *zap.Logger) *Server {
	if cfg.Port <= 0 {
		cfg.Port = config.DefaultHTTPPort
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", handler.Chat)
	mux.HandleFunc("POST /api/execute", handler.Execute)
	mux.HandleFunc("GET /api/settings", handler.GetSettings)
	mux.HandleFunc("POST /api/settings", handler.UpdateSettings)
	mux.HandleFunc("POST /api/conversation/clear", handler.ClearConversation)
	mux.HandleFunc("GET /api/health", handler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	// Middleware chain - recovery outermost so panics in the inner layers are
	// still turned into a 500.
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = cfg.RateLimit
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	var root http.Handler = mux
	root = rateLimitMiddleware(limiter, logger, root)
	root = cors.Default().Handler(root)
	root = loggingMiddleware(logger, root)
	root = recoveryMiddleware(logger, root)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           root,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving HTTP requests. It blocks until the server is stopped
// via signal or Stop().
func (s *Server) Start() error {
	// Graceful shutdown on SIGINT/SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		s.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		s.Stop()
	}()

	s.logger.Info("ROSA agent HTTP server starting",
		zap.Int("port", s.config.Port),
		zap.String("static_dir", s.config.StaticDir),
		zap.Int("rate_limit", s.config.RateLimit),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	s.logger.Info("ROSA agent HTTP server stopped")
	return nil
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warn("Forced shutdown", zap.Error(err))
		_ = s.httpServer.Close()
	}
}
