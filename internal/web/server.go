// Package web provides the hosted chat UI and HTTP API.
//
// Endpoints:
//
//	GET  /            single-page chat form (embedded assets)
//	POST /api/chat    one conversation turn (JSON request/response)
//	GET  /health      liveness probe
//	GET  /ready       readiness probe
//
// The page keeps the conversation history client-side and sends it fresh
// with every request; the server holds no session state.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/koopa0/studybot/internal/chat"
	"github.com/koopa0/studybot/internal/knowledge"
	"github.com/koopa0/studybot/internal/log"
	"github.com/koopa0/studybot/internal/web/static"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:7860"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation on a slow provider blocks the request, so this is generous.
	WriteTimeout = 5 * time.Minute

	// IdleTimeout is the maximum keep-alive wait for the next request.
	IdleTimeout = 2 * time.Minute
)

// Server is the HTTP server for the chat UI and API.
type Server struct {
	mux     *http.ServeMux
	logger  log.Logger
	limiter *rateLimiter
}

// ServerConfig contains configuration for creating a Server.
type ServerConfig struct {
	Logger    log.Logger
	Responder *chat.Responder // nil disables the chat endpoint (404)
	Store     knowledge.Store // used by the readiness probe; may be nil

	// RatePerSecond and RateBurst configure per-IP rate limiting of the
	// chat endpoint. Zero values fall back to defaults.
	RatePerSecond float64
	RateBurst     int

	// TrustProxy enables X-Real-IP/X-Forwarded-For handling for rate
	// limiting. Only set behind a reverse proxy.
	TrustProxy bool
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 5
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 10
	}

	mux := http.NewServeMux()
	s := &Server{
		mux:     mux,
		logger:  logger,
		limiter: newRateLimiter(perSecond, burst),
	}

	health := newHealthHandler(cfg.Store, logger)
	health.registerRoutes(mux)

	if cfg.Responder != nil {
		chatHandler := newChatHandler(cfg.Responder, logger)
		limited := rateLimitMiddleware(s.limiter, cfg.TrustProxy, logger)
		mux.Handle("POST /api/chat", limited(http.HandlerFunc(chatHandler.send)))
	} else {
		logger.Warn("responder is nil, chat endpoint not registered")
	}

	// The embedded single-page UI is the catch-all GET route.
	mux.Handle("GET /", static.Handler())

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery -> logging -> routes.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger),
	)
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
