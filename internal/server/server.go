// Package server provides the HTTP API for kotae.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/kotae/internal/assistant"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Answerer answers questions and reports what the knowledge base holds.
type Answerer interface {
	Answer(question string) *models.AnswerResult
	Stats() assistant.Stats
}

// Server is the HTTP server for the kotae API.
type Server struct {
	svc     Answerer
	config  *config.ServerConfig
	logger  *zap.Logger
	apology string
	limiter *rate.Limiter
	server  *http.Server
}

// NewServer creates a server with the given dependencies. apology is the
// answer returned when answering a question fails unexpectedly.
func NewServer(svc Answerer, cfg *config.ServerConfig, logger *zap.Logger, apology string) *Server {
	if cfg == nil {
		cfg = &config.ServerConfig{}
	}
	s := &Server{
		svc:     svc,
		config:  cfg,
		logger:  utils.OrNop(logger),
		apology: apology,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Handler returns the routed HTTP handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.cors)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.rateLimit)
	r.Use(middleware.Timeout(timeout))

	r.Post("/api/", s.handleAsk)
	r.Post("/api", s.handleAsk)
	r.Post("/", s.handleAsk)
	r.Get("/api/", s.handleUsage)
	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.config.Addr()
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
