// Package server provides the HTTP serving surface of the fit scoring
// engine: scoring, extraction, artifact reload, and health.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/extraction"
	"github.com/jonathan/resume-fit/internal/predictor"
)

// Server wraps the predictor behind a small REST API.
type Server struct {
	httpServer   *http.Server
	pred         *predictor.Predictor
	ext          *extraction.Extractor
	validate     *validator.Validate
	log          *zap.Logger
	artifactPath string
}

// Config holds server configuration.
type Config struct {
	Addr         string
	ArtifactPath string
}

// New creates a server around an already-constructed predictor. The
// predictor may be in any state; degraded predictors still serve.
func New(cfg Config, pred *predictor.Predictor, ext *extraction.Extractor, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		pred:         pred,
		ext:          ext,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		log:          log,
		artifactPath: cfg.ArtifactPath,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/score", s.handleScore)
	mux.HandleFunc("POST /v1/extract", s.handleExtract)
	mux.HandleFunc("POST /v1/reload", s.handleReload)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRequestID(s.withLogging(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening and blocks until an interrupt or server error.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	s.log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured handler chain, primarily for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }
