// Package server wires configuration, gateways and HTTP routes together.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"

	"github.com/BerylCAtieno/career-risk-agent/internal/analysis"
	"github.com/BerylCAtieno/career-risk-agent/internal/api"
	"github.com/BerylCAtieno/career-risk-agent/internal/config"
	"github.com/BerylCAtieno/career-risk-agent/internal/gateway"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/report"
	"github.com/BerylCAtieno/career-risk-agent/internal/webui"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	httpServer *http.Server
	closers    []io.Closer
}

// New builds the model gateways and HTTP server for cfg. cfg must already
// be validated.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	s := &Server{}

	gw, err := gateway.New(ctx, gateway.Options{
		Provider:     gateway.Provider(cfg.Provider),
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		OpenAIKey:    cfg.OpenAIKey,
		OpenAIURL:    cfg.OpenAIURL,
		GeminiKey:    cfg.GeminiKey,
		AnthropicKey: cfg.AnthropicKey,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create model gateway", goerr.V("provider", cfg.Provider))
	}
	if c, ok := gw.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}

	var opts []analysis.Option
	if cfg.UseAssistant() {
		assistant, err := gateway.NewAssistantGateway(cfg.OpenAIKey, cfg.OpenAIURL, cfg.AssistantID, gateway.PollOptions{
			Interval:    cfg.PollInterval,
			MaxAttempts: cfg.PollMaxAttempts,
			Timeout:     cfg.PollTimeout,
		})
		if err != nil {
			s.Close()
			return nil, goerr.Wrap(err, "failed to create assistant gateway")
		}
		opts = append(opts, analysis.WithPathwayGateway(gateway.Logged(assistant, "openai-assistant")))
	}

	analyzer := analysis.New(gateway.Logged(gw, cfg.Provider), opts...)
	router := NewRouter(analyzer, report.NewChromePDFRenderer(cfg.ChromePath))

	s.httpServer = &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// assistant runs and PDF exports can take well over a minute
		WriteTimeout: cfg.PollTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// NewRouter mounts the JSON API and the UI on one engine.
func NewRouter(analyzer *analysis.Analyzer, renderer report.Renderer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.RequestLoggingMiddleware())
	api.NewHandler(analyzer).Register(r)
	webui.New(analyzer, renderer).Register(r)
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()
	logger := logging.From(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return goerr.Wrap(err, "server failed", goerr.V("addr", s.httpServer.Addr))
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return goerr.Wrap(err, "server shutdown failed")
	}
	logger.Info("server stopped")
	return nil
}

// Close releases provider clients.
func (s *Server) Close() {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logging.Default().Warn("failed to close client", "error", err.Error())
		}
	}
	s.closers = nil
}
