package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/career-risk-agent/internal/config"
	"github.com/BerylCAtieno/career-risk-agent/internal/logging"
	"github.com/BerylCAtieno/career-risk-agent/internal/server"
)

var (
	servePort     string
	serveProvider string
	serveModel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the HTTP server exposing the risk and insight API, the assessment form and the premium insights pages.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "Model provider: openai, gemini or anthropic (overrides LLM_PROVIDER)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Model name (overrides LLM_MODEL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if serveProvider != "" {
		cfg.Provider = serveProvider
	}
	if serveModel != "" {
		cfg.Model = serveModel
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	logging.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", logging.ErrAttrs(err)...)
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	logger.Info("configuration loaded", "config", cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.With(ctx, logger)

	srv, err := server.New(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
