package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Philip-Ajayi/SHC/internal/api"
	"github.com/Philip-Ajayi/SHC/internal/config"
	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"github.com/Philip-Ajayi/SHC/internal/email"
	"github.com/Philip-Ajayi/SHC/internal/metrics"
	"github.com/Philip-Ajayi/SHC/internal/payments"
	"github.com/Philip-Ajayi/SHC/internal/storage/mongodb"
	"github.com/Philip-Ajayi/SHC/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SHC HTTP server",
	Long: `Start the SHC HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables
- Connect to MongoDB and ensure the attendee email index
- Start the HTTP server with registration, attendance, contact,
  broadcast, unsubscribe, and checkout endpoints
- Serve the built frontend for all remaining routes
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  shc serve

  # Start on a specific host and port
  shc serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  shc serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	// Server-specific flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 5000)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Override config with flags if provided
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Msg("starting SHC server")

	metrics.Init(Version, GitCommit, BuildDate)
	logger.Info().Str("version", Version).Msg("metrics initialized")

	// Initialize tracing
	tracingCtx, tracingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	shutdownTracing, err := telemetry.InitTracing(tracingCtx, cfg.Tracing, Version)
	tracingCancel()
	if err != nil {
		return fmt.Errorf("tracing init failed: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error().Err(err).Msg("tracing shutdown error")
		}
	}()

	// Connect to MongoDB
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongodb.Connect(connectCtx, cfg.Mongo)
	connectCancel()
	if err != nil {
		return fmt.Errorf("mongodb connection failed: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("mongodb disconnect error")
		}
	}()
	logger.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	indexCtx, indexCancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, err := mongodb.NewAttendeesRepository(indexCtx, client.Database(cfg.Mongo.Database))
	indexCancel()
	if err != nil {
		return fmt.Errorf("attendees repository init failed: %w", err)
	}

	emailService, err := email.NewService(cfg.Email, cfg.Server.BaseURL, logger)
	if err != nil {
		return fmt.Errorf("email service init failed: %w", err)
	}
	if !cfg.Email.Enabled {
		logger.Warn().Msg("email delivery disabled, confirmations and broadcasts will be skipped")
	}

	deps := api.Dependencies{
		Attendees: attendees.NewService(repo, logger),
		Email:     emailService,
		Payments:  payments.NewClient(cfg.Payments, cfg.Server.BaseURL, logger),
		Store:     mongodb.Pinger{Client: client},
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, logger, deps),
		ReadTimeout:       10 * time.Second, // Total time to read request
		WriteTimeout:      30 * time.Second, // Total time to write response
		ReadHeaderTimeout: 5 * time.Second,  // Time to read headers
		MaxHeaderBytes:    1 << 20,          // 1 MB max header size
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	// Override logging from flags if provided
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
