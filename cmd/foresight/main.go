package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brickline-Labs/Foresight/internal/api"
	"github.com/Brickline-Labs/Foresight/internal/config"
	"github.com/Brickline-Labs/Foresight/internal/events"
	"github.com/Brickline-Labs/Foresight/internal/scoring"
	"github.com/Brickline-Labs/Foresight/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event bus, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event bus")
		}
	}

	// Scoring engines
	screeningWeights := scoring.ScreeningWeightSet{
		Financial:     cfg.Scoring.ScreeningWeights.Financial,
		RentalHistory: cfg.Scoring.ScreeningWeights.RentalHistory,
		Employment:    cfg.Scoring.ScreeningWeights.Employment,
		Communication: cfg.Scoring.ScreeningWeights.Communication,
		Documents:     cfg.Scoring.ScreeningWeights.Documents,
	}
	if err := screeningWeights.Validate(); err != nil {
		logger.Error("invalid screening weights", "error", err)
		os.Exit(1)
	}
	moveOutWeights := scoring.MoveOutWeightSet{
		LeaseHorizon: cfg.Scoring.MoveOutWeights.LeaseHorizon,
		PaymentTrend: cfg.Scoring.MoveOutWeights.PaymentTrend,
		RentDelta:    cfg.Scoring.MoveOutWeights.RentDelta,
		Complaints:   cfg.Scoring.MoveOutWeights.Complaints,
		Sentiment:    cfg.Scoring.MoveOutWeights.Sentiment,
		Tenure:       cfg.Scoring.MoveOutWeights.Tenure,
	}
	if err := moveOutWeights.Validate(); err != nil {
		logger.Error("invalid move-out weights", "error", err)
		os.Exit(1)
	}

	screener := scoring.NewScreener(screeningWeights, logger)
	predictor := scoring.NewMoveOutPredictor(moveOutWeights, logger)

	// API server
	router := api.NewRouter(db, eventsClient, screener, predictor, cfg, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
