package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"example.com/extracurricular/internal/api"
	"example.com/extracurricular/internal/config"
	"example.com/extracurricular/internal/domain"
	"example.com/extracurricular/internal/events"
	"example.com/extracurricular/internal/registry"
	"example.com/extracurricular/internal/telemetry"
	httptransport "example.com/extracurricular/internal/transport/http"
)

func main() {
	cfg := config.Load()
	logger := telemetry.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	seed, err := registry.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		logger.Error("failed to load activity seed", "seed_file", cfg.SeedFile, "error", err)
		os.Exit(1)
	}
	reg := registry.NewInMemoryRegistry(seed)
	logger.Info("activity registry seeded", "activities", len(seed))

	opts := []domain.Option{domain.WithLogger(logger)}
	if cfg.EventsEnabled() {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("closing kafka producer", "error", err)
			}
		}()
		opts = append(opts, domain.WithNotifier(events.NewPublisher(producer, cfg.RosterTopic, cfg.PublishTimeout)))
		logger.Info("roster events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.RosterTopic)
	}
	service := domain.NewService(reg, opts...)

	mux := http.NewServeMux()
	api.NewHandler(service, logger).RegisterRoutes(mux)
	if cfg.StaticDir != "" {
		api.RegisterStatic(mux, cfg.StaticDir)
	}
	mux.Handle("GET /metrics", promhttp.Handler())

	chain := httptransport.Chain(
		httptransport.Recovery(logger),
		httptransport.RequestID(),
		httptransport.Logging(logger),
		httptransport.CORS(cfg.CORSAllowedOrigin),
	)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, chain(mux))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("extracurricular-api listening", "addr", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	failed := false
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", "error", err)
			failed = true
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("stopped")
	if failed {
		os.Exit(1)
	}
}
