package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/trogers1052/portfolio-analytics/internal/analytics"
	"github.com/trogers1052/portfolio-analytics/internal/api"
	"github.com/trogers1052/portfolio-analytics/internal/config"
	"github.com/trogers1052/portfolio-analytics/internal/database"
	"github.com/trogers1052/portfolio-analytics/internal/kafka"
	"github.com/trogers1052/portfolio-analytics/internal/logger"
	"github.com/trogers1052/portfolio-analytics/internal/metrics"
	"github.com/trogers1052/portfolio-analytics/internal/provider"
	"github.com/trogers1052/portfolio-analytics/internal/redis"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Str("source", cfg.Data.Source).Msg("Starting portfolio analytics service")

	// Load the dataset once; nothing is served without it
	src, closeSource, err := newProvider(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up data provider")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	store, err := provider.NewStore(loadCtx, src)
	loadCancel()
	if err != nil {
		closeSource()
		log.Fatal().Err(err).Msg("Failed to load portfolio dataset")
	}

	// The database stays open for health checks; other providers are done
	db, keepDB := src.(*database.DB)
	if keepDB {
		defer db.Close()
	} else if err := closeSource(); err != nil {
		log.Warn().Err(err).Msg("Error closing data provider")
	}
	log.Info().Str("source", store.Source()).Str("fingerprint", store.Fingerprint()).Msg("Portfolio dataset loaded")

	m := metrics.New()
	reportDataset(store, m, log)

	// Connect to Redis
	var cache api.ViewCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis (continuing without cache)")
		} else {
			defer redisClient.Close()
			cache = redisClient
			log.Info().Str("addr", cfg.Redis.Address()).Msg("Connected to Redis view cache")
		}
	}

	// Set up HTTP handler and routes
	handler := api.NewHandler(store, cache, cfg.Redis.ViewTTL, m, log)
	if keepDB {
		handler.SetDatabase(db)
	}
	router := api.SetupRoutes(handler, cfg.Server.AllowedOrigins)

	// Create HTTP server
	addr := cfg.Server.Address()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// newProvider builds the configured data provider and a function that
// releases its resources once the dataset is loaded
func newProvider(cfg *config.Config, log zerolog.Logger) (provider.Provider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Data.Source {
	case config.SourceFixtures:
		return provider.NewFixtures(), noop, nil

	case config.SourcePostgres:
		applied, err := database.Migrate(cfg.Database.ConnectionString(), cfg.Data.MigrationsDir)
		if err != nil {
			return nil, nil, err
		}
		if applied {
			log.Info().Msg("Applied database migrations")
		} else {
			log.Info().Msg("No migrations to apply; database is up to date")
		}

		db, err := database.New(cfg.Database.ConnectionString())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("host", cfg.Database.Host).Msg("Connected to PostgreSQL database")
		return db, db.Close, nil

	case config.SourceKafka:
		consumer := kafka.NewSnapshotConsumer(cfg.Kafka.Brokers, cfg.Kafka.SnapshotTopic, log)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.SnapshotTopic).Msg("Kafka snapshot consumer initialized")
		return consumer, consumer.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
}

// reportDataset logs section validation failures and divergences between
// supplied facts and computed figures, and publishes dataset gauges
func reportDataset(store *provider.Store, m *metrics.Metrics, log zerolog.Logger) {
	for _, section := range []string{"holdings", "performance", "summary", "top_performers"} {
		err, invalid := store.Errors()[section]
		m.SetSectionInvalid(section, invalid)
		if invalid {
			log.Error().Err(err).Str("section", section).Msg("Dataset section failed validation")
		}
	}

	holdings, err := store.Holdings()
	if err != nil {
		return
	}

	// A summary section that failed validation is reported above
	facts, _ := store.SummaryFacts()
	summary := analytics.ComputePortfolioSummary(holdings, facts)
	m.SetDataset(summary.HoldingCount, summary.TotalValue)

	divergences := analytics.ReconcileSummary(summary, facts)
	if topFacts, err := store.TopPerformerFacts(); err == nil {
		set, _ := analytics.TopPerformers(holdings)
		divergences = append(divergences, analytics.ReconcileTopPerformers(set, topFacts)...)
	}
	for _, d := range divergences {
		log.Warn().
			Str("metric", d.Metric).
			Str("field", d.Field).
			Str("supplied", d.Supplied).
			Str("computed", d.Computed).
			Msg("Supplied fact diverges from computed value")
	}
}
