// Package main is the entry point for the Agent Chopra risk and
// recommendation service. It scores risk questionnaires, maps scores to
// static risk profiles, recommends stocks from a fixed universe, and
// reports portfolio-level risk - paper trading decision support, no order
// execution.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/agentchopra/chopra/internal/clientdata"
	"github.com/agentchopra/chopra/internal/clients/marketdata"
	"github.com/agentchopra/chopra/internal/config"
	"github.com/agentchopra/chopra/internal/database"
	"github.com/agentchopra/chopra/internal/domain"
	"github.com/agentchopra/chopra/internal/modules/assessment"
	assessmenthandlers "github.com/agentchopra/chopra/internal/modules/assessment/handlers"
	"github.com/agentchopra/chopra/internal/modules/portfolio"
	portfoliohandlers "github.com/agentchopra/chopra/internal/modules/portfolio/handlers"
	"github.com/agentchopra/chopra/internal/modules/recommendation"
	recommendationhandlers "github.com/agentchopra/chopra/internal/modules/recommendation/handlers"
	"github.com/agentchopra/chopra/internal/scheduler"
	"github.com/agentchopra/chopra/internal/server"
	"github.com/agentchopra/chopra/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Agent Chopra")

	// Databases: durable assessments plus an ephemeral client data cache.
	assessmentsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "assessments.db"),
		Profile: database.ProfileStandard,
		Name:    "assessments",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open assessments database")
	}
	defer assessmentsDB.Close()

	clientDataDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open client data database")
	}
	defer clientDataDB.Close()

	for _, db := range []*database.DB{assessmentsDB, clientDataDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Failed to migrate database")
		}
	}
	log.Info().Msg("Databases initialized")

	// Stock universe: built-in table, optionally overridden from YAML.
	universe := recommendation.DefaultUniverse()
	if cfg.UniverseFile != "" {
		universe, err = recommendation.LoadUniverse(cfg.UniverseFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.UniverseFile).Msg("Failed to load universe file")
		}
		log.Info().Int("stocks", len(universe)).Str("file", cfg.UniverseFile).Msg("Universe loaded from file")
	}

	// Market data: only wired when credentials are present. Without it the
	// recommendation engine runs with placeholder prices.
	cacheRepo := clientdata.NewRepository(clientDataDB.Conn())
	var prices domain.PriceProvider
	if cfg.MarketDataAPIKey != "" {
		prices = marketdata.NewClient(cfg.MarketDataAPIKey, cfg.MarketDataBaseURL, cacheRepo, log)
		log.Info().Msg("Market data client initialized")
	} else {
		log.Warn().Msg("No market data API key, recommendations will carry placeholder prices")
	}

	// Services
	assessmentService := assessment.NewService(cfg.WeightingScheme, log)
	assessmentRepo := assessment.NewRepository(assessmentsDB.Conn())
	engine := recommendation.NewEngine(universe, prices, log)
	portfolioService := portfolio.NewService(universe, log)

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.CacheCleanupSpec, clientdata.NewCleanupJob(cacheRepo, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache cleanup job")
	}
	if prices != nil {
		if err := sched.AddJob(cfg.QuoteRefreshSpec, scheduler.NewQuoteRefreshJob(universe, prices, log)); err != nil {
			log.Fatal().Err(err).Msg("Failed to register quote refresh job")
		}
	}
	sched.Start()

	// HTTP server
	srv := server.New(server.Config{
		Log:                    log,
		Config:                 cfg,
		AssessmentsDB:          assessmentsDB,
		ClientDataDB:           clientDataDB,
		AssessmentHandlers:     assessmenthandlers.NewHandler(assessmentService, assessmentRepo, log),
		RecommendationHandlers: recommendationhandlers.NewHandler(engine, log),
		PortfolioHandlers:      portfoliohandlers.NewHandler(portfolioService, log),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Agent Chopra started")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Agent Chopra stopped")
}
