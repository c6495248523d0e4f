package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lernwerk/compass/internal/config"
	dbValkey "github.com/lernwerk/compass/internal/db/valkey"
	"github.com/lernwerk/compass/internal/domain/region"
	logpkg "github.com/lernwerk/compass/internal/logger"
	"github.com/lernwerk/compass/internal/metrics"
	sessionrepo "github.com/lernwerk/compass/internal/repository/session"
	chiTransport "github.com/lernwerk/compass/internal/transport/chi"
	healthuc "github.com/lernwerk/compass/internal/usecase/health"
	quizuc "github.com/lernwerk/compass/internal/usecase/quiz"
	scoringuc "github.com/lernwerk/compass/internal/usecase/scoring"
	"github.com/lernwerk/compass/internal/version"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting compass API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	engine, err := cfg.Engine()
	if err != nil {
		logger.Fatal("Invalid engine configuration", zap.Error(err))
	}
	quizCatalog, err := cfg.Quiz.Catalog()
	if err != nil {
		logger.Fatal("Failed to load quiz catalog", zap.Error(err))
	}

	metrics.RegisterEngineMetrics()
	recorder := metrics.Recorder{}

	sessions, pinger, closeStore := buildSessionStore(cfg, logger)
	defer closeStore()

	graph, err := region.Switzerland(engine.Tiers)
	if err != nil {
		logger.Fatal("Failed to build proximity graph", zap.Error(err))
	}
	scorer, err := scoringuc.NewScorer(graph, engine.Categories, engine.Scoring)
	if err != nil {
		logger.Fatal("Failed to build scorer", zap.Error(err))
	}

	scoringSvc := scoringuc.New(scorer, logger.Named("scoring")).
		WithWorkers(cfg.Scoring.Workers).
		WithDiversityCap(cfg.Scoring.DiversityCap).
		WithMaxCandidates(cfg.Scoring.MaxCandidates).
		WithRecorder(recorder)

	quizSvc, err := quizuc.New(sessions, quizCatalog, engine.Rules, logger.Named("quiz"))
	if err != nil {
		logger.Fatal("Failed to create quiz service", zap.Error(err))
	}
	quizSvc.WithRecorder(recorder)

	healthSvc := healthuc.New(pinger)

	server := chiTransport.NewServer(scoringSvc, quizSvc, healthSvc, logger).
		WithScoreDefaults(cfg.Scoring.DefaultMinScore, cfg.Scoring.DefaultBatchSize).
		WithMaxBodyBytes(int64(cfg.HTTP.MaxBodyKB) << 10)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chiTransport.NewRouter(server, logger, cfg.Auth.APIKeys),
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSessionStore creates the quiz session store selected by the database
// driver, together with its health pinger and a close function.
func buildSessionStore(cfg config.Config, logger *zap.Logger) (quizuc.SessionStore, healthuc.Pinger, func()) {
	ttl := time.Duration(cfg.Database.SessionTTLMin) * time.Minute

	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory session store; sessions are lost on restart")
		mem := sessionrepo.NewMemory(ttl)
		return mem, mem, func() {}
	case "valkey":
		store, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}

		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			store.Close()
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")

		repo := sessionrepo.New(store, cfg.Storage.KeyPrefix, ttl, logger.Named("sessions"))
		return repo, store, store.Close
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
		return nil, nil, nil
	}
}
