package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/config"
	"github.com/Saksham932007/Attendance/internal/metrics"
	"github.com/Saksham932007/Attendance/internal/narrative"
	"github.com/Saksham932007/Attendance/internal/scheduler"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	storeCfg := storage.LoadConfig()

	log.Info().
		Str("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Str("store_mode", string(storeCfg.Mode)).
		Str("narrative_provider", cfg.Narrative.Provider).
		Msg("starting attendance analyzer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewStore(ctx, storeCfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	orchestrator := analysis.NewOrchestrator(
		store,
		narrative.New(cfg.Narrative, log.Logger),
		hub,
		analysis.Options{
			NarrativeTimeout: cfg.NarrativeTimeout,
			Concurrency:      cfg.NarrativeConcurrency,
		},
		log.Logger,
	)

	if cfg.AnalysisSchedule != "" {
		sched, err := scheduler.NewScheduler(cfg.AnalysisSchedule, orchestrator, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid analysis schedule")
		}
		go sched.Start(ctx)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: newRouter(services{
			cfg:          cfg,
			store:        store,
			orchestrator: orchestrator,
			hub:          hub,
			metrics:      metrics.Get(),
			logger:       log.Logger,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop scheduled runs
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}

	log.Info().Msg("server stopped")
}
