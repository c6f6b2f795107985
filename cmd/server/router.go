package main

import (
	"net/http"

	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/api"
	"github.com/Saksham932007/Attendance/internal/config"
	"github.com/Saksham932007/Attendance/internal/ingestion"
	"github.com/Saksham932007/Attendance/internal/metrics"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/websocket"
	"github.com/Saksham932007/Attendance/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// services bundles what the router dispatches to
type services struct {
	cfg          *config.Config
	store        storage.Store
	orchestrator *analysis.Orchestrator
	hub          *websocket.Hub
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

func newRouter(s services) http.Handler {
	processor := ingestion.NewProcessor(s.store, s.logger)
	datasets := api.NewDatasetHandler(processor, s.orchestrator, s.cfg.SampleEmployees, s.cfg.SampleDays, s.logger)
	runs := api.NewAnalysisHandler(s.orchestrator, s.store, s.logger)
	employees := api.NewEmployeesHandler(s.store, s.logger)
	admin := api.NewAdminHandler(s.store, s.orchestrator, s.logger)
	wsHandler := websocket.NewHandler(s.hub, s.cfg, s.logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(s.cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Get("/sample-data", datasets.GenerateSample)
		r.Post("/sample-data", datasets.GenerateSample)
		r.Post("/upload-attendance", datasets.Upload)

		r.Post("/analyze-attendance", runs.Analyze)
		r.Get("/attendance-report", runs.Report)

		r.Get("/employees", employees.List)
		r.Get("/employees/{employeeId}", employees.Get)
		r.Get("/dashboard-stats", employees.DashboardStats)

		r.Delete("/dataset", admin.ResetDataset)
	})

	r.Get("/ws", wsHandler.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","service":"AI Attendance Analyzer"}`))
}
