package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Saksham932007/Attendance/internal/aggregator"
	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
)

// Analyzer runs one analysis over the stored dataset
type Analyzer interface {
	Run(ctx context.Context) (types.CohortSummary, []types.AnalysisResult, error)
}

// AnalyzeResponse is returned by a completed analysis run
type AnalyzeResponse struct {
	Message         string                 `json:"message"`
	Summary         types.CohortSummary    `json:"summary"`
	DetailedResults []types.AnalysisResult `json:"detailed_results"`
}

// ReportResponse is the stored report
type ReportResponse struct {
	Summary types.CohortSummary    `json:"summary"`
	Results []types.AnalysisResult `json:"results"`
}

// AnalysisHandler triggers analysis runs and serves stored reports
type AnalysisHandler struct {
	analyzer Analyzer
	store    storage.Store
	logger   zerolog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analyzer Analyzer, store storage.Store, logger zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		store:    store,
		logger:   logger.With().Str("component", "analysis_handler").Logger(),
	}
}

// Analyze runs the analysis and returns the full result set
// POST /api/analyze-attendance
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	summary, results, err := h.analyzer.Run(r.Context())
	switch {
	case errors.Is(err, analysis.ErrNoData):
		writeError(w, http.StatusNotFound, "No attendance data found. Please generate sample data first.")
		return
	case errors.Is(err, analysis.ErrRunInProgress):
		writeError(w, http.StatusConflict, runInProgressMessage)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Message:         "Attendance analysis completed successfully",
		Summary:         summary,
		DetailedResults: results,
	})
}

// Report returns the stored results with a recomputed summary
// GET /api/attendance-report
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.ListAnalysisResults(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load analysis results")
		writeError(w, http.StatusInternalServerError, "failed to load analysis results")
		return
	}
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "No analysis results found. Please run attendance analysis first.")
		return
	}

	writeJSON(w, http.StatusOK, ReportResponse{
		Summary: aggregator.Summarize(results, time.Time{}),
		Results: results,
	})
}
