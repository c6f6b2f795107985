package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
)

// DatasetGuard serializes dataset replacement against analysis runs.
// Exclusive returns analysis.ErrRunInProgress while a run is active.
type DatasetGuard interface {
	Exclusive(fn func() error) error
}

// unguarded runs fn directly, for handlers built without a guard
type unguarded struct{}

func (unguarded) Exclusive(fn func() error) error { return fn() }

func guardOrDefault(g DatasetGuard) DatasetGuard {
	if g == nil {
		return unguarded{}
	}
	return g
}

const runInProgressMessage = "An analysis is already running. Please wait for it to finish."

// AdminHandler handles maintenance operations on the stored data
type AdminHandler struct {
	store  storage.Store
	guard  DatasetGuard
	logger zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(store storage.Store, guard DatasetGuard, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		store:  store,
		guard:  guardOrDefault(guard),
		logger: logger.With().Str("component", "admin_handler").Logger(),
	}
}

// ResetDataset removes employees, records and analysis results
// DELETE /api/dataset
func (h *AdminHandler) ResetDataset(w http.ResponseWriter, r *http.Request) {
	var before types.DatasetCounts
	err := h.guard.Exclusive(func() error {
		var err error
		if before, err = h.store.Counts(r.Context()); err != nil {
			return fmt.Errorf("failed to count dataset: %w", err)
		}
		return h.store.ReplaceDataset(context.WithoutCancel(r.Context()), nil, nil)
	})
	switch {
	case errors.Is(err, analysis.ErrRunInProgress):
		writeError(w, http.StatusConflict, runInProgressMessage)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to reset dataset")
		writeError(w, http.StatusInternalServerError, "failed to reset dataset")
		return
	}

	h.logger.Info().
		Int("employees", before.Employees).
		Int("records", before.Records).
		Int("results", before.Results).
		Msg("dataset reset")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "dataset reset",
		"cleared": before,
	})
}
