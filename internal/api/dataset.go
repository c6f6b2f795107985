package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/ingestion"
	"github.com/Saksham932007/Attendance/internal/sample"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
)

const (
	maxUploadBytes    = 32 << 20
	maxSampleEmployee = 10000
	maxSampleDays     = 366
)

// DatasetResponse is returned after a dataset replaces the stored one
type DatasetResponse struct {
	Message string `json:"message"`
	ingestion.Report
	AnalysisPeriod string `json:"analysis_period,omitempty"`
}

// DatasetHandler handles sample generation and dataset uploads
type DatasetHandler struct {
	processor        *ingestion.Processor
	guard            DatasetGuard
	defaultEmployees int
	defaultDays      int
	logger           zerolog.Logger
}

// NewDatasetHandler creates a new DatasetHandler. Replacements are refused while guard
// reports an analysis in progress; a nil guard replaces unconditionally.
func NewDatasetHandler(processor *ingestion.Processor, guard DatasetGuard, defaultEmployees, defaultDays int, logger zerolog.Logger) *DatasetHandler {
	return &DatasetHandler{
		processor:        processor,
		guard:            guardOrDefault(guard),
		defaultEmployees: defaultEmployees,
		defaultDays:      defaultDays,
		logger:           logger.With().Str("component", "dataset_handler").Logger(),
	}
}

// GenerateSample replaces the stored dataset with generated sample data
// GET|POST /api/sample-data?employees=N&days=D&seed=S
func (h *DatasetHandler) GenerateSample(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	employees, err := intParam(q.Get("employees"), h.defaultEmployees, 1, maxSampleEmployee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "employees "+err.Error())
		return
	}
	days, err := intParam(q.Get("days"), h.defaultDays, 1, maxSampleDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "days "+err.Error())
		return
	}

	seed := time.Now().UnixNano()
	if s := q.Get("seed"); s != "" {
		if seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
	}

	data := sample.NewGenerator(seed).Generate(employees, days)
	report, err := h.ingest(r, ingestion.SourceSample, data)
	if errors.Is(err, analysis.ErrRunInProgress) {
		writeError(w, http.StatusConflict, runInProgressMessage)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store sample data")
		writeError(w, http.StatusInternalServerError, "failed to store sample data")
		return
	}

	writeJSON(w, http.StatusOK, DatasetResponse{
		Message:        "Sample data generated successfully",
		Report:         report,
		AnalysisPeriod: data.AnalysisPeriod,
	})
}

// Upload validates and stores a custom dataset
// POST /api/upload-attendance
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var data types.AttendanceData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	report, err := h.ingest(r, ingestion.SourceUpload, &data)
	if err != nil {
		var verr *ingestion.ValidationError
		if errors.Is(err, analysis.ErrRunInProgress) {
			writeError(w, http.StatusConflict, runInProgressMessage)
			return
		}
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error().Err(err).Msg("failed to store uploaded data")
		writeError(w, http.StatusInternalServerError, "failed to store attendance data")
		return
	}

	writeJSON(w, http.StatusOK, DatasetResponse{
		Message:        "Attendance data uploaded successfully",
		Report:         report,
		AnalysisPeriod: data.AnalysisPeriod,
	})
}

// ingest replaces the dataset while no analysis can start, so a run never
// persists results computed from a dataset that has since been replaced
func (h *DatasetHandler) ingest(r *http.Request, source ingestion.Source, data *types.AttendanceData) (ingestion.Report, error) {
	var report ingestion.Report
	err := h.guard.Exclusive(func() error {
		var err error
		report, err = h.processor.Ingest(r.Context(), source, data)
		return err
	})
	return report, err
}

// intParam parses an optional bounded integer query value
func intParam(raw string, def, min, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, errors.New("must be an integer between " + strconv.Itoa(min) + " and " + strconv.Itoa(max))
	}
	return n, nil
}
