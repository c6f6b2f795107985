package api

import (
	"net/http"

	"github.com/Saksham932007/Attendance/internal/aggregator"
	"github.com/Saksham932007/Attendance/internal/attendance"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// EmployeesResponse is the employee overview
type EmployeesResponse struct {
	Message        string                  `json:"message,omitempty"`
	TotalEmployees int                     `json:"total_employees"`
	Employees      []types.EmployeeSummary `json:"employees"`
}

// EmployeeDetailResponse is one employee's summary plus their records
type EmployeeDetailResponse struct {
	Employee types.EmployeeSummary    `json:"employee"`
	Records  []types.AttendanceRecord `json:"attendance_records"`
}

// EmployeesHandler serves the employee overview and dashboard statistics
type EmployeesHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewEmployeesHandler creates a new EmployeesHandler
func NewEmployeesHandler(store storage.Store, logger zerolog.Logger) *EmployeesHandler {
	return &EmployeesHandler{
		store:  store,
		logger: logger.With().Str("component", "employees_handler").Logger(),
	}
}

// List returns every employee with metrics and recent status
// GET /api/employees
func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, records, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	if len(employees) == 0 {
		writeJSON(w, http.StatusOK, EmployeesResponse{
			Message:   "No employees found. Please generate sample data first.",
			Employees: []types.EmployeeSummary{},
		})
		return
	}

	summaries := aggregator.EmployeeSummaries(employees, records)
	writeJSON(w, http.StatusOK, EmployeesResponse{
		TotalEmployees: len(summaries),
		Employees:      summaries,
	})
}

// Get returns one employee summary with the employee's records, newest first
// GET /api/employees/{employeeId}
func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	employees, records, ok := h.loadDataset(w, r)
	if !ok {
		return
	}

	for _, emp := range employees {
		if emp.EmployeeID != employeeID {
			continue
		}
		own := attendance.GroupByEmployee(records)[employeeID]
		if own == nil {
			own = []types.AttendanceRecord{}
		}
		writeJSON(w, http.StatusOK, EmployeeDetailResponse{
			Employee: aggregator.EmployeeSummary(emp, own),
			Records:  attendance.SortNewestFirst(own),
		})
		return
	}

	writeError(w, http.StatusNotFound, "employee "+employeeID+" not found")
}

// DashboardStats returns store counts and the stored run's headline numbers
// GET /api/dashboard-stats
func (h *EmployeesHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.Counts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count dataset")
		writeError(w, http.StatusInternalServerError, "failed to load dashboard statistics")
		return
	}

	var results []types.AnalysisResult
	if counts.Results > 0 {
		if results, err = h.store.ListAnalysisResults(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("failed to load analysis results")
			writeError(w, http.StatusInternalServerError, "failed to load dashboard statistics")
			return
		}
	}

	writeJSON(w, http.StatusOK, aggregator.DashboardStats(counts, results))
}

func (h *EmployeesHandler) loadDataset(w http.ResponseWriter, r *http.Request) ([]types.Employee, []types.AttendanceRecord, bool) {
	employees, err := h.store.ListEmployees(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load employees")
		writeError(w, http.StatusInternalServerError, "failed to load employees")
		return nil, nil, false
	}
	records, err := h.store.ListRecords(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load attendance records")
		writeError(w, http.StatusInternalServerError, "failed to load attendance records")
		return nil, nil, false
	}
	return employees, records, true
}
