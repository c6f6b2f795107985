package ingestion

import (
	"context"
	"errors"
	"fmt"

	"github.com/Saksham932007/Attendance/internal/metrics"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Report summarizes a stored dataset
type Report struct {
	Employees int `json:"employees_count"`
	Records   int `json:"records_count"`
	// Duplicates lists employee_id/date pairs seen more than once; they are kept
	Duplicates []string `json:"duplicate_records,omitempty"`
	// UnknownEmployees counts records whose employee_id is not in the roster
	UnknownEmployees int `json:"unknown_employee_records,omitempty"`
}

// Processor validates datasets and hands them to the store
type Processor struct {
	writer   DatasetWriter
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProcessor creates a new Processor
func NewProcessor(writer DatasetWriter, logger zerolog.Logger) *Processor {
	return &Processor{
		writer:   writer,
		validate: newValidator(),
		logger:   logger.With().Str("component", "ingestion").Logger(),
	}
}

// Validate applies defaults to data in place and checks it.
// Returns a *ValidationError when the dataset is rejected.
func (p *Processor) Validate(data *types.AttendanceData) (Report, error) {
	for i := range data.AttendanceRecords {
		if data.AttendanceRecords[i].Status == "" {
			data.AttendanceRecords[i].Status = types.StatusAbsent
		}
	}

	if err := p.validate.Struct(data); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Report{}, &ValidationError{Problems: describe(verrs), Err: err}
		}
		return Report{}, fmt.Errorf("failed to validate attendance data: %w", err)
	}

	roster := make(map[string]struct{}, len(data.Employees))
	var problems []string
	for _, emp := range data.Employees {
		if _, dup := roster[emp.EmployeeID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate employee_id %q", emp.EmployeeID))
			continue
		}
		roster[emp.EmployeeID] = struct{}{}
	}
	if len(problems) > 0 {
		return Report{}, &ValidationError{Problems: problems}
	}

	report := Report{
		Employees: len(data.Employees),
		Records:   len(data.AttendanceRecords),
	}
	seen := make(map[string]int, len(data.AttendanceRecords))
	for _, rec := range data.AttendanceRecords {
		if _, ok := roster[rec.EmployeeID]; !ok {
			report.UnknownEmployees++
		}
		key := rec.EmployeeID + "/" + rec.Date
		seen[key]++
		if seen[key] == 2 {
			report.Duplicates = append(report.Duplicates, key)
		}
	}

	return report, nil
}

// Ingest validates data and replaces the stored dataset with it
func (p *Processor) Ingest(ctx context.Context, source Source, data *types.AttendanceData) (Report, error) {
	report, err := p.Validate(data)
	if err != nil {
		metrics.Get().RecordIngestionError()
		return Report{}, err
	}

	if err := p.writer.ReplaceDataset(ctx, data.Employees, data.AttendanceRecords); err != nil {
		return Report{}, fmt.Errorf("failed to store dataset: %w", err)
	}
	metrics.Get().RecordDatasetIngested(string(source), report.Records)

	event := p.logger.Info()
	if len(report.Duplicates) > 0 || report.UnknownEmployees > 0 {
		event = p.logger.Warn().
			Int("duplicates", len(report.Duplicates)).
			Int("unknown_employee_records", report.UnknownEmployees)
	}
	event.
		Str("source", string(source)).
		Int("employees", report.Employees).
		Int("records", report.Records).
		Str("analysis_period", data.AnalysisPeriod).
		Msg("dataset stored")

	return report, nil
}
