package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Saksham932007/Attendance/internal/aggregator"
	"github.com/Saksham932007/Attendance/internal/attendance"
	"github.com/Saksham932007/Attendance/internal/metrics"
	"github.com/Saksham932007/Attendance/internal/narrative"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoData is returned when there are no employees or no attendance records to analyze
	ErrNoData = errors.New("no attendance data")

	// ErrRunInProgress is returned by Run while another run is active
	ErrRunInProgress = errors.New("analysis already in progress")
)

const DefaultConcurrency = 4

// Broadcaster receives progress events (the websocket hub in production)
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Options tunes the narrative fan-out
type Options struct {
	// NarrativeTimeout bounds each narrative call; zero disables the extra deadline
	NarrativeTimeout time.Duration
	// Concurrency caps in-flight narrative calls; 1 analyzes employees sequentially
	Concurrency int
}

// Orchestrator runs the per-employee pipeline and persists the result set
type Orchestrator struct {
	store     storage.Store
	generator narrative.Generator
	events    Broadcaster
	opts      Options
	logger    zerolog.Logger
	running   atomic.Bool
	now       func() time.Time
}

// NewOrchestrator creates a new Orchestrator; events may be nil
func NewOrchestrator(store storage.Store, gen narrative.Generator, events Broadcaster, opts Options, logger zerolog.Logger) *Orchestrator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		store:     store,
		generator: gen,
		events:    events,
		opts:      opts,
		logger:    logger.With().Str("component", "orchestrator").Logger(),
		now:       time.Now,
	}
}

// Running reports whether a Run or an exclusive dataset operation is active
func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

// Exclusive runs fn while no Run can start, for operations that replace the dataset.
// It fails with ErrRunInProgress when a Run or another exclusive operation is active.
func (o *Orchestrator) Exclusive(fn func() error) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	defer o.running.Store(false)
	return fn()
}

// Analyze computes results for employees in input order. It does not persist anything.
func (o *Orchestrator) Analyze(ctx context.Context, employees []types.Employee, records []types.AttendanceRecord) (types.CohortSummary, []types.AnalysisResult, error) {
	return o.analyze(ctx, uuid.New().String(), employees, records)
}

// Run loads the stored dataset, analyzes it and replaces the stored result set.
// A cancelled context aborts the run before anything is persisted.
func (o *Orchestrator) Run(ctx context.Context) (types.CohortSummary, []types.AnalysisResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		metrics.Get().RecordAnalysisRejected()
		return types.CohortSummary{}, nil, ErrRunInProgress
	}
	defer o.running.Store(false)

	runID := uuid.New().String()
	start := o.now()
	log := o.logger.With().Str("run_id", runID).Logger()

	summary, results, err := o.run(ctx, runID)
	if err != nil {
		metrics.Get().RecordAnalysisRun(0, nil)
		o.publish(types.AnalysisFailed{Type: types.EventAnalysisFailed, RunID: runID, Error: err.Error()})
		if errors.Is(err, ErrNoData) {
			log.Warn().Err(err).Msg("analysis skipped")
		} else {
			log.Error().Err(err).Msg("analysis failed")
		}
		return types.CohortSummary{}, nil, err
	}

	duration := o.now().Sub(start)
	metrics.Get().RecordAnalysisRun(duration, &summary)
	o.publish(types.AnalysisCompleted{Type: types.EventAnalysisCompleted, RunID: runID, Summary: summary})

	log.Info().
		Int("employees", summary.TotalEmployees).
		Int("meeting_threshold", summary.MeetingThreshold).
		Float64("average_attendance", summary.AverageAttendanceRate).
		Dur("duration", duration).
		Msg("analysis completed")

	return summary, results, nil
}

func (o *Orchestrator) run(ctx context.Context, runID string) (types.CohortSummary, []types.AnalysisResult, error) {
	employees, err := o.store.ListEmployees(ctx)
	if err != nil {
		return types.CohortSummary{}, nil, fmt.Errorf("failed to load employees: %w", err)
	}
	records, err := o.store.ListRecords(ctx)
	if err != nil {
		return types.CohortSummary{}, nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	summary, results, err := o.analyze(ctx, runID, employees, records)
	if err != nil {
		return types.CohortSummary{}, nil, err
	}

	if err := ctx.Err(); err != nil {
		return types.CohortSummary{}, nil, fmt.Errorf("analysis aborted: %w", err)
	}
	if err := o.store.ReplaceAnalysisResults(ctx, results); err != nil {
		return types.CohortSummary{}, nil, fmt.Errorf("failed to store analysis results: %w", err)
	}

	return summary, results, nil
}

func (o *Orchestrator) analyze(ctx context.Context, runID string, employees []types.Employee, records []types.AttendanceRecord) (types.CohortSummary, []types.AnalysisResult, error) {
	if len(employees) == 0 {
		return types.CohortSummary{}, nil, fmt.Errorf("%w: no employees found", ErrNoData)
	}
	if len(records) == 0 {
		return types.CohortSummary{}, nil, fmt.Errorf("%w: no attendance records found", ErrNoData)
	}

	total := len(employees)
	o.publish(types.AnalysisStarted{Type: types.EventAnalysisStarted, RunID: runID, Total: total, Timestamp: o.now()})

	byEmployee := attendance.GroupByEmployee(records)
	results := make([]types.AnalysisResult, total)
	var completed atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.Concurrency)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			m := attendance.ComputeMetrics(emp.EmployeeID, byEmployee[emp.EmployeeID])

			callStart := time.Now()
			outcome := narrative.Resolve(gctx, o.generator, o.opts.NarrativeTimeout, emp, m)
			metrics.Get().RecordNarrative(time.Since(callStart), outcome.Fallback)
			if outcome.Fallback {
				o.logger.Warn().
					Err(outcome.Err).
					Str("run_id", runID).
					Str("employee_id", emp.EmployeeID).
					Str("session_id", outcome.SessionID).
					Msg("narrative generation failed, using fallback")
			}

			results[i] = types.AnalysisResult{
				EmployeeID:           emp.EmployeeID,
				Name:                 emp.Name,
				Department:           emp.Department,
				TotalDays:            m.TotalDays,
				PresentDays:          m.PresentDays,
				AbsentDays:           m.AbsentDays,
				LateDays:             m.LateDays,
				AttendancePercentage: m.AttendancePercentage,
				Status:               m.Status,
				AIInsights:           outcome.Text,
			}
			metrics.Get().RecordEmployeeAnalyzed(m.Status)

			o.publish(types.EmployeeAnalyzed{
				Type:                 types.EventEmployeeAnalyzed,
				RunID:                runID,
				EmployeeID:           emp.EmployeeID,
				Status:               m.Status,
				AttendancePercentage: aggregator.Round1(m.AttendancePercentage),
				Fallback:             outcome.Fallback,
				Completed:            int(completed.Add(1)),
				Total:                total,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return types.CohortSummary{}, nil, fmt.Errorf("analysis aborted: %w", err)
	}
	// narrative calls degrade to fallback on cancellation, so check again
	if err := ctx.Err(); err != nil {
		return types.CohortSummary{}, nil, fmt.Errorf("analysis aborted: %w", err)
	}

	return aggregator.Summarize(results, o.now()), results, nil
}

func (o *Orchestrator) publish(event any) {
	if o.events != nil {
		o.events.BroadcastJSON(event)
	}
}
