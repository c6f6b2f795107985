package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Saksham932007/Attendance/internal/narrative"
	"github.com/Saksham932007/Attendance/internal/storage"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
)

type stubGenerator struct {
	calls atomic.Int32
	fail  map[string]bool
}

func (g *stubGenerator) Generate(_ context.Context, req narrative.Request) (string, error) {
	g.calls.Add(1)
	if g.fail[req.Employee.EmployeeID] {
		return "", errors.New("quota exceeded")
	}
	return fmt.Sprintf("insight for %s at %.1f%%", req.Employee.EmployeeID, req.Metrics.AttendancePercentage), nil
}

// gateGenerator blocks every call until release is closed
type gateGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGateGenerator() *gateGenerator {
	return &gateGenerator{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateGenerator) Generate(ctx context.Context, _ narrative.Request) (string, error) {
	g.once.Do(func() { close(g.started) })
	select {
	case <-g.release:
		return "done", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []any
}

func (b *recordingBroadcaster) BroadcastJSON(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, v)
}

func (b *recordingBroadcaster) snapshot() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]any(nil), b.events...)
}

func rec(employeeID, date string, status types.AttendanceStatus, hours float64) types.AttendanceRecord {
	return types.AttendanceRecord{EmployeeID: employeeID, Date: date, Status: status, HoursWorked: hours}
}

// scenarioC: E1 at 80%, E2 at 50%, E3 at 85%
func scenarioC() ([]types.Employee, []types.AttendanceRecord) {
	employees := []types.Employee{
		{EmployeeID: "E1", Name: "Eve One", Department: "Engineering"},
		{EmployeeID: "E2", Name: "Eve Two", Department: "Sales"},
		{EmployeeID: "E3", Name: "Eve Three", Department: "Legal"},
	}

	var records []types.AttendanceRecord
	add := func(id string, present, total int) {
		for d := 0; d < total; d++ {
			status := types.StatusAbsent
			hours := 0.0
			if d < present {
				status, hours = types.StatusPresent, 8
			}
			records = append(records, rec(id, fmt.Sprintf("2024-01-%02d", d+1), status, hours))
		}
	}
	add("E1", 8, 10)
	add("E2", 1, 2)
	add("E3", 17, 20)
	return employees, records
}

func newTestOrchestrator(store storage.Store, gen narrative.Generator, events Broadcaster, concurrency int) *Orchestrator {
	return NewOrchestrator(store, gen, events, Options{
		NarrativeTimeout: time.Second,
		Concurrency:      concurrency,
	}, zerolog.Nop())
}

func TestAnalyzeScenarioC(t *testing.T) {
	employees, records := scenarioC()
	o := newTestOrchestrator(storage.NewMemoryStore(), &stubGenerator{}, nil, 2)

	summary, results, err := o.Analyze(context.Background(), employees, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalEmployees != 3 || summary.MeetingThreshold != 2 || summary.BelowThreshold != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.AverageAttendanceRate != 71.7 {
		t.Errorf("average = %v, want 71.7", summary.AverageAttendanceRate)
	}
	if summary.AnalysisTimestamp == nil {
		t.Error("expected analysis timestamp")
	}

	wantStatus := []types.ThresholdStatus{types.MeetsThreshold, types.BelowThreshold, types.MeetsThreshold}
	for i, r := range results {
		if r.EmployeeID != employees[i].EmployeeID {
			t.Errorf("result %d belongs to %s, want %s", i, r.EmployeeID, employees[i].EmployeeID)
		}
		if r.Status != wantStatus[i] {
			t.Errorf("%s status = %s, want %s", r.EmployeeID, r.Status, wantStatus[i])
		}
		if !strings.HasPrefix(r.AIInsights, "insight for "+r.EmployeeID) {
			t.Errorf("%s insight paired with wrong employee: %q", r.EmployeeID, r.AIInsights)
		}
	}
}

func TestAnalyzeNoData(t *testing.T) {
	employees, records := scenarioC()
	gen := &stubGenerator{}
	o := newTestOrchestrator(storage.NewMemoryStore(), gen, nil, 1)

	tests := []struct {
		name      string
		employees []types.Employee
		records   []types.AttendanceRecord
	}{
		{"no employees", nil, records},
		{"no records", employees, nil},
		{"nothing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, results, err := o.Analyze(context.Background(), tt.employees, tt.records)
			if !errors.Is(err, ErrNoData) {
				t.Fatalf("expected ErrNoData, got %v", err)
			}
			if results != nil {
				t.Error("expected no results")
			}
		})
	}

	if gen.calls.Load() != 0 {
		t.Errorf("generator must not be called without data, got %d calls", gen.calls.Load())
	}
}

func TestAnalyzeFallbackOnNarrativeFailure(t *testing.T) {
	employees, records := scenarioC()
	gen := &stubGenerator{fail: map[string]bool{"E1": true, "E2": true}}
	o := newTestOrchestrator(storage.NewMemoryStore(), gen, nil, 3)

	_, results, err := o.Analyze(context.Background(), employees, records)
	if err != nil {
		t.Fatalf("narrative failures must not fail the run: %v", err)
	}

	if got := results[0].AIInsights; got != "Analysis unavailable. Basic assessment: Meets expectations." {
		t.Errorf("E1 fallback = %q", got)
	}
	if got := results[1].AIInsights; got != "Analysis unavailable. Basic assessment: Below standard - requires attention." {
		t.Errorf("E2 fallback = %q", got)
	}
	if !strings.HasPrefix(results[2].AIInsights, "insight for E3") {
		t.Errorf("E3 should keep its generated insight, got %q", results[2].AIInsights)
	}
}

func TestAnalyzeEmployeeWithoutRecords(t *testing.T) {
	employees, records := scenarioC()
	employees = append(employees, types.Employee{EmployeeID: "E4", Name: "No Show"})
	o := newTestOrchestrator(storage.NewMemoryStore(), narrative.Disabled{}, nil, 2)

	_, results, err := o.Analyze(context.Background(), employees, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := results[3]
	if last.TotalDays != 0 || last.AttendancePercentage != 0 || last.Status != types.BelowThreshold {
		t.Errorf("unexpected result for employee without records: %+v", last)
	}
}

func TestAnalyzeDeterministicAcrossConcurrency(t *testing.T) {
	employees, records := scenarioC()

	_, sequential, err := newTestOrchestrator(storage.NewMemoryStore(), &stubGenerator{}, nil, 1).
		Analyze(context.Background(), employees, records)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	_, parallel, err := newTestOrchestrator(storage.NewMemoryStore(), &stubGenerator{}, nil, 8).
		Analyze(context.Background(), employees, records)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	for i := range sequential {
		if sequential[i] != parallel[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, sequential[i], parallel[i])
		}
	}
}

func TestRunPersistsResults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	employees, records := scenarioC()
	if err := store.ReplaceDataset(ctx, employees, records); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	events := &recordingBroadcaster{}
	o := newTestOrchestrator(store, &stubGenerator{}, events, 2)

	summary, _, err := o.Run(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := store.ListAnalysisResults(ctx)
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored results, got %d", len(stored))
	}

	// a second run replaces instead of appending
	if _, _, err := o.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}
	stored, _ = store.ListAnalysisResults(ctx)
	if len(stored) != 3 {
		t.Errorf("expected result set to be replaced, got %d results", len(stored))
	}

	got := events.snapshot()
	if _, ok := got[0].(types.AnalysisStarted); !ok {
		t.Errorf("first event = %T, want AnalysisStarted", got[0])
	}
	completed, ok := got[4].(types.AnalysisCompleted)
	if !ok {
		t.Fatalf("fifth event = %T, want AnalysisCompleted", got[4])
	}
	if completed.Summary.MeetingThreshold != summary.MeetingThreshold {
		t.Errorf("completed event summary mismatch: %+v", completed.Summary)
	}
	if o.Running() {
		t.Error("orchestrator should be idle after Run")
	}
}

func TestRunNoData(t *testing.T) {
	events := &recordingBroadcaster{}
	o := newTestOrchestrator(storage.NewMemoryStore(), &stubGenerator{}, events, 1)

	_, _, err := o.Run(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}

	got := events.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected a single failure event, got %d", len(got))
	}
	if _, ok := got[0].(types.AnalysisFailed); !ok {
		t.Errorf("event = %T, want AnalysisFailed", got[0])
	}
}

func TestRunRejectsConcurrentRuns(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	employees, records := scenarioC()
	if err := store.ReplaceDataset(ctx, employees, records); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	gen := newGateGenerator()
	o := newTestOrchestrator(store, gen, nil, 1)

	done := make(chan error, 1)
	go func() {
		_, _, err := o.Run(ctx)
		done <- err
	}()

	<-gen.started
	if _, _, err := o.Run(ctx); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("expected ErrRunInProgress, got %v", err)
	}

	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("first run failed: %v", err)
	}
}

func TestExclusiveBlocksDatasetReplacementDuringRun(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	employees, records := scenarioC()
	if err := store.ReplaceDataset(ctx, employees, records); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	gen := newGateGenerator()
	o := newTestOrchestrator(store, gen, nil, 1)

	done := make(chan error, 1)
	go func() {
		_, _, err := o.Run(ctx)
		done <- err
	}()
	<-gen.started

	replaced := false
	err := o.Exclusive(func() error {
		replaced = true
		return store.ReplaceDataset(ctx, []types.Employee{{EmployeeID: "NEW1", Name: "New"}}, nil)
	})
	if !errors.Is(err, ErrRunInProgress) || replaced {
		t.Fatalf("expected replacement to be refused during a run, got err=%v replaced=%v", err, replaced)
	}

	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("run failed: %v", err)
	}

	stored, _ := store.ListEmployees(ctx)
	results, _ := store.ListAnalysisResults(ctx)
	if len(stored) != 3 || len(results) != 3 || results[0].EmployeeID != stored[0].EmployeeID {
		t.Errorf("results must describe the stored roster: %d employees, %d results", len(stored), len(results))
	}
}

func TestRunRejectedDuringExclusive(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	employees, records := scenarioC()
	if err := store.ReplaceDataset(ctx, employees, records); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	o := newTestOrchestrator(store, &stubGenerator{}, nil, 1)

	err := o.Exclusive(func() error {
		if !o.Running() {
			t.Error("expected Running while an exclusive operation is active")
		}
		_, _, err := o.Run(ctx)
		return err
	})
	if !errors.Is(err, ErrRunInProgress) {
		t.Errorf("expected ErrRunInProgress, got %v", err)
	}

	if o.Running() {
		t.Error("guard must be released after the exclusive operation")
	}
	if _, _, err := o.Run(ctx); err != nil {
		t.Errorf("run after exclusive operation failed: %v", err)
	}
}

func TestRunCancelledDoesNotPersist(t *testing.T) {
	store := storage.NewMemoryStore()
	employees, records := scenarioC()
	if err := store.ReplaceDataset(context.Background(), employees, records); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	previous := []types.AnalysisResult{{EmployeeID: "OLD"}}
	if err := store.ReplaceAnalysisResults(context.Background(), previous); err != nil {
		t.Fatalf("seed results: %v", err)
	}

	gen := newGateGenerator()
	o := NewOrchestrator(store, gen, nil, Options{Concurrency: 1}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := o.Run(ctx)
		done <- err
	}()

	<-gen.started
	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	stored, _ := store.ListAnalysisResults(context.Background())
	if len(stored) != 1 || stored[0].EmployeeID != "OLD" {
		t.Errorf("cancelled run must leave stored results untouched, got %+v", stored)
	}
}
