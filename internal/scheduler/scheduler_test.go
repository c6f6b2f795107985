package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Run(_ context.Context) (types.CohortSummary, []types.AnalysisResult, error) {
	r.calls.Add(1)
	return types.CohortSummary{TotalEmployees: 3}, nil, r.err
}

func TestNewSchedulerRejectsInvalidSpec(t *testing.T) {
	if _, err := NewScheduler("every tuesday", &countingRunner{}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestNewSchedulerAcceptsSpecs(t *testing.T) {
	for _, spec := range []string{"0 6 * * 1-5", "@daily", "@every 1h"} {
		if _, err := NewScheduler(spec, &countingRunner{}, zerolog.Nop()); err != nil {
			t.Errorf("spec %q: unexpected error %v", spec, err)
		}
	}
}

func TestRunOnceLogsOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"completed", nil, "scheduled analysis completed"},
		{"no data", fmt.Errorf("%w: no employees found", analysis.ErrNoData), "no attendance data"},
		{"busy", analysis.ErrRunInProgress, "already active"},
		{"failure", errors.New("store down"), "scheduled analysis failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			runner := &countingRunner{err: tt.err}
			s, err := NewScheduler("@hourly", runner, zerolog.New(&buf))
			if err != nil {
				t.Fatalf("NewScheduler: %v", err)
			}

			s.runOnce(context.Background())

			if runner.calls.Load() != 1 {
				t.Errorf("expected one run, got %d", runner.calls.Load())
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSchedulerStartTriggersRuns(t *testing.T) {
	runner := &countingRunner{}
	s, err := NewScheduler("@every 1s", runner, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}

	if runner.calls.Load() < 1 {
		t.Error("expected at least one scheduled run")
	}
}
