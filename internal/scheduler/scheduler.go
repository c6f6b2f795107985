package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saksham932007/Attendance/internal/analysis"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner runs one analysis over the stored dataset
type Runner interface {
	Run(ctx context.Context) (types.CohortSummary, []types.AnalysisResult, error)
}

// Scheduler triggers analysis runs on a cron schedule
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	logger zerolog.Logger
}

// NewScheduler parses spec (standard 5-field cron or descriptors like "@daily")
func NewScheduler(spec string, runner Runner, logger zerolog.Logger) (*Scheduler, error) {
	logger = logger.With().Str("component", "scheduler").Logger()

	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid analysis schedule %q: %w", spec, err)
	}

	cronLogger := cronLog{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner: runner,
		spec:   spec,
		logger: logger,
	}, nil
}

// Start schedules runs and blocks until ctx is cancelled
func (s *Scheduler) Start(ctx context.Context) {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		s.logger.Error().Err(err).Msg("failed to schedule analysis")
		return
	}

	s.cron.Start()
	s.logger.Info().Str("schedule", s.spec).Msg("scheduler started")

	<-ctx.Done()

	// wait for an in-flight run to observe cancellation
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	summary, _, err := s.runner.Run(ctx)
	switch {
	case errors.Is(err, analysis.ErrRunInProgress):
		s.logger.Info().Msg("scheduled analysis skipped, a run is already active")
	case errors.Is(err, analysis.ErrNoData):
		s.logger.Info().Msg("scheduled analysis skipped, no attendance data")
	case err != nil:
		s.logger.Error().Err(err).Msg("scheduled analysis failed")
	default:
		s.logger.Info().
			Int("employees", summary.TotalEmployees).
			Dur("duration", time.Since(start)).
			Msg("scheduled analysis completed")
	}
}

// cronLog adapts zerolog to cron.Logger
type cronLog struct {
	logger zerolog.Logger
}

func (l cronLog) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLog) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
