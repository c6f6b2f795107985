package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/Saksham932007/Attendance/pkg/client"
	"github.com/spf13/cobra"
)

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analyzer is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Health(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is healthy\n", opts.server)
			return nil
		},
	}
}

func newSampleCmd(opts *options) *cobra.Command {
	var (
		employees int
		days      int
		seed      int64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Replace the dataset with generated sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := client.SampleOptions{Employees: employees, Days: days}
			if cmd.Flags().Changed("seed") {
				sample.Seed = &seed
			}

			resp, err := opts.client().GenerateSample(cmd.Context(), sample)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d employees, %d records (%s)\n",
				resp.Message, resp.Employees, resp.Records, resp.AnalysisPeriod)
			return nil
		},
	}

	cmd.Flags().IntVar(&employees, "employees", 0, "Number of employees (server default when 0)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of calendar days before today (server default when 0)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for a reproducible dataset")

	return cmd
}

func newUploadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.json>",
		Short: "Replace the dataset with an attendance JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var data types.AttendanceData
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			resp, err := opts.client().Upload(cmd.Context(), &data)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d employees, %d records\n", resp.Message, resp.Employees, resp.Records)
			for _, key := range resp.Duplicates {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: duplicate record %s\n", key)
			}
			if resp.UnknownEmployees > 0 {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d records reference unknown employees\n", resp.UnknownEmployees)
			}
			return nil
		},
	}
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run an analysis and print the cohort summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			resp, err := opts.client().Analyze(ctx)
			if err != nil {
				return fmt.Errorf("analysis failed (timeout %s): %w", formatTimeout(timeout), err)
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printSummary(cmd, resp.Summary)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Give up waiting after this long (0 waits forever)")

	return cmd
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the stored analysis report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := opts.client().Report(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			printSummary(cmd, resp.Summary)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tATTENDANCE\tSTATUS\tINSIGHTS")
			for _, r := range resp.Results {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.EmployeeID, r.Name, r.Department, pct(r.AttendancePercentage), r.Status, truncate(r.AIInsights, 60))
			}
			return tw.Flush()
		},
	}
}

func newEmployeesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "employees [employee-id]",
		Short: "List employees, or show one employee with their records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showEmployee(cmd, opts, args[0])
			}

			resp, err := opts.client().Employees(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			if len(resp.Employees) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tDEPARTMENT\tATTENDANCE\tAVG HOURS\tSTATUS\tRECENT")
			for _, e := range resp.Employees {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%s\t%s\n",
					e.EmployeeID, e.Name, e.Department, pct(e.AttendancePercentage), e.AvgHours, e.Status, e.RecentStatus)
			}
			return tw.Flush()
		},
	}
}

func showEmployee(cmd *cobra.Command, opts *options, employeeID string) error {
	resp, err := opts.client().Employee(cmd.Context(), employeeID)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		return printJSON(cmd.OutOrStdout(), resp)
	}

	e := resp.Employee
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s  %s (%s, %s)\n", e.EmployeeID, e.Name, e.Position, e.Department)
	_, _ = fmt.Fprintf(out, "attendance %s over %d days, %d late, %s, recent: %s\n",
		pct(e.AttendancePercentage), e.TotalDays, e.LateDays, e.Status, e.RecentStatus)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tSTATUS\tIN\tOUT\tHOURS")
	for _, r := range resp.Records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\n", r.Date, r.Status, orDash(r.CheckInTime), orDash(r.CheckOutTime), r.HoursWorked)
	}
	return tw.Flush()
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.client().DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOut {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "employees %d, records %d, results %d\n", stats.Employees, stats.Records, stats.Results)
			if !stats.HasAnalysis {
				_, _ = fmt.Fprintln(out, "no analysis has been run")
				return nil
			}
			_, _ = fmt.Fprintf(out, "meeting threshold %d, below %d, average %s\n",
				deref(stats.MeetingThreshold), deref(stats.BelowThreshold), pct(deref(stats.AverageAttendance)))
			return nil
		},
	}
}

func newResetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the dataset and analysis results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().ResetDataset(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "dataset reset")
			return nil
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream analysis progress events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.client().Watch(cmd.Context(), func(ev client.Event) error {
				if opts.jsonOut {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), string(ev.Raw))
					return err
				}
				return printEvent(cmd, ev)
			})
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}

func printEvent(cmd *cobra.Command, ev client.Event) error {
	out := cmd.OutOrStdout()
	switch ev.Type {
	case types.EventAnalysisStarted:
		var e types.AnalysisStarted
		if err := json.Unmarshal(ev.Raw, &e); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "run %s started: %d employees\n", e.RunID, e.Total)
	case types.EventEmployeeAnalyzed:
		var e types.EmployeeAnalyzed
		if err := json.Unmarshal(ev.Raw, &e); err != nil {
			return err
		}
		note := ""
		if e.Fallback {
			note = " (fallback insight)"
		}
		_, _ = fmt.Fprintf(out, "[%d/%d] %s %s %s%s\n", e.Completed, e.Total, e.EmployeeID, pct(e.AttendancePercentage), e.Status, note)
	case types.EventAnalysisCompleted:
		var e types.AnalysisCompleted
		if err := json.Unmarshal(ev.Raw, &e); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "run %s completed: %d of %d meet the threshold, average %s\n",
			e.RunID, e.Summary.MeetingThreshold, e.Summary.TotalEmployees, pct(e.Summary.AverageAttendanceRate))
	case types.EventAnalysisFailed:
		var e types.AnalysisFailed
		if err := json.Unmarshal(ev.Raw, &e); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "run %s failed: %s\n", e.RunID, e.Error)
	default:
		_, _ = fmt.Fprintln(out, string(ev.Raw))
	}
	return nil
}

func printSummary(cmd *cobra.Command, s types.CohortSummary) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "employees %d, meeting 70%% threshold %d, below %d, average attendance %s\n",
		s.TotalEmployees, s.MeetingThreshold, s.BelowThreshold, pct(s.AverageAttendanceRate))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
