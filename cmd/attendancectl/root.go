package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Saksham932007/Attendance/pkg/client"
	"github.com/spf13/cobra"
)

type options struct {
	server  string
	jsonOut bool
}

func (o *options) client() *client.Client {
	return client.NewClient(o.server)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	server := os.Getenv("ATTENDANCE_URL")
	if server == "" {
		server = "http://localhost:8001"
	}

	cmd := &cobra.Command{
		Use:          "attendancectl",
		Short:        "Drive the attendance analyzer from the command line",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "Analyzer base URL (env: ATTENDANCE_URL)")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print raw JSON responses")

	cmd.AddCommand(newHealthCmd(opts))
	cmd.AddCommand(newSampleCmd(opts))
	cmd.AddCommand(newUploadCmd(opts))
	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newEmployeesCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newResetCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTimeout(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
