package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Saksham932007/Attendance/internal/attendance"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/google/uuid"
)

var (
	// ErrDisabled is returned by the disabled provider on every call
	ErrDisabled = errors.New("narrative generation disabled")

	// ErrEmptyResponse is returned when the provider answers without any text
	ErrEmptyResponse = errors.New("narrative provider returned no text")
)

// Request is the data sent to the narrative provider for one employee
type Request struct {
	SessionID string
	Employee  types.Employee
	Metrics   types.MetricsSummary
}

// Generator produces free-text attendance insight for one employee
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Outcome is the result of one narrative call. Text is never empty:
// on failure it holds the deterministic fallback and Err holds the reason.
type Outcome struct {
	Text      string
	SessionID string
	Err       error
	Fallback  bool
}

// Fallback returns the deterministic assessment used when the provider fails.
// It depends only on the attendance percentage.
func Fallback(attendancePercentage float64) string {
	if attendancePercentage >= attendance.Threshold {
		return "Analysis unavailable. Basic assessment: Meets expectations."
	}
	return "Analysis unavailable. Basic assessment: Below standard - requires attention."
}

// Resolve performs one narrative call bounded by timeout and collapses any
// failure into the fallback text. A non-positive timeout means no extra deadline.
func Resolve(ctx context.Context, gen Generator, timeout time.Duration, emp types.Employee, m types.MetricsSummary) Outcome {
	out := Outcome{SessionID: uuid.New().String()}

	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := gen.Generate(callCtx, Request{
		SessionID: out.SessionID,
		Employee:  emp,
		Metrics:   m,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		out.Err = err
		out.Fallback = true
		out.Text = Fallback(m.AttendancePercentage)
		return out
	}

	out.Text = strings.TrimSpace(text)
	return out
}

// Disabled is the provider used when no narrative service is configured
type Disabled struct{}

func (Disabled) Generate(_ context.Context, _ Request) (string, error) { return "", ErrDisabled }

const systemPrompt = "You are an expert HR analytics assistant. Analyze attendance data and " +
	"provide professional insights about employee performance, patterns, and recommendations."

// BuildPrompt renders the user prompt for a request
func BuildPrompt(req Request) string {
	var b strings.Builder
	emp, m := req.Employee, req.Metrics

	fmt.Fprintf(&b, "Analyze the following employee attendance data and provide insights.\n\n")
	fmt.Fprintf(&b, "Employee: %s (%s)\n", emp.Name, emp.EmployeeID)
	fmt.Fprintf(&b, "Department: %s\n", emp.Department)
	fmt.Fprintf(&b, "Position: %s\n\n", emp.Position)
	fmt.Fprintf(&b, "Attendance summary:\n")
	fmt.Fprintf(&b, "- Total working days: %d\n", m.TotalDays)
	fmt.Fprintf(&b, "- Present days: %d\n", m.PresentDays)
	fmt.Fprintf(&b, "- Absent days: %d\n", m.AbsentDays)
	fmt.Fprintf(&b, "- Late days: %d\n", m.LateDays)
	fmt.Fprintf(&b, "- Attendance percentage: %.1f%%\n", m.AttendancePercentage)
	fmt.Fprintf(&b, "- Average hours worked: %.1f hours/day\n\n", m.AvgHours)
	fmt.Fprintf(&b, "Please provide:\n")
	fmt.Fprintf(&b, "1. An overall attendance assessment in 2-3 sentences\n")
	fmt.Fprintf(&b, "2. Key patterns or concerns, if any\n")
	fmt.Fprintf(&b, "3. Specific recommendations for improvement if attendance is below %.0f%%\n", attendance.Threshold)
	fmt.Fprintf(&b, "4. Recognition for good performance if attendance is at least %.0f%%\n\n", attendance.RecognitionThreshold)
	fmt.Fprintf(&b, "Keep the response professional, constructive, and under 200 words.")

	return b.String()
}
