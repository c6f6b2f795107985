package types

import "time"

// Progress event types broadcast to dashboard clients
const (
	EventAnalysisStarted   = "analysis_started"
	EventEmployeeAnalyzed  = "employee_analyzed"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
)

// AnalysisStarted is broadcast when a run begins
type AnalysisStarted struct {
	Type      string    `json:"type"` // "analysis_started"
	RunID     string    `json:"run_id"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// EmployeeAnalyzed is broadcast as each employee finishes
type EmployeeAnalyzed struct {
	Type                 string          `json:"type"` // "employee_analyzed"
	RunID                string          `json:"run_id"`
	EmployeeID           string          `json:"employee_id"`
	Status               ThresholdStatus `json:"status"`
	AttendancePercentage float64         `json:"attendance_percentage"`
	Fallback             bool            `json:"fallback"`
	Completed            int             `json:"completed"`
	Total                int             `json:"total"`
}

// AnalysisCompleted is broadcast once the result set is persisted
type AnalysisCompleted struct {
	Type    string        `json:"type"` // "analysis_completed"
	RunID   string        `json:"run_id"`
	Summary CohortSummary `json:"summary"`
}

// AnalysisFailed is broadcast when a run aborts
type AnalysisFailed struct {
	Type  string `json:"type"` // "analysis_failed"
	RunID string `json:"run_id"`
	Error string `json:"error"`
}
