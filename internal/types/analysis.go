package types

import "time"

// MetricsSummary holds the derived attendance statistics of one employee
type MetricsSummary struct {
	TotalDays            int             `json:"total_days"`
	PresentDays          int             `json:"present_days"`
	AbsentDays           int             `json:"absent_days"`
	LateDays             int             `json:"late_days"`
	AttendancePercentage float64         `json:"attendance_percentage"` // 0-100, unrounded
	AvgHours             float64         `json:"avg_hours"`
	Status               ThresholdStatus `json:"status"`
}

// AnalysisResult is the persisted outcome of analyzing one employee
type AnalysisResult struct {
	EmployeeID           string          `json:"employee_id" dynamodbav:"EmployeeID" bson:"employee_id"`
	Name                 string          `json:"name" dynamodbav:"Name" bson:"name"`
	Department           string          `json:"department" dynamodbav:"Department" bson:"department"`
	TotalDays            int             `json:"total_days" dynamodbav:"TotalDays" bson:"total_days"`
	PresentDays          int             `json:"present_days" dynamodbav:"PresentDays" bson:"present_days"`
	AbsentDays           int             `json:"absent_days" dynamodbav:"AbsentDays" bson:"absent_days"`
	LateDays             int             `json:"late_days" dynamodbav:"LateDays" bson:"late_days"`
	AttendancePercentage float64         `json:"attendance_percentage" dynamodbav:"AttendancePercentage" bson:"attendance_percentage"`
	Status               ThresholdStatus `json:"status" dynamodbav:"Status" bson:"status"`
	AIInsights           string          `json:"ai_insights" dynamodbav:"AIInsights" bson:"ai_insights"`
}

// CohortSummary aggregates the results of one analysis run
type CohortSummary struct {
	TotalEmployees        int        `json:"total_employees"`
	MeetingThreshold      int        `json:"meeting_70_percent_threshold"`
	BelowThreshold        int        `json:"below_threshold"`
	AverageAttendanceRate float64    `json:"average_attendance_rate"` // rounded to 1 decimal
	AnalysisTimestamp     *time.Time `json:"analysis_timestamp,omitempty"`
}

// EmployeeSummary is the per-employee overview row including the recency view
type EmployeeSummary struct {
	Employee
	TotalDays            int             `json:"total_days"`
	PresentDays          int             `json:"present_days"`
	AbsentDays           int             `json:"absent_days"`
	LateDays             int             `json:"late_days"`
	AttendancePercentage float64         `json:"attendance_percentage"`
	Status               ThresholdStatus `json:"status"`
	RecentStatus         RecentStatus    `json:"recent_status"`
	AvgHours             float64         `json:"avg_hours"`
}

// DatasetCounts reports how many entities the store currently holds
type DatasetCounts struct {
	Employees int `json:"employees_count"`
	Records   int `json:"records_count"`
	Results   int `json:"analysis_count"`
}

// DashboardStats is the payload of the dashboard statistics endpoint
type DashboardStats struct {
	DatasetCounts
	HasAnalysis       bool     `json:"has_analysis"`
	MeetingThreshold  *int     `json:"meeting_threshold,omitempty"`
	BelowThreshold    *int     `json:"below_threshold,omitempty"`
	AverageAttendance *float64 `json:"average_attendance,omitempty"`
}

// AttendanceData is an uploadable dataset
type AttendanceData struct {
	Employees            []Employee         `json:"employees" validate:"required,min=1,dive"`
	AttendanceRecords    []AttendanceRecord `json:"attendance_records" validate:"required,min=1,dive"`
	AnalysisPeriod       string             `json:"analysis_period"`
	WorkHoursStart       string             `json:"work_hours_start" validate:"omitempty,clock"`
	WorkHoursEnd         string             `json:"work_hours_end" validate:"omitempty,clock"`
	LateThresholdMinutes int                `json:"late_threshold_minutes" validate:"gte=0"`
}
