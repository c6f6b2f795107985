package aggregator

import (
	"testing"
	"time"

	"github.com/Saksham932007/Attendance/internal/types"
)

func result(id string, pct float64) types.AnalysisResult {
	status := types.BelowThreshold
	if pct >= 70 {
		status = types.MeetsThreshold
	}
	return types.AnalysisResult{EmployeeID: id, AttendancePercentage: pct, Status: status}
}

func TestSummarizeScenarioC(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	results := []types.AnalysisResult{
		result("EMP001", 90),
		result("EMP002", 60),
		result("EMP003", 75),
	}

	s := Summarize(results, now)

	if s.TotalEmployees != 3 {
		t.Errorf("expected total_employees 3, got %d", s.TotalEmployees)
	}
	if s.MeetingThreshold != 2 {
		t.Errorf("expected meeting_threshold 2, got %d", s.MeetingThreshold)
	}
	if s.BelowThreshold != 1 {
		t.Errorf("expected below_threshold 1, got %d", s.BelowThreshold)
	}
	if s.AverageAttendanceRate != 75.0 {
		t.Errorf("expected average_attendance_rate 75.0, got %v", s.AverageAttendanceRate)
	}
	if s.AnalysisTimestamp == nil || !s.AnalysisTimestamp.Equal(now) {
		t.Errorf("expected analysis timestamp %v, got %v", now, s.AnalysisTimestamp)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Time{})
	if s.TotalEmployees != 0 || s.AverageAttendanceRate != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s.AnalysisTimestamp != nil {
		t.Errorf("expected no timestamp for zero time")
	}
}

func TestSummarizeRoundsAverage(t *testing.T) {
	results := []types.AnalysisResult{
		result("EMP001", 100),
		result("EMP002", 66.66666),
		result("EMP003", 66.66666),
	}

	s := Summarize(results, time.Time{})
	if s.AverageAttendanceRate != 77.8 {
		t.Errorf("expected 77.8, got %v", s.AverageAttendanceRate)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{80, 80},
		{66.666, 66.7},
		{7.44, 7.4},
		{7.46, 7.5},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEmployeeSummariesSortedAndRounded(t *testing.T) {
	employees := []types.Employee{
		{EmployeeID: "EMP001", Name: "Low"},
		{EmployeeID: "EMP002", Name: "High"},
		{EmployeeID: "EMP003", Name: "Empty"},
	}
	records := []types.AttendanceRecord{
		{EmployeeID: "EMP001", Date: "2024-03-01", Status: types.StatusPresent, HoursWorked: 8.04},
		{EmployeeID: "EMP001", Date: "2024-03-02", Status: types.StatusAbsent},
		{EmployeeID: "EMP001", Date: "2024-03-03", Status: types.StatusAbsent},
		{EmployeeID: "EMP002", Date: "2024-03-01", Status: types.StatusLate, HoursWorked: 7.5},
	}

	rows := EmployeeSummaries(employees, records)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].EmployeeID != "EMP002" || rows[1].EmployeeID != "EMP001" || rows[2].EmployeeID != "EMP003" {
		t.Errorf("unexpected order: %s, %s, %s", rows[0].EmployeeID, rows[1].EmployeeID, rows[2].EmployeeID)
	}
	if rows[1].AttendancePercentage != 33.3 {
		t.Errorf("expected 33.3, got %v", rows[1].AttendancePercentage)
	}
	if rows[1].AvgHours != 8.0 {
		t.Errorf("expected avg_hours 8.0, got %v", rows[1].AvgHours)
	}
	if rows[1].RecentStatus != types.RecentPoor {
		t.Errorf("expected Poor, got %s", rows[1].RecentStatus)
	}
	if rows[2].RecentStatus != types.RecentNoData {
		t.Errorf("expected No recent data, got %s", rows[2].RecentStatus)
	}
	if rows[2].Status != types.BelowThreshold {
		t.Errorf("expected below_threshold for empty employee, got %s", rows[2].Status)
	}
}

func TestDashboardStats(t *testing.T) {
	counts := types.DatasetCounts{Employees: 3, Records: 60, Results: 0}
	stats := DashboardStats(counts, nil)
	if stats.HasAnalysis {
		t.Error("expected has_analysis false")
	}
	if stats.MeetingThreshold != nil || stats.AverageAttendance != nil {
		t.Error("expected no threshold stats without results")
	}

	counts.Results = 2
	stats = DashboardStats(counts, []types.AnalysisResult{result("EMP001", 90), result("EMP002", 50)})
	if !stats.HasAnalysis {
		t.Error("expected has_analysis true")
	}
	if *stats.MeetingThreshold != 1 || *stats.BelowThreshold != 1 {
		t.Errorf("unexpected counts: %d/%d", *stats.MeetingThreshold, *stats.BelowThreshold)
	}
	if *stats.AverageAttendance != 70.0 {
		t.Errorf("expected average 70.0, got %v", *stats.AverageAttendance)
	}
}
