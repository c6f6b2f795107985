package aggregator

import (
	"math"
	"sort"
	"time"

	"github.com/Saksham932007/Attendance/internal/attendance"
	"github.com/Saksham932007/Attendance/internal/types"
)

// Round1 rounds a percentage or hour value to one decimal for presentation
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Summarize aggregates per-employee results into a cohort summary.
// A zero now leaves the timestamp unset (stored reports have no run time).
func Summarize(results []types.AnalysisResult, now time.Time) types.CohortSummary {
	summary := types.CohortSummary{
		TotalEmployees: len(results),
	}

	var total float64
	for _, r := range results {
		if r.Status == types.MeetsThreshold {
			summary.MeetingThreshold++
		}
		total += r.AttendancePercentage
	}
	summary.BelowThreshold = summary.TotalEmployees - summary.MeetingThreshold

	if summary.TotalEmployees > 0 {
		summary.AverageAttendanceRate = Round1(total / float64(summary.TotalEmployees))
	}

	if !now.IsZero() {
		ts := now
		summary.AnalysisTimestamp = &ts
	}

	return summary
}

// EmployeeSummaries builds the employee overview rows, sorted by attendance descending.
// Percentages and hours are rounded to one decimal.
func EmployeeSummaries(employees []types.Employee, records []types.AttendanceRecord) []types.EmployeeSummary {
	grouped := attendance.GroupByEmployee(records)

	summaries := make([]types.EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		summaries = append(summaries, EmployeeSummary(emp, grouped[emp.EmployeeID]))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AttendancePercentage > summaries[j].AttendancePercentage
	})

	return summaries
}

// EmployeeSummary builds the overview row of one employee from that employee's records
func EmployeeSummary(emp types.Employee, records []types.AttendanceRecord) types.EmployeeSummary {
	m := attendance.ComputeMetrics(emp.EmployeeID, records)

	return types.EmployeeSummary{
		Employee:             emp,
		TotalDays:            m.TotalDays,
		PresentDays:          m.PresentDays,
		AbsentDays:           m.AbsentDays,
		LateDays:             m.LateDays,
		AttendancePercentage: Round1(m.AttendancePercentage),
		Status:               m.Status,
		RecentStatus:         attendance.RecentStatus(records),
		AvgHours:             Round1(m.AvgHours),
	}
}

// DashboardStats combines store counts with the stored analysis results
func DashboardStats(counts types.DatasetCounts, results []types.AnalysisResult) types.DashboardStats {
	stats := types.DashboardStats{
		DatasetCounts: counts,
		HasAnalysis:   counts.Results > 0,
	}

	if len(results) == 0 {
		return stats
	}

	summary := Summarize(results, time.Time{})
	stats.MeetingThreshold = &summary.MeetingThreshold
	stats.BelowThreshold = &summary.BelowThreshold
	stats.AverageAttendance = &summary.AverageAttendanceRate

	return stats
}
