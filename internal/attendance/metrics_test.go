package attendance

import (
	"math"
	"testing"

	"github.com/Saksham932007/Attendance/internal/types"
)

func rec(employeeID, date string, status types.AttendanceStatus, hours float64) types.AttendanceRecord {
	return types.AttendanceRecord{
		EmployeeID:  employeeID,
		Date:        date,
		Status:      status,
		HoursWorked: hours,
	}
}

func TestComputeMetricsScenarioA(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
		rec("EMP001", "2024-03-04", types.StatusPresent, 8),
		rec("EMP001", "2024-03-05", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-06", types.StatusLate, 7),
		rec("EMP001", "2024-03-07", types.StatusPresent, 8),
	}

	m := ComputeMetrics("EMP001", records)

	if m.TotalDays != 5 {
		t.Errorf("expected total_days 5, got %d", m.TotalDays)
	}
	if m.PresentDays != 4 {
		t.Errorf("expected present_days 4, got %d", m.PresentDays)
	}
	if m.AbsentDays != 1 {
		t.Errorf("expected absent_days 1, got %d", m.AbsentDays)
	}
	if m.LateDays != 1 {
		t.Errorf("expected late_days 1, got %d", m.LateDays)
	}
	if m.AttendancePercentage != 80.0 {
		t.Errorf("expected attendance_percentage 80.0, got %v", m.AttendancePercentage)
	}
	if m.Status != types.MeetsThreshold {
		t.Errorf("expected meets_threshold, got %s", m.Status)
	}
}

func TestComputeMetricsScenarioB(t *testing.T) {
	m := ComputeMetrics("EMP404", []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
	})

	if m.TotalDays != 0 || m.PresentDays != 0 || m.AbsentDays != 0 || m.LateDays != 0 {
		t.Errorf("expected zero counters, got %+v", m)
	}
	if m.AttendancePercentage != 0 {
		t.Errorf("expected attendance_percentage 0, got %v", m.AttendancePercentage)
	}
	if m.AvgHours != 0 {
		t.Errorf("expected avg_hours 0, got %v", m.AvgHours)
	}
	if m.Status != types.BelowThreshold {
		t.Errorf("expected below_threshold, got %s", m.Status)
	}
}

func TestComputeMetricsNilRecords(t *testing.T) {
	m := ComputeMetrics("EMP001", nil)
	if m.TotalDays != 0 || m.AttendancePercentage != 0 || m.AvgHours != 0 {
		t.Errorf("expected zero summary, got %+v", m)
	}
}

func TestAvgHoursExcludesZeroHourRecords(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
		rec("EMP001", "2024-03-02", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-03", types.StatusPresent, 7),
		rec("EMP001", "2024-03-04", types.StatusAbsent, 0),
	}

	m := ComputeMetrics("EMP001", records)
	if m.AvgHours != 7.5 {
		t.Errorf("expected avg_hours 7.5, got %v", m.AvgHours)
	}
}

func TestComputeMetricsFiltersByEmployee(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
		rec("EMP002", "2024-03-01", types.StatusAbsent, 0),
		rec("EMP002", "2024-03-02", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-02", types.StatusLate, 6),
	}

	m := ComputeMetrics("EMP002", records)
	if m.TotalDays != 2 || m.AbsentDays != 2 || m.PresentDays != 0 {
		t.Errorf("unexpected metrics for EMP002: %+v", m)
	}
}

func TestComputeMetricsDuplicatesDoubleCount(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
	}

	m := ComputeMetrics("EMP001", records)
	if m.TotalDays != 2 {
		t.Errorf("expected duplicates to be counted twice, got total_days %d", m.TotalDays)
	}
}

func TestComputeMetricsHalfDayCountsOnlyTowardTotal(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusHalfDay, 4),
		rec("EMP001", "2024-03-02", types.StatusPresent, 8),
	}

	m := ComputeMetrics("EMP001", records)
	if m.TotalDays != 2 || m.PresentDays != 1 || m.AbsentDays != 0 {
		t.Errorf("unexpected half-day handling: %+v", m)
	}
	if m.AttendancePercentage != 50 {
		t.Errorf("expected 50%%, got %v", m.AttendancePercentage)
	}
	if m.AvgHours != 6 {
		t.Errorf("expected avg_hours 6, got %v", m.AvgHours)
	}
}

func TestComputeMetricsInvariants(t *testing.T) {
	statuses := []types.AttendanceStatus{types.StatusPresent, types.StatusAbsent, types.StatusLate}

	// Walk every present/absent/late sequence up to length 6
	var walk func(prefix []types.AttendanceRecord)
	walk = func(prefix []types.AttendanceRecord) {
		if len(prefix) > 0 {
			m := ComputeMetrics("EMP001", prefix)
			if m.PresentDays+m.AbsentDays != m.TotalDays {
				t.Fatalf("present+absent != total for %+v", m)
			}
			if m.LateDays > m.PresentDays {
				t.Fatalf("late > present for %+v", m)
			}
			if m.AttendancePercentage < 0 || m.AttendancePercentage > 100 || math.IsNaN(m.AttendancePercentage) {
				t.Fatalf("attendance_percentage out of range: %v", m.AttendancePercentage)
			}
		}
		if len(prefix) == 6 {
			return
		}
		for _, s := range statuses {
			next := append(append([]types.AttendanceRecord{}, prefix...), rec("EMP001", "2024-03-01", s, 0))
			walk(next)
		}
	}
	walk(nil)
}

func TestComputeMetricsDoesNotMutateInput(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-02", types.StatusPresent, 8),
		rec("EMP001", "2024-03-01", types.StatusAbsent, 0),
	}
	before := make([]types.AttendanceRecord, len(records))
	copy(before, records)

	ComputeMetrics("EMP001", records)
	RecentStatus(records)

	for i := range records {
		if records[i] != before[i] {
			t.Fatalf("record %d mutated: %+v -> %+v", i, before[i], records[i])
		}
	}
}

func TestGroupByEmployee(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusPresent, 8),
		rec("EMP002", "2024-03-01", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-02", types.StatusLate, 6),
	}

	grouped := GroupByEmployee(records)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(grouped))
	}
	if len(grouped["EMP001"]) != 2 || grouped["EMP001"][1].Date != "2024-03-02" {
		t.Errorf("unexpected EMP001 group: %+v", grouped["EMP001"])
	}
}
