package attendance

import "github.com/Saksham932007/Attendance/internal/types"

// Tally accumulates attendance counters for a single employee
type Tally struct {
	TotalDays   int
	PresentDays int
	AbsentDays  int
	LateDays    int

	workedDays  int     // records with hours_worked > 0
	workedHours float64 // sum of hours over workedDays
}

// Record adds one attendance record to the tally
func (t *Tally) Record(rec types.AttendanceRecord) {
	t.TotalDays++
	if rec.Status.CountsAsPresent() {
		t.PresentDays++
	}
	switch rec.Status {
	case types.StatusAbsent:
		t.AbsentDays++
	case types.StatusLate:
		t.LateDays++
	}
	if rec.HoursWorked > 0 {
		t.workedDays++
		t.workedHours += rec.HoursWorked
	}
}

// Percentage returns present days as a percentage of total days, 0 when empty
func (t *Tally) Percentage() float64 {
	if t.TotalDays == 0 {
		return 0
	}
	return float64(t.PresentDays) / float64(t.TotalDays) * 100.0
}

// AvgHours returns the mean hours over records that logged any hours.
// Zero-hour records (absences) are excluded rather than averaged in.
func (t *Tally) AvgHours() float64 {
	if t.workedDays == 0 {
		return 0
	}
	return t.workedHours / float64(t.workedDays)
}

// Summary returns the classified metrics summary for the tally
func (t *Tally) Summary() types.MetricsSummary {
	m := types.MetricsSummary{
		TotalDays:            t.TotalDays,
		PresentDays:          t.PresentDays,
		AbsentDays:           t.AbsentDays,
		LateDays:             t.LateDays,
		AttendancePercentage: t.Percentage(),
		AvgHours:             t.AvgHours(),
	}
	m.Status = Classify(m)
	return m
}

// ComputeMetrics summarizes the records belonging to employeeID.
// records may contain entries for any number of employees; non-matching ones are ignored.
func ComputeMetrics(employeeID string, records []types.AttendanceRecord) types.MetricsSummary {
	var t Tally
	for _, rec := range records {
		if rec.EmployeeID == employeeID {
			t.Record(rec)
		}
	}
	return t.Summary()
}

// GroupByEmployee indexes records by employee identifier, preserving input order
func GroupByEmployee(records []types.AttendanceRecord) map[string][]types.AttendanceRecord {
	grouped := make(map[string][]types.AttendanceRecord)
	for _, rec := range records {
		grouped[rec.EmployeeID] = append(grouped[rec.EmployeeID], rec)
	}
	return grouped
}
