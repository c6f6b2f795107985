package attendance

import (
	"sort"

	"github.com/Saksham932007/Attendance/internal/types"
)

// RecentWindow is the number of most recent stored records the recency view inspects
const RecentWindow = 7

// RecentStatus classifies an employee's most recent stored records.
// The window is the last RecentWindow records by date, not the last seven calendar days,
// so gaps such as weekends stretch it over more days.
func RecentStatus(records []types.AttendanceRecord) types.RecentStatus {
	if len(records) == 0 {
		return types.RecentNoData
	}

	recent := SortNewestFirst(records)
	if len(recent) > RecentWindow {
		recent = recent[:RecentWindow]
	}

	present := 0
	for _, rec := range recent {
		if rec.Status.CountsAsPresent() {
			present++
		}
	}

	switch {
	case present >= 6:
		return types.RecentExcellent
	case present >= 5:
		return types.RecentGood
	case present >= 3:
		return types.RecentAverage
	default:
		return types.RecentPoor
	}
}

// SortNewestFirst returns a copy of records ordered by date descending.
// Records sharing a date keep their input order.
func SortNewestFirst(records []types.AttendanceRecord) []types.AttendanceRecord {
	sorted := make([]types.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}
