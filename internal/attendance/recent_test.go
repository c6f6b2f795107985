package attendance

import (
	"fmt"
	"testing"

	"github.com/Saksham932007/Attendance/internal/types"
)

// window builds records for consecutive dates; the first status is the most recent
func window(statuses ...types.AttendanceStatus) []types.AttendanceRecord {
	records := make([]types.AttendanceRecord, 0, len(statuses))
	for i, s := range statuses {
		records = append(records, rec("EMP001", fmt.Sprintf("2024-03-%02d", 28-i), s, 0))
	}
	return records
}

func TestRecentStatus(t *testing.T) {
	P, A, L := types.StatusPresent, types.StatusAbsent, types.StatusLate

	tests := []struct {
		name    string
		records []types.AttendanceRecord
		want    types.RecentStatus
	}{
		{"no records", nil, types.RecentNoData},
		{"seven present", window(P, P, P, P, P, P, P), types.RecentExcellent},
		{"six present-or-late", window(P, L, P, L, P, L, A), types.RecentExcellent},
		{"five", window(P, P, P, P, P, A, A), types.RecentGood},
		{"four", window(P, P, P, P, A, A, A), types.RecentAverage},
		{"three", window(P, L, P, A, A, A, A), types.RecentAverage},
		{"two", window(P, P, A, A, A, A, A), types.RecentPoor},
		{"fewer than seven records", window(P, P, P), types.RecentAverage},
		{"older records ignored", window(A, A, A, A, A, A, A, P, P, P, P, P), types.RecentPoor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecentStatus(tt.records); got != tt.want {
				t.Errorf("RecentStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecentStatusSortsByDate(t *testing.T) {
	// Most recent seven are all present even though input is oldest-first
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-02", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-04", types.StatusPresent, 8),
		rec("EMP001", "2024-03-05", types.StatusPresent, 8),
		rec("EMP001", "2024-03-06", types.StatusPresent, 8),
		rec("EMP001", "2024-03-07", types.StatusPresent, 8),
		rec("EMP001", "2024-03-08", types.StatusPresent, 8),
		rec("EMP001", "2024-03-11", types.StatusPresent, 8),
		rec("EMP001", "2024-03-12", types.StatusPresent, 8),
	}

	if got := RecentStatus(records); got != types.RecentExcellent {
		t.Errorf("expected Excellent, got %s", got)
	}
}

func TestSortNewestFirst(t *testing.T) {
	records := []types.AttendanceRecord{
		rec("EMP001", "2024-03-01", types.StatusAbsent, 0),
		rec("EMP001", "2024-03-05", types.StatusPresent, 8),
		rec("EMP001", "2024-03-05", types.StatusLate, 7),
		rec("EMP001", "2024-03-03", types.StatusPresent, 8),
	}

	sorted := SortNewestFirst(records)

	wantDates := []string{"2024-03-05", "2024-03-05", "2024-03-03", "2024-03-01"}
	for i, want := range wantDates {
		if sorted[i].Date != want {
			t.Errorf("position %d: date %s, want %s", i, sorted[i].Date, want)
		}
	}
	if sorted[0].Status != types.StatusPresent || sorted[1].Status != types.StatusLate {
		t.Error("records sharing a date should keep input order")
	}
	if records[0].Date != "2024-03-01" {
		t.Error("input must not be reordered")
	}
}
