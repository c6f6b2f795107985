package attendance

import "github.com/Saksham932007/Attendance/internal/types"

const (
	// Threshold is the attendance percentage an employee must reach to meet expectations
	Threshold = 70.0

	// RecognitionThreshold is the attendance percentage that earns explicit recognition
	RecognitionThreshold = 85.0
)

// Classify maps a metrics summary to its threshold status. The boundary is inclusive.
func Classify(m types.MetricsSummary) types.ThresholdStatus {
	if m.AttendancePercentage >= Threshold {
		return types.MeetsThreshold
	}
	return types.BelowThreshold
}
