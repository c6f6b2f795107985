package types

// AttendanceStatus represents the status of a single employee-day record
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusHalfDay AttendanceStatus = "half_day"
)

// AllAttendanceStatuses lists every accepted record status
var AllAttendanceStatuses = []AttendanceStatus{
	StatusPresent,
	StatusAbsent,
	StatusLate,
	StatusHalfDay,
}

// CountsAsPresent reports whether the status counts toward present days.
// Late is a sub-case of present.
func (s AttendanceStatus) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// ThresholdStatus is the binary classification of an employee's attendance
type ThresholdStatus string

const (
	MeetsThreshold ThresholdStatus = "meets_threshold"
	BelowThreshold ThresholdStatus = "below_threshold"
)

// RecentStatus classifies the most recent stored records of an employee
type RecentStatus string

const (
	RecentExcellent RecentStatus = "Excellent"
	RecentGood      RecentStatus = "Good"
	RecentAverage   RecentStatus = "Average"
	RecentPoor      RecentStatus = "Poor"
	RecentNoData    RecentStatus = "No recent data"
)

// Employee is a member of the analyzed cohort
type Employee struct {
	EmployeeID string `json:"employee_id" dynamodbav:"EmployeeID" bson:"employee_id" validate:"required"`
	Name       string `json:"name" dynamodbav:"Name" bson:"name" validate:"required"`
	Department string `json:"department" dynamodbav:"Department" bson:"department"`
	Position   string `json:"position" dynamodbav:"Position" bson:"position"`
	Email      string `json:"email" dynamodbav:"Email" bson:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" dynamodbav:"Phone" bson:"phone"`
}

// AttendanceRecord is one employee's attendance on one calendar date
type AttendanceRecord struct {
	EmployeeID   string           `json:"employee_id" dynamodbav:"EmployeeID" bson:"employee_id" validate:"required"`
	Date         string           `json:"date" dynamodbav:"Date" bson:"date" validate:"required,isodate"` // YYYY-MM-DD
	CheckInTime  *string          `json:"check_in_time" dynamodbav:"CheckInTime,omitempty" bson:"check_in_time,omitempty" validate:"omitempty,clock"`
	CheckOutTime *string          `json:"check_out_time" dynamodbav:"CheckOutTime,omitempty" bson:"check_out_time,omitempty" validate:"omitempty,clock"`
	Status       AttendanceStatus `json:"status" dynamodbav:"Status" bson:"status" validate:"required,oneof=present absent late half_day"`
	HoursWorked  float64          `json:"hours_worked" dynamodbav:"HoursWorked" bson:"hours_worked" validate:"gte=0"`
}
