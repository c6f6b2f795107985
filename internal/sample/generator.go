package sample

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/Saksham932007/Attendance/internal/types"
)

const (
	DefaultEmployees = 100
	DefaultDays      = 30

	workStart   = 9 * 60  // 09:00 in minutes
	workEnd     = 17 * 60 // 17:00
	lateGrace   = 30      // minutes after workStart before a check-in counts as late
	jitterEarly = 30
	jitterLate  = 90
)

// tierRanges are the present-probability ranges per fifth of the roster, best first
var tierRanges = [5][2]float64{
	{0.90, 0.95},
	{0.80, 0.89},
	{0.70, 0.79},
	{0.60, 0.69},
	{0.40, 0.59},
}

// Generator creates fake employees and attendance history
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a new generator; the same seed yields the same dataset for a given day
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Generate builds a dataset of employees over the given number of calendar days
// before today. Weekends are skipped.
func (g *Generator) Generate(employees, days int) *types.AttendanceData {
	if employees <= 0 {
		employees = DefaultEmployees
	}
	if days <= 0 {
		days = DefaultDays
	}

	roster := g.GenerateEmployees(employees)

	today := g.now()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).AddDate(0, 0, -days)

	records := make([]types.AttendanceRecord, 0, employees*days)
	for i, emp := range roster {
		presentChance := g.presentChance(i, employees)

		for day := 0; day < days; day++ {
			date := start.AddDate(0, 0, day)
			if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
				continue
			}
			records = append(records, g.generateRecord(emp.EmployeeID, date, presentChance))
		}
	}

	end := start.AddDate(0, 0, days-1)
	return &types.AttendanceData{
		Employees:            roster,
		AttendanceRecords:    records,
		AnalysisPeriod:       fmt.Sprintf("%s to %s", start.Format(time.DateOnly), end.Format(time.DateOnly)),
		WorkHoursStart:       "09:00",
		WorkHoursEnd:         "17:00",
		LateThresholdMinutes: lateGrace,
	}
}

// GenerateEmployees creates count employees with IDs EMP001, EMP002, ...
func (g *Generator) GenerateEmployees(count int) []types.Employee {
	roster := make([]types.Employee, count)

	for i := 0; i < count; i++ {
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]
		dept := departments[g.rng.Intn(len(departments))]
		titles := positions[dept]

		roster[i] = types.Employee{
			EmployeeID: fmt.Sprintf("EMP%03d", i+1),
			Name:       first + " " + last,
			Department: dept,
			Position:   titles[g.rng.Intn(len(titles))],
			Email:      fmt.Sprintf("%s.%s@company.com", strings.ToLower(first), strings.ToLower(last)),
			Phone:      g.generatePhone(),
		}
	}

	return roster
}

// presentChance picks the attendance tier by position in the roster
func (g *Generator) presentChance(index, total int) float64 {
	tier := index * len(tierRanges) / total
	r := tierRanges[tier]
	return r[0] + g.rng.Float64()*(r[1]-r[0])
}

func (g *Generator) generateRecord(employeeID string, date time.Time, presentChance float64) types.AttendanceRecord {
	rec := types.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       date.Format(time.DateOnly),
		Status:     types.StatusAbsent,
	}
	if g.rng.Float64() >= presentChance {
		return rec
	}

	checkIn := workStart + g.jitter()
	checkOut := workEnd + g.jitter()
	in, out := clock(checkIn), clock(checkOut)

	rec.CheckInTime = &in
	rec.CheckOutTime = &out
	rec.Status = types.StatusPresent
	if checkIn > workStart+lateGrace {
		rec.Status = types.StatusLate
	}
	rec.HoursWorked = math.Max(0, math.Round(float64(checkOut-checkIn)/60*100)/100)

	return rec
}

// jitter returns a minute offset in [-30, 90]
func (g *Generator) jitter() int {
	return g.rng.Intn(jitterEarly+jitterLate+1) - jitterEarly
}

func (g *Generator) generatePhone() string {
	return fmt.Sprintf("(%s) %d-%d",
		areaCodes[g.rng.Intn(len(areaCodes))],
		200+g.rng.Intn(800),
		1000+g.rng.Intn(9000),
	)
}

func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
