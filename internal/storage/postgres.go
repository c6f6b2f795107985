package storage

import (
	"context"
	"fmt"

	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const insertBatchSize = 500

type employeeRow struct {
	EmployeeID string `gorm:"primaryKey;size:64"`
	Name       string `gorm:"not null"`
	Department string
	Position   string
	Email      string
	Phone      string
}

func (employeeRow) TableName() string { return "employees" }

type recordRow struct {
	ID           uint   `gorm:"primaryKey"`
	EmployeeID   string `gorm:"index;size:64;not null"`
	Date         string `gorm:"size:10;not null"`
	CheckInTime  *string
	CheckOutTime *string
	Status       string `gorm:"size:16;not null"`
	HoursWorked  float64
}

func (recordRow) TableName() string { return "attendance_records" }

type resultRow struct {
	EmployeeID           string `gorm:"primaryKey;size:64"`
	Name                 string
	Department           string
	TotalDays            int
	PresentDays          int
	AbsentDays           int
	LateDays             int
	AttendancePercentage float64
	Status               string `gorm:"size:32"`
	AIInsights           string `gorm:"type:text"`
}

func (resultRow) TableName() string { return "analysis_results" }

// PostgresStore implements Store on Postgres through gorm.
// Replacements run inside one transaction.
type PostgresStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewPostgresStore connects to Postgres and migrates the schema
func NewPostgresStore(ctx context.Context, cfg PostgresConfig, log zerolog.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&employeeRow{}, &recordRow{}, &resultRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	store := &PostgresStore{
		db:     db,
		logger: log.With().Str("component", "postgres_store").Logger(),
	}
	store.logger.Info().Msg("Postgres store initialized")
	return store, nil
}

func (s *PostgresStore) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	var rows []employeeRow
	if err := s.db.WithContext(ctx).Order("employee_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]types.Employee, len(rows))
	for i, r := range rows {
		employees[i] = types.Employee{
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			Department: r.Department,
			Position:   r.Position,
			Email:      r.Email,
			Phone:      r.Phone,
		}
	}
	return employees, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context) ([]types.AttendanceRecord, error) {
	var rows []recordRow
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	records := make([]types.AttendanceRecord, len(rows))
	for i, r := range rows {
		records[i] = types.AttendanceRecord{
			EmployeeID:   r.EmployeeID,
			Date:         r.Date,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			Status:       types.AttendanceStatus(r.Status),
			HoursWorked:  r.HoursWorked,
		}
	}
	return records, nil
}

func (s *PostgresStore) ReplaceDataset(ctx context.Context, employees []types.Employee, records []types.AttendanceRecord) error {
	empRows := make([]employeeRow, len(employees))
	for i, e := range employees {
		empRows[i] = employeeRow(e)
	}
	recRows := make([]recordRow, len(records))
	for i, r := range records {
		recRows[i] = recordRow{
			EmployeeID:   r.EmployeeID,
			Date:         r.Date,
			CheckInTime:  r.CheckInTime,
			CheckOutTime: r.CheckOutTime,
			Status:       string(r.Status),
			HoursWorked:  r.HoursWorked,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&resultRow{}, &recordRow{}, &employeeRow{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(empRows) > 0 {
			if err := tx.CreateInBatches(empRows, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(recRows) > 0 {
			if err := tx.CreateInBatches(recRows, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace dataset: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAnalysisResults(ctx context.Context) ([]types.AnalysisResult, error) {
	var rows []resultRow
	if err := s.db.WithContext(ctx).Order("employee_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list analysis results: %w", err)
	}

	results := make([]types.AnalysisResult, len(rows))
	for i, r := range rows {
		results[i] = types.AnalysisResult{
			EmployeeID:           r.EmployeeID,
			Name:                 r.Name,
			Department:           r.Department,
			TotalDays:            r.TotalDays,
			PresentDays:          r.PresentDays,
			AbsentDays:           r.AbsentDays,
			LateDays:             r.LateDays,
			AttendancePercentage: r.AttendancePercentage,
			Status:               types.ThresholdStatus(r.Status),
			AIInsights:           r.AIInsights,
		}
	}
	return results, nil
}

func (s *PostgresStore) ReplaceAnalysisResults(ctx context.Context, results []types.AnalysisResult) error {
	rows := make([]resultRow, len(results))
	for i, r := range results {
		rows[i] = resultRow{
			EmployeeID:           r.EmployeeID,
			Name:                 r.Name,
			Department:           r.Department,
			TotalDays:            r.TotalDays,
			PresentDays:          r.PresentDays,
			AbsentDays:           r.AbsentDays,
			LateDays:             r.LateDays,
			AttendancePercentage: r.AttendancePercentage,
			Status:               string(r.Status),
			AIInsights:           r.AIInsights,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&resultRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace analysis results: %w", err)
	}
	return nil
}

func (s *PostgresStore) Counts(ctx context.Context) (types.DatasetCounts, error) {
	var emp, rec, res int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&employeeRow{}).Count(&emp).Error; err != nil {
		return types.DatasetCounts{}, fmt.Errorf("failed to count employees: %w", err)
	}
	if err := db.Model(&recordRow{}).Count(&rec).Error; err != nil {
		return types.DatasetCounts{}, fmt.Errorf("failed to count attendance records: %w", err)
	}
	if err := db.Model(&resultRow{}).Count(&res).Error; err != nil {
		return types.DatasetCounts{}, fmt.Errorf("failed to count analysis results: %w", err)
	}
	return types.DatasetCounts{Employees: int(emp), Records: int(rec), Results: int(res)}, nil
}

func (s *PostgresStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
