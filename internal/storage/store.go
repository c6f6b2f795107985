package storage

import (
	"context"
	"sync"

	"github.com/Saksham932007/Attendance/internal/types"
)

// Store defines the storage interface for employees, attendance records and analysis results
type Store interface {
	ListEmployees(ctx context.Context) ([]types.Employee, error)
	ListRecords(ctx context.Context) ([]types.AttendanceRecord, error)
	// ReplaceDataset swaps employees and records and clears stale analysis results
	ReplaceDataset(ctx context.Context, employees []types.Employee, records []types.AttendanceRecord) error
	ListAnalysisResults(ctx context.Context) ([]types.AnalysisResult, error)
	// ReplaceAnalysisResults clears the stored result set and inserts results
	ReplaceAnalysisResults(ctx context.Context, results []types.AnalysisResult) error
	Counts(ctx context.Context) (types.DatasetCounts, error)
	Close(ctx context.Context) error
}

// MemoryStore keeps everything in process memory. Replacements are atomic.
type MemoryStore struct {
	mu        sync.RWMutex
	employees []types.Employee
	records   []types.AttendanceRecord
	results   []types.AnalysisResult
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) ListEmployees(_ context.Context) ([]types.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Employee(nil), s.employees...), nil
}

func (s *MemoryStore) ListRecords(_ context.Context) ([]types.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.AttendanceRecord(nil), s.records...), nil
}

func (s *MemoryStore) ReplaceDataset(_ context.Context, employees []types.Employee, records []types.AttendanceRecord) error {
	emps := append([]types.Employee(nil), employees...)
	recs := append([]types.AttendanceRecord(nil), records...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = emps
	s.records = recs
	s.results = nil
	return nil
}

func (s *MemoryStore) ListAnalysisResults(_ context.Context) ([]types.AnalysisResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.AnalysisResult(nil), s.results...), nil
}

func (s *MemoryStore) ReplaceAnalysisResults(_ context.Context, results []types.AnalysisResult) error {
	res := append([]types.AnalysisResult(nil), results...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = res
	return nil
}

func (s *MemoryStore) Counts(_ context.Context) (types.DatasetCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.DatasetCounts{
		Employees: len(s.employees),
		Records:   len(s.records),
		Results:   len(s.results),
	}, nil
}

func (s *MemoryStore) Close(_ context.Context) error { return nil }
