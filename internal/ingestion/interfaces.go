package ingestion

import (
	"context"

	"github.com/Saksham932007/Attendance/internal/types"
)

// DatasetWriter persists a validated dataset (storage.Store satisfies it)
type DatasetWriter interface {
	ReplaceDataset(ctx context.Context, employees []types.Employee, records []types.AttendanceRecord) error
}

// Source labels where a dataset came from
type Source string

const (
	SourceUpload Source = "upload"
	SourceSample Source = "sample"
)
