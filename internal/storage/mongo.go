package storage

import (
	"context"
	"fmt"

	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	employeesCollection = "employees"
	recordsCollection   = "attendance_records"
	resultsCollection   = "analysis_results"
)

// MongoStore implements Store on MongoDB.
// Replacements delete then insert, so readers may briefly see a partial set.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger zerolog.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection
func NewMongoStore(ctx context.Context, cfg MongoConfig, logger zerolog.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	store := &MongoStore{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger.With().Str("component", "mongo_store").Logger(),
	}
	store.logger.Info().Str("database", cfg.Database).Msg("MongoDB store initialized")
	return store, nil
}

func (s *MongoStore) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	var employees []types.Employee
	if err := s.findAll(ctx, employeesCollection, &employees); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *MongoStore) ListRecords(ctx context.Context) ([]types.AttendanceRecord, error) {
	var records []types.AttendanceRecord
	if err := s.findAll(ctx, recordsCollection, &records); err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, nil
}

func (s *MongoStore) ReplaceDataset(ctx context.Context, employees []types.Employee, records []types.AttendanceRecord) error {
	if _, err := s.db.Collection(resultsCollection).DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to clear analysis results: %w", err)
	}

	empDocs := make([]any, len(employees))
	for i, e := range employees {
		empDocs[i] = e
	}
	if err := s.replaceAll(ctx, employeesCollection, empDocs); err != nil {
		return fmt.Errorf("failed to replace employees: %w", err)
	}

	recDocs := make([]any, len(records))
	for i, r := range records {
		recDocs[i] = r
	}
	if err := s.replaceAll(ctx, recordsCollection, recDocs); err != nil {
		return fmt.Errorf("failed to replace attendance records: %w", err)
	}
	return nil
}

func (s *MongoStore) ListAnalysisResults(ctx context.Context) ([]types.AnalysisResult, error) {
	var results []types.AnalysisResult
	if err := s.findAll(ctx, resultsCollection, &results); err != nil {
		return nil, fmt.Errorf("failed to list analysis results: %w", err)
	}
	return results, nil
}

func (s *MongoStore) ReplaceAnalysisResults(ctx context.Context, results []types.AnalysisResult) error {
	docs := make([]any, len(results))
	for i, r := range results {
		docs[i] = r
	}
	if err := s.replaceAll(ctx, resultsCollection, docs); err != nil {
		return fmt.Errorf("failed to replace analysis results: %w", err)
	}
	return nil
}

func (s *MongoStore) Counts(ctx context.Context) (types.DatasetCounts, error) {
	var counts types.DatasetCounts
	targets := []struct {
		collection string
		dst        *int
	}{
		{employeesCollection, &counts.Employees},
		{recordsCollection, &counts.Records},
		{resultsCollection, &counts.Results},
	}

	for _, target := range targets {
		n, err := s.db.Collection(target.collection).CountDocuments(ctx, bson.D{})
		if err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", target.collection, err)
		}
		*target.dst = int(n)
	}
	return counts, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) findAll(ctx context.Context, collection string, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

func (s *MongoStore) replaceAll(ctx context.Context, collection string, docs []any) error {
	coll := s.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}
