package storage

import (
	"context"
	"fmt"

	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
)

// batchSize is the DynamoDB BatchWriteItem limit
const batchSize = 25

// recordItem stores an attendance record under a unique sort key so that
// duplicate (employee, date) records survive like in the other backends
type recordItem struct {
	types.AttendanceRecord
	RecordKey string `dynamodbav:"RecordKey"`
}

// DynamoDBStore implements Store using AWS DynamoDB.
// Replacements truncate then rewrite, so readers may briefly see a partial set.
type DynamoDBStore struct {
	client *dynamodb.Client
	config DynamoConfig
	logger zerolog.Logger
}

// NewDynamoDBStore creates a new DynamoDB store
func NewDynamoDBStore(ctx context.Context, cfg DynamoConfig, logger zerolog.Logger) (*DynamoDBStore, error) {
	var client *dynamodb.Client

	if cfg.Mode == DynamoModeLocal {
		// Build the client directly: LoadDefaultConfig probes IMDS, which hangs
		// on EC2 hosts when static local credentials are intended.
		client = dynamodb.New(dynamodb.Options{
			Region:       cfg.Region,
			BaseEndpoint: aws.String(cfg.Endpoint),
			Credentials:  credentials.NewStaticCredentialsProvider("local", "local", ""),
		})
	} else {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client = dynamodb.NewFromConfig(awsCfg)
	}

	store := &DynamoDBStore{
		client: client,
		config: cfg,
		logger: logger.With().Str("component", "dynamodb_store").Logger(),
	}

	if cfg.Mode == DynamoModeLocal {
		if err := CreateTablesIfNotExist(ctx, client, cfg, store.logger); err != nil {
			return nil, err
		}
	}

	store.logger.Info().
		Str("mode", string(cfg.Mode)).
		Str("region", cfg.Region).
		Msg("DynamoDB store initialized")

	return store, nil
}

func (s *DynamoDBStore) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	items, err := s.scanAll(ctx, s.config.EmployeesTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	var employees []types.Employee
	if err := attributevalue.UnmarshalListOfMaps(items, &employees); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employees: %w", err)
	}
	return employees, nil
}

func (s *DynamoDBStore) ListRecords(ctx context.Context) ([]types.AttendanceRecord, error) {
	items, err := s.scanAll(ctx, s.config.RecordsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance records: %w", err)
	}

	var stored []recordItem
	if err := attributevalue.UnmarshalListOfMaps(items, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance records: %w", err)
	}

	records := make([]types.AttendanceRecord, len(stored))
	for i, item := range stored {
		records[i] = item.AttendanceRecord
	}
	return records, nil
}

func (s *DynamoDBStore) ReplaceDataset(ctx context.Context, employees []types.Employee, records []types.AttendanceRecord) error {
	for _, table := range tableSpecs(s.config) {
		if err := s.truncateTable(ctx, table); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table.name, err)
		}
	}

	empItems := make([]any, len(employees))
	for i, emp := range employees {
		empItems[i] = emp
	}
	if err := s.putAll(ctx, s.config.EmployeesTable, empItems); err != nil {
		return fmt.Errorf("failed to write employees: %w", err)
	}

	recItems := make([]any, len(records))
	for i, rec := range records {
		recItems[i] = recordItem{
			AttendanceRecord: rec,
			RecordKey:        fmt.Sprintf("%s#%06d", rec.Date, i),
		}
	}
	if err := s.putAll(ctx, s.config.RecordsTable, recItems); err != nil {
		return fmt.Errorf("failed to write attendance records: %w", err)
	}

	return nil
}

func (s *DynamoDBStore) ListAnalysisResults(ctx context.Context) ([]types.AnalysisResult, error) {
	items, err := s.scanAll(ctx, s.config.ResultsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis results: %w", err)
	}

	var results []types.AnalysisResult
	if err := attributevalue.UnmarshalListOfMaps(items, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis results: %w", err)
	}
	return results, nil
}

func (s *DynamoDBStore) ReplaceAnalysisResults(ctx context.Context, results []types.AnalysisResult) error {
	table := tableSpecs(s.config)[2]
	if err := s.truncateTable(ctx, table); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table.name, err)
	}

	items := make([]any, len(results))
	for i, r := range results {
		items[i] = r
	}
	if err := s.putAll(ctx, table.name, items); err != nil {
		return fmt.Errorf("failed to write analysis results: %w", err)
	}
	return nil
}

func (s *DynamoDBStore) Counts(ctx context.Context) (types.DatasetCounts, error) {
	var counts types.DatasetCounts
	targets := []struct {
		table string
		dst   *int
	}{
		{s.config.EmployeesTable, &counts.Employees},
		{s.config.RecordsTable, &counts.Records},
		{s.config.ResultsTable, &counts.Results},
	}

	for _, target := range targets {
		n, err := s.count(ctx, target.table)
		if err != nil {
			return counts, fmt.Errorf("failed to count %s: %w", target.table, err)
		}
		*target.dst = n
	}
	return counts, nil
}

func (s *DynamoDBStore) Close(_ context.Context) error { return nil }

func (s *DynamoDBStore) scanAll(ctx context.Context, tableName string) ([]map[string]dbtypes.AttributeValue, error) {
	var items []map[string]dbtypes.AttributeValue
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func (s *DynamoDBStore) count(ctx context.Context, tableName string) (int, error) {
	total := 0
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(tableName),
		Select:    dbtypes.SelectCount,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		total += int(page.Count)
	}
	return total, nil
}

// putAll writes items in BatchWriteItem chunks, resubmitting unprocessed items
func (s *DynamoDBStore) putAll(ctx context.Context, tableName string, items []any) error {
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}

		requests := make([]dbtypes.WriteRequest, 0, end-i)
		for _, item := range items[i:end] {
			av, err := attributevalue.MarshalMap(item)
			if err != nil {
				return fmt.Errorf("failed to marshal item: %w", err)
			}
			requests = append(requests, dbtypes.WriteRequest{
				PutRequest: &dbtypes.PutRequest{Item: av},
			})
		}

		if err := s.batchWrite(ctx, tableName, requests); err != nil {
			return err
		}
	}
	return nil
}

func (s *DynamoDBStore) batchWrite(ctx context.Context, tableName string, requests []dbtypes.WriteRequest) error {
	pending := map[string][]dbtypes.WriteRequest{tableName: requests}

	for attempt := 0; len(pending[tableName]) > 0; attempt++ {
		if attempt == 5 {
			return fmt.Errorf("%d items still unprocessed after %d attempts", len(pending[tableName]), attempt)
		}
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return err
		}
		pending = out.UnprocessedItems
	}
	return nil
}

// truncateTable deletes all items from one table (scan + batch delete)
func (s *DynamoDBStore) truncateTable(ctx context.Context, table tableSpec) error {
	proj := expression.NamesList(expression.Name(table.pk))
	if table.sk != "" {
		proj = proj.AddNames(expression.Name(table.sk))
	}
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return fmt.Errorf("failed to build projection: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                aws.String(table.name),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		Limit:                    aws.Int32(500),
	})

	deleted := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}

		for i := 0; i < len(page.Items); i += batchSize {
			end := i + batchSize
			if end > len(page.Items) {
				end = len(page.Items)
			}

			requests := make([]dbtypes.WriteRequest, 0, end-i)
			for _, item := range page.Items[i:end] {
				key := map[string]dbtypes.AttributeValue{table.pk: item[table.pk]}
				if table.sk != "" {
					key[table.sk] = item[table.sk]
				}
				requests = append(requests, dbtypes.WriteRequest{
					DeleteRequest: &dbtypes.DeleteRequest{Key: key},
				})
			}

			if err := s.batchWrite(ctx, table.name, requests); err != nil {
				return err
			}
			deleted += len(requests)
		}
	}

	s.logger.Debug().Str("table", table.name).Int("deleted", deleted).Msg("table truncated")
	return nil
}
