package storage

import (
	"context"

	"github.com/rs/zerolog"
)

// NewStore opens the backend selected by cfg.Mode
func NewStore(ctx context.Context, cfg Config, logger zerolog.Logger) (Store, error) {
	switch cfg.Mode {
	case ModeDynamoDB:
		return NewDynamoDBStore(ctx, cfg.Dynamo, logger)
	case ModePostgres:
		return NewPostgresStore(ctx, cfg.Postgres, logger)
	case ModeMongo:
		return NewMongoStore(ctx, cfg.Mongo, logger)
	default:
		logger.Info().Msg("using in-memory store")
		return NewMemoryStore(), nil
	}
}
