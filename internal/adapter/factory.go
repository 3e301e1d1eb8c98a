package adapter

import (
	"context"
	"fmt"

	"quiz-deck/internal/cache"
	"quiz-deck/internal/config"
	"quiz-deck/internal/database"
	"quiz-deck/internal/domain"
	"quiz-deck/internal/logger"
	"quiz-deck/internal/repository"

	"go.uber.org/zap"
)

// OpenOverrideStore builds the configured override backend and a func that
// releases its connections.
func OpenOverrideStore(ctx context.Context, cfg *config.Config) (domain.OverrideStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisOverrideStore(client), func() { _ = client.Close() }, nil
	case config.StoreBackendSQL:
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLOverrideStore(db), func() { _ = db.Close() }, nil
	case config.StoreBackendMemory:
		return NewMemoryOverrideStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// NewQuestionSource picks the HTTP source when a URL is configured and the
// file source otherwise.
func NewQuestionSource(cfg config.SourceConfig) domain.QuestionSource {
	if cfg.URL != "" {
		logger.Get().Info("Fetching questions over HTTP", zap.String("url", cfg.URL))
		return NewHTTPQuestionSource(cfg.URL, cfg.Timeout)
	}
	logger.Get().Info("Reading questions from file", zap.String("path", cfg.Path))
	return NewFileQuestionSource(cfg.Path)
}
