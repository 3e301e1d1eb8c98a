package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-deck/internal/domain"
	"quiz-deck/internal/repository/models"
)

const (
	getOverrideQuery = `SELECT store_key "store_key", payload "payload", updated_at "updated_at" FROM override_store WHERE store_key = :1`

	upsertOverrideQuery = `MERGE INTO override_store t
	USING (SELECT :1 AS store_key FROM dual) s
	ON (t.store_key = s.store_key)
	WHEN MATCHED THEN UPDATE SET t.payload = :2, t.updated_at = :3
	WHEN NOT MATCHED THEN INSERT (store_key, payload, updated_at) VALUES (:4, :5, :6)`

	deleteOverrideQuery = `DELETE FROM override_store WHERE store_key = :1`
)

// SQLOverrideStore implements domain.OverrideStore on the override_store table.
type SQLOverrideStore struct {
	db  DBTX
	now func() time.Time
}

// NewSQLOverrideStore accepts a *sqlx.DB (or *sqlx.Tx).
func NewSQLOverrideStore(db DBTX) domain.OverrideStore {
	return &SQLOverrideStore{db: db, now: time.Now}
}

func (s *SQLOverrideStore) Get(ctx context.Context, key string) (string, error) {
	var record models.OverrideRecord
	if err := s.db.GetContext(ctx, &record, getOverrideQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrStoreMiss
		}
		return "", fmt.Errorf("failed to get override %s: %w", key, err)
	}
	return record.Payload, nil
}

func (s *SQLOverrideStore) Set(ctx context.Context, key string, value string) error {
	now := s.now().UTC()
	if _, err := s.db.ExecContext(ctx, upsertOverrideQuery, key, value, now, key, value, now); err != nil {
		return fmt.Errorf("failed to save override %s: %w", key, err)
	}
	return nil
}

func (s *SQLOverrideStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteOverrideQuery, key); err != nil {
		return fmt.Errorf("failed to delete override %s: %w", key, err)
	}
	return nil
}

func (s *SQLOverrideStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
