package domain

import (
	"context"
)

// StoreError represents an error originating from the override store.
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

// ErrStoreMiss is returned when a key has never been written.
const ErrStoreMiss = StoreError("store: key not found")

// OverrideStore is the durable key-value port that holds the locally edited deck.
// Implementations: adapter.MemoryOverrideStore, adapter.RedisOverrideStore,
// repository.SQLOverrideStore.
type OverrideStore interface {
	// Get returns ErrStoreMiss if the key is not present.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value stored at key.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. It does not fail when the key is absent.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the backing service.
	Ping(ctx context.Context) error
}

// QuestionSource fetches the default deck document. A single attempt is made per call.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
