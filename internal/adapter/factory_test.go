package adapter

import (
	"context"
	"testing"
	"time"

	"quiz-deck/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOverrideStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, closeStore, err := OpenOverrideStore(ctx, &config.Config{Store: config.StoreConfig{Backend: config.StoreBackendMemory}})
		require.NoError(t, err)
		defer closeStore()
		assert.IsType(t, &MemoryOverrideStore{}, store)
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, _, err := OpenOverrideStore(ctx, &config.Config{Store: config.StoreConfig{Backend: "etcd"}})
		assert.EqualError(t, err, "unsupported store backend: etcd")
	})
}

func TestNewQuestionSource(t *testing.T) {
	assert.IsType(t, &HTTPQuestionSource{}, NewQuestionSource(config.SourceConfig{
		URL:     "http://localhost/questions.json",
		Path:    "data/questions.json",
		Timeout: time.Second,
	}))
	assert.IsType(t, &FileQuestionSource{}, NewQuestionSource(config.SourceConfig{Path: "data/questions.json"}))
}
