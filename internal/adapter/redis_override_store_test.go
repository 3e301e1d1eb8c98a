package adapter

import (
	"context"
	"errors"
	"testing"

	"quiz-deck/internal/cache"
	"quiz-deck/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisOverrideStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisOverrideStore(db)
	ctx := context.Background()

	key := cache.OverrideKey("questionsData")
	expectedValue := `{"categories":[]}`

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(expectedValue)
		val, err := store.Get(ctx, "questionsData")
		assert.NoError(t, err)
		assert.Equal(t, expectedValue, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := store.Get(ctx, "questionsData")
		assert.ErrorIs(t, err, domain.ErrStoreMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectGet(key).SetErr(redisErr)
		val, err := store.Get(ctx, "questionsData")
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisOverrideStore_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisOverrideStore(db)
	ctx := context.Background()

	key := cache.OverrideKey("questionsData")
	value := `{"categories":[]}`

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(key, value, 0).SetVal("OK")
		err := store.Set(ctx, "questionsData", value)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectSet(key, value, 0).SetErr(redisErr)
		err := store.Set(ctx, "questionsData", value)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisOverrideStore_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisOverrideStore(db)
	ctx := context.Background()

	key := cache.OverrideKey("questionsData")

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		assert.NoError(t, store.Delete(ctx, "questionsData"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SuccessKeyNotFound", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(0)
		assert.NoError(t, store.Delete(ctx, "questionsData"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisOverrideStore_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisOverrideStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectPing().SetVal("PONG")
		assert.NoError(t, store.Ping(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectPing().SetErr(redisErr)
		assert.ErrorIs(t, store.Ping(ctx), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
