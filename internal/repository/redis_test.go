package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Redis tests need a disposable server: the database is flushed per test.
func newRedisTestStore(t *testing.T) *RedisStore {
	t.Helper()
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, url)
	require.NoError(t, err)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	s := NewRedisStore(rdb, time.Hour)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRedisStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return newRedisTestStore(t)
	})
}

func TestRedisStoreSetsTTL(t *testing.T) {
	s := newRedisTestStore(t)
	ctx := context.Background()

	_, err := s.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)

	ttl, err := s.rdb.TTL(ctx, sessionKey("s1")).Result()
	require.NoError(t, err)
	require.Greater(t, ttl, 59*time.Minute)
}
