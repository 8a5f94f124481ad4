package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore(time.Hour, 0)
	})
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(20*time.Millisecond, 0)

	_, err := s.GetOrCreateSession(ctx, "old")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = s.GetOrCreateSession(ctx, "fresh")
	require.NoError(t, err)

	purged, err := s.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	session, err := s.GetSession(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, session)

	session, err = s.GetSession(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, session)
}

func TestMemoryStoreNoExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0, 0)
	_, err := s.GetOrCreateSession(ctx, "s1")
	require.NoError(t, err)

	purged, err := s.PurgeExpired(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged)
}
