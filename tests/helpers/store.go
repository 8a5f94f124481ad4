package helpers

import (
	"testing"
	"time"

	store "github.com/Kailramiya/AI4Chat-ai-assistant/internal/repository"
)

// NewTestSQLiteStore returns an in-memory SQLite store closed at test cleanup.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// NewTestMemoryStore returns a memory store with a long TTL and no janitor.
func NewTestMemoryStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore(time.Hour, 0)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
