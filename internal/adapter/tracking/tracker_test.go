package tracking

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTrackerPicksKnownStatuses(t *testing.T) {
	tr := NewMockTracker(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		info, err := tr.Lookup(context.Background(), "ORD-1")
		require.NoError(t, err)
		assert.Contains(t, Statuses, info)
		seen[info.Status] = true
	}
	assert.Len(t, seen, len(Statuses), "every status should come up over many draws")
}

func TestMockTrackerDeterministicWithSeed(t *testing.T) {
	a := NewMockTracker(rand.NewSource(42))
	b := NewMockTracker(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		x, _ := a.Lookup(context.Background(), "ORD-1")
		y, _ := b.Lookup(context.Background(), "ORD-1")
		assert.Equal(t, x, y)
	}
}

func TestMockTrackerRejectsBlankID(t *testing.T) {
	tr := NewMockTracker(nil)
	_, err := tr.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrOrderIDRequired)
}

func TestMockTrackerCancelled(t *testing.T) {
	tr := NewMockTracker(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tr.Lookup(ctx, "ORD-1")
	assert.ErrorIs(t, err, context.Canceled)
}
