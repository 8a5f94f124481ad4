package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLocksSerializeSameKey(t *testing.T) {
	l := newSessionLocks()
	release, err := l.acquire(context.Background(), "s1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := l.acquire(context.Background(), "s1")
		if err == nil {
			close(acquired)
			r()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held lock")
	case <-time.After(30 * time.Millisecond):
	}
	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock was not handed over")
	}
}

func TestSessionLocksIndependentKeys(t *testing.T) {
	l := newSessionLocks()
	r1, err := l.acquire(context.Background(), "a")
	require.NoError(t, err)
	r2, err := l.acquire(context.Background(), "b")
	require.NoError(t, err)
	r1()
	r2()
	r2()
	assert.Zero(t, l.size())
}

func TestSessionLocksRespectContext(t *testing.T) {
	l := newSessionLocks()
	release, err := l.acquire(context.Background(), "s1")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.acquire(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
