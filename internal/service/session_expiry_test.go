package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/retriever"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/tracking"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/metrics"
	"github.com/Kailramiya/AI4Chat-ai-assistant/tests/helpers"
)

func TestSessionExpirySweepPurgesIdleSessions(t *testing.T) {
	ctx := context.Background()
	db := helpers.NewTestSQLiteStore(t)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	cfg := testConfig()
	svc := New(db, retriever.NewMockRetriever(), tracking.NewMockTracker(nil), nil, nil, m, cfg, nil)

	_, err := svc.HandleTurn(ctx, domain.ChatRequest{Message: "hi", SessionID: "old"})
	require.NoError(t, err)

	// Jump past the TTL.
	svc.now = func() time.Time { return time.Now().Add(2 * cfg.SessionTTL) }
	purged := svc.sweepExpiredSessions(ctx)
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsPurgedTotal))

	session, err := svc.GetSession(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionExpiryMonitorStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.SessionSweepInterval = 10 * time.Millisecond
	svc := New(helpers.NewTestMemoryStore(t), retriever.NewMockRetriever(), nil, nil, nil, nil, cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunSessionExpiryMonitor(ctx)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
