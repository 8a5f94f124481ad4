package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

func TestNewWithoutURLIsNoop(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.PublishTurn(context.Background(), TurnCompleted{SessionID: "s1"}))
	p.Close()
}

func TestTurnCompletedPayload(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	data, err := json.Marshal(TurnCompleted{
		SessionID: "s1",
		MessageID: "msg_1234abcd",
		Intent:    domain.IntentProductInquiry,
		Retrieved: true,
		Sources:   2,
		LatencyMS: 15,
		At:        at,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"session_id": "s1",
		"message_id": "msg_1234abcd",
		"intent": "product_inquiry",
		"retrieved": true,
		"degraded": false,
		"sources": 2,
		"latency_ms": 15,
		"at": "2025-03-01T10:00:00Z"
	}`, string(data))
}
