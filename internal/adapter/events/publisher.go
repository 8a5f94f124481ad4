// Package events publishes turn notifications for downstream consumers
// such as analytics or human hand-off tooling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// SubjectTurnCompleted is published once per completed chat turn.
const SubjectTurnCompleted = "support.turn.completed"

// TurnCompleted describes a finished turn. Message content is not included.
type TurnCompleted struct {
	SessionID string        `json:"session_id"`
	MessageID string        `json:"message_id"`
	Intent    domain.Intent `json:"intent"`
	Retrieved bool          `json:"retrieved"`
	Degraded  bool          `json:"degraded"`
	Sources   int           `json:"sources"`
	LatencyMS int64         `json:"latency_ms"`
	At        time.Time     `json:"at"`
}

// Publisher sends turn events.
type Publisher interface {
	PublishTurn(ctx context.Context, event TurnCompleted) error
	Close()
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

// PublishTurn implements Publisher.
func (NoopPublisher) PublishTurn(ctx context.Context, event TurnCompleted) error { return nil }

// Close implements Publisher.
func (NoopPublisher) Close() {}

// NATSPublisher publishes events on a NATS connection.
type NATSPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("support-assistant"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc}, nil
}

// PublishTurn sends event on SubjectTurnCompleted.
func (p *NATSPublisher) PublishTurn(ctx context.Context, event TurnCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}
	if err := p.nc.Publish(SubjectTurnCompleted, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", SubjectTurnCompleted, err)
	}
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}

// New returns a NATS publisher when url is set, else a no-op one.
func New(url string) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}
	return NewNATSPublisher(url)
}
