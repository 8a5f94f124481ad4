// Package store defines session storage and its backends.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// ErrSessionNotFound is returned when mutating a session that does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session state.
//
// Stores do not serialize read-modify-write sequences across calls; callers that
// need a turn to be atomic must hold a per-session lock around it.
type Store interface {
	// Session operations
	GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetContext(ctx context.Context, sessionID, key string, value any) error

	// Message operations
	AppendMessage(ctx context.Context, sessionID string, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error)

	// Expiry
	PurgeExpired(ctx context.Context, olderThan time.Time) (int, error)

	// Lifecycle
	Close() error
}

// tail returns the last limit messages, or all of them when limit <= 0.
func tail(messages []domain.Message, limit int) []domain.Message {
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	out := make([]domain.Message, len(messages))
	copy(out, messages)
	return out
}
