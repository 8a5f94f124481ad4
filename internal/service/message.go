package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// GetMessages returns the latest limit messages of a session, oldest first.
func (s *Service) GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.NewValidationError("sessionId is required", "sessionId")
	}
	messages, err := s.store.GetMessages(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

// GetSession returns a session, or nil when it does not exist.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession forgets a session and its history.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	release, err := s.locks.acquire(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}
	defer release()

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
