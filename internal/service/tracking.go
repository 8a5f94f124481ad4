package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// TrackOrder remembers the order on the session and reports its status.
func (s *Service) TrackOrder(ctx context.Context, req domain.TrackOrderRequest) (*domain.TrackOrderResponse, error) {
	req.OrderID = strings.TrimSpace(req.OrderID)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if err := validateRequest(req, "orderId and sessionId are required"); err != nil {
		return nil, err
	}
	if s.tracker == nil {
		return nil, fmt.Errorf("no order tracker configured")
	}
	orderID, sessionID := req.OrderID, req.SessionID
	s.metrics.RecordTrackOrder()

	release, err := s.locks.acquire(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer release()

	if _, err := s.store.GetOrCreateSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}
	if err := s.store.SetContext(ctx, sessionID, domain.ContextOrderID, orderID); err != nil {
		return nil, fmt.Errorf("failed to store order id: %w", err)
	}
	if req.CustomerInfo != nil {
		if err := s.store.SetContext(ctx, sessionID, domain.ContextCustomerInfo, req.CustomerInfo); err != nil {
			return nil, fmt.Errorf("failed to store customer info: %w", err)
		}
	}

	info, err := s.tracker.Lookup(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	s.logger.Debug("order tracked", zap.String("session_id", sessionID), zap.String("order_id", orderID), zap.String("status", info.Status))

	return &domain.TrackOrderResponse{
		Success:      true,
		OrderID:      orderID,
		TrackingInfo: info,
	}, nil
}
