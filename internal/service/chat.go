package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/events"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/metrics"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/policy"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/synth"
)

// DegradedReply is sent when the knowledge base cannot be searched.
const DegradedReply = "I'm having trouble searching the knowledge base right now. Please try again shortly."

const publishTimeout = 2 * time.Second

func newMessageID() string {
	return "msg_" + uuid.New().String()[:8]
}

// HandleTurn answers one user message and records both sides of the exchange.
// Turns for the same session run one at a time.
func (s *Service) HandleTurn(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	start := s.now()
	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if err := validateRequest(req, "message and sessionId are required"); err != nil {
		return nil, err
	}
	message, sessionID := req.Message, req.SessionID

	release, err := s.locks.acquire(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	defer release()

	session, err := s.store.GetOrCreateSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create session: %w", err)
	}

	intent := s.classifier.Classify(message)
	userMsg := &domain.Message{
		MessageID: newMessageID(),
		Role:      domain.RoleUser,
		Content:   message,
		Intent:    intent,
		CreatedAt: s.now(),
	}
	if err := s.store.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}
	session.Messages = append(session.Messages, *userMsg)

	log := s.logger.With(zap.String("session_id", sessionID), zap.String("intent", string(intent)))

	retrieve, err := s.policyEngine.NeedsDocuments(ctx, policy.Input{Intent: intent, Message: message})
	if err != nil {
		log.Warn("routing policy failed, using intent default", zap.Error(err))
	}

	var (
		docs     []domain.Document
		reply    string
		degraded bool
	)
	if retrieve {
		docs, err = s.search(ctx, message)
		if err != nil {
			log.Warn("knowledge search failed", zap.Error(err))
			s.metrics.RecordDegraded()
			degraded = true
			reply = DegradedReply
			docs = nil
		}
	}

	if !degraded {
		reply, err = s.synthesizer.Synthesize(ctx, synth.Input{
			Intent:    intent,
			Message:   message,
			Documents: docs,
			Session:   session,
		})
		if err != nil {
			s.metrics.RecordTurn(string(intent), "error", s.now().Sub(start))
			return nil, fmt.Errorf("failed to synthesize reply: %w", err)
		}
	}

	var sources []domain.Source
	if len(docs) > 0 {
		sources = domain.SourcesFor(docs)
	}
	assistantMsg := &domain.Message{
		MessageID: newMessageID(),
		Role:      domain.RoleAssistant,
		Content:   reply,
		Intent:    intent,
		Sources:   sources,
		CreatedAt: s.now(),
	}
	if err := s.store.AppendMessage(ctx, sessionID, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	elapsed := s.now().Sub(start)
	status := "ok"
	if degraded {
		status = "degraded"
	}
	s.metrics.RecordTurn(string(intent), status, elapsed)
	s.publishTurn(ctx, events.TurnCompleted{
		SessionID: sessionID,
		MessageID: assistantMsg.MessageID,
		Intent:    intent,
		Retrieved: retrieve,
		Degraded:  degraded,
		Sources:   len(sources),
		LatencyMS: elapsed.Milliseconds(),
		At:        assistantMsg.CreatedAt,
	})
	log.Debug("turn completed", zap.Bool("retrieved", retrieve), zap.Bool("degraded", degraded), zap.Int("documents", len(docs)))

	return &domain.ChatResponse{
		Response:  reply,
		SessionID: sessionID,
		Sources:   sources,
		Intent:    intent,
		Degraded:  degraded,
	}, nil
}

// search queries the retriever under the configured timeout.
func (s *Service) search(ctx context.Context, query string) ([]domain.Document, error) {
	if s.retriever == nil {
		return nil, fmt.Errorf("no retriever configured")
	}
	if s.config.RetrieverTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RetrieverTimeout)
		defer cancel()
	}
	limit := s.config.RetrieverLimit
	if limit <= 0 {
		limit = 5
	}

	start := s.now()
	docs, err := s.retriever.Search(ctx, query, limit)
	if err != nil {
		s.metrics.RecordRetrieval(metrics.OutcomeError, 0, s.now().Sub(start))
		return nil, err
	}
	s.metrics.RecordRetrieval(metrics.OutcomeOK, len(docs), s.now().Sub(start))
	return docs, nil
}

// publishTurn is best effort; a failed publish never fails the turn.
func (s *Service) publishTurn(ctx context.Context, event events.TurnCompleted) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishTurn(pubCtx, event); err != nil {
		s.logger.Warn("failed to publish turn event", zap.String("session_id", event.SessionID), zap.Error(err))
	}
}
