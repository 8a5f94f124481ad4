// Package synth turns an intent, the user's message and retrieved documents
// into a templated reply.
package synth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/tracking"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/intent"
)

// Input is everything a reply may depend on.
type Input struct {
	Intent    domain.Intent
	Message   string
	Documents []domain.Document
	Session   *domain.Session
}

// Synthesizer selects templates and fills them from documents. It does no
// ranking of its own: documents are used in the order given.
type Synthesizer struct {
	classifier *intent.Classifier
	tracker    tracking.Tracker
	logger     *zap.Logger
}

// New creates a synthesizer. A nil classifier uses the default keyword tables.
func New(classifier *intent.Classifier, tracker tracking.Tracker, logger *zap.Logger) *Synthesizer {
	if classifier == nil {
		classifier = intent.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{classifier: classifier, tracker: tracker, logger: logger}
}

// Synthesize builds the reply for one turn.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (string, error) {
	switch in.Intent {
	case domain.IntentPersonalizedAccount:
		return s.personalized(in.Message), nil
	case domain.IntentOrderTracking:
		return s.orderStatus(ctx, in.Session), nil
	case domain.IntentProductInquiry:
		return productReply(in.Message, in.Documents), nil
	case domain.IntentGeneralKnowledge:
		return generalReply(in.Documents), nil
	default:
		return "", fmt.Errorf("unknown intent %q", in.Intent)
	}
}

func (s *Synthesizer) personalized(message string) string {
	if reply, ok := personalizedReplies[s.classifier.PersonalizedTopic(message)]; ok {
		return reply
	}
	return ReplyPersonalizedGeneric
}

func (s *Synthesizer) orderStatus(ctx context.Context, session *domain.Session) string {
	orderID := session.OrderID()
	if orderID == "" {
		return ReplyAskOrderID
	}
	if s.tracker == nil {
		return fmt.Sprintf(trackingFailed, orderID)
	}
	info, err := s.tracker.Lookup(ctx, orderID)
	if err != nil {
		s.logger.Warn("order lookup failed", zap.String("order_id", orderID), zap.Error(err))
		return fmt.Sprintf(trackingFailed, orderID)
	}
	return fmt.Sprintf("Order %s: %s. %s", orderID, info.Status, info.Details)
}

func generalReply(docs []domain.Document) string {
	if len(docs) == 0 {
		return ReplyNotFound
	}
	if len(docs) > domain.MaxSources {
		docs = docs[:domain.MaxSources]
	}
	var b strings.Builder
	b.WriteString(generalIntro)
	b.WriteString("\n\n")
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(truncate(d.Text, snippetLength))
	}
	b.WriteString("\n\n")
	b.WriteString(generalOutro)
	return b.String()
}

// truncate cuts text to at most n runes, marking the cut with an ellipsis.
func truncate(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
