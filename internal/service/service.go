// Package service implements the chat orchestrator.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/events"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/retriever"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/tracking"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/config"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/intent"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/metrics"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/policy"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/repository"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/synth"
)

type Service struct {
	store        store.Store
	retriever    retriever.Retriever
	tracker      tracking.Tracker
	classifier   *intent.Classifier
	synthesizer  *synth.Synthesizer
	policyEngine *policy.Engine
	publisher    events.Publisher
	metrics      *metrics.Metrics
	config       *config.Config
	logger       *zap.Logger

	locks *sessionLocks
	now   func() time.Time
}

// New wires the orchestrator. policyEngine, publisher, m and logger may be nil.
func New(store store.Store, retriever retriever.Retriever, tracker tracking.Tracker, policyEngine *policy.Engine, publisher events.Publisher, m *metrics.Metrics, cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if cfg == nil {
		cfg = config.FromEnv()
	}
	classifier := intent.Default()
	return &Service{
		store:        store,
		retriever:    retriever,
		tracker:      tracker,
		classifier:   classifier,
		synthesizer:  synth.New(classifier, tracker, logger.Named("synth")),
		policyEngine: policyEngine,
		publisher:    publisher,
		metrics:      m,
		config:       cfg,
		logger:       logger,
		locks:        newSessionLocks(),
		now:          time.Now,
	}
}
