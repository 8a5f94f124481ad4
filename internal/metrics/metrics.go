// Package metrics provides Prometheus metrics for the support assistant.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Retrieval outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds all Prometheus metrics for the chat service.
type Metrics struct {
	// Turn metrics
	TurnsTotal    *prometheus.CounterVec
	TurnDuration  *prometheus.HistogramVec
	DegradedTotal prometheus.Counter

	// Retrieval metrics
	RetrievalsTotal   *prometheus.CounterVec
	RetrievalDuration prometheus.Histogram
	DocumentsReturned prometheus.Histogram

	// Session metrics
	SessionsPurgedTotal prometheus.Counter
	TrackOrdersTotal    prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	m := &Metrics{}

	m.TurnsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_chat_turns_total",
			Help: "Total number of chat turns by intent and outcome",
		},
		[]string{"intent", "status"},
	)

	m.TurnDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "support_chat_turn_duration_seconds",
			Help:    "Duration of chat turns in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	m.DegradedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "support_chat_degraded_replies_total",
			Help: "Total number of turns answered with the retrieval apology",
		},
	)

	m.RetrievalsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_retrievals_total",
			Help: "Total number of knowledge-base searches by outcome",
		},
		[]string{"outcome"},
	)

	m.RetrievalDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "support_retrieval_duration_seconds",
			Help:    "Duration of knowledge-base searches in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	m.DocumentsReturned = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "support_retrieval_documents",
			Help:    "Number of documents returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
	)

	m.SessionsPurgedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "support_sessions_purged_total",
			Help: "Total number of expired sessions removed",
		},
	)

	m.TrackOrdersTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "support_track_order_requests_total",
			Help: "Total number of track-order requests",
		},
	)

	return m
}

// RecordTurn records a completed turn.
func (m *Metrics) RecordTurn(intent, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.TurnsTotal.WithLabelValues(intent, status).Inc()
	m.TurnDuration.WithLabelValues(intent).Observe(duration.Seconds())
}

// RecordRetrieval records a knowledge-base search.
func (m *Metrics) RecordRetrieval(outcome string, docs int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RetrievalsTotal.WithLabelValues(outcome).Inc()
	m.RetrievalDuration.Observe(duration.Seconds())
	if outcome == OutcomeOK {
		m.DocumentsReturned.Observe(float64(docs))
	}
}

// RecordDegraded counts a degraded reply.
func (m *Metrics) RecordDegraded() {
	if m == nil {
		return
	}
	m.DegradedTotal.Inc()
}

// RecordPurged counts purged sessions.
func (m *Metrics) RecordPurged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsPurgedTotal.Add(float64(n))
}

// RecordTrackOrder counts a track-order request.
func (m *Metrics) RecordTrackOrder() {
	if m == nil {
		return
	}
	m.TrackOrdersTotal.Inc()
}
