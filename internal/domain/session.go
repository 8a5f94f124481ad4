package domain

import (
	"time"
)

// Session represents a conversation keyed by a client-supplied identifier.
type Session struct {
	SessionID string         `json:"session_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Context   map[string]any `json:"context,omitempty"`
	Messages  []Message      `json:"messages,omitempty"`
}

// Message represents a single message in a session.
type Message struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Intent    Intent    `json:"intent,omitempty"`
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSession returns an empty session created at now.
func NewSession(sessionID string, now time.Time) *Session {
	return &Session{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
		Context:   make(map[string]any),
	}
}

// OrderID returns the order identifier stored in the session context, if any.
func (s *Session) OrderID() string {
	if s == nil || s.Context == nil {
		return ""
	}
	id, _ := s.Context[ContextOrderID].(string)
	return id
}

// Clone returns a deep-enough copy for handing session state across goroutines.
// Message and source slices are copied; context values are shared.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Context = make(map[string]any, len(s.Context))
	for k, v := range s.Context {
		out.Context[k] = v
	}
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		out.Messages[i] = m
		if m.Sources != nil {
			out.Messages[i].Sources = append([]Source(nil), m.Sources...)
		}
	}
	return &out
}

// NextTimestamp returns now, or the instant just after the newest message when the clock
// has not advanced past it. History stays strictly ordered.
func (s *Session) NextTimestamp(now time.Time) time.Time {
	if n := len(s.Messages); n > 0 {
		last := s.Messages[n-1].CreatedAt
		if !now.After(last) {
			return last.Add(time.Nanosecond)
		}
	}
	return now
}
