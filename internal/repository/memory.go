package store

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

// MemoryStore keeps sessions in process memory with a sliding expiry.
// Every write re-arms the session's TTL.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time

	// guards read-modify-write of a cached *Session value
	mu sync.Mutex
}

// NewMemoryStore creates a store whose sessions expire after ttl of inactivity.
// The cache janitor runs every cleanupInterval; a zero interval disables it.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &MemoryStore{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
		now:   time.Now,
	}
}

// GetOrCreateSession gets an existing session or creates a new one.
func (s *MemoryStore) GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.load(sessionID); ok {
		return session.Clone(), nil
	}
	session := domain.NewSession(sessionID, s.now())
	s.cache.Set(sessionID, session, cache.DefaultExpiration)
	return session.Clone(), nil
}

// GetSession retrieves a session by ID. It returns nil, nil when absent.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.load(sessionID)
	if !ok {
		return nil, nil
	}
	return session.Clone(), nil
}

// DeleteSession removes a session.
func (s *MemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}

// SetContext stores a context value on a session.
func (s *MemoryStore) SetContext(ctx context.Context, sessionID, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.load(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	next := session.Clone()
	next.Context[key] = value
	next.UpdatedAt = s.now()
	s.cache.Set(sessionID, next, cache.DefaultExpiration)
	return nil
}

// AppendMessage appends a message to the session history.
func (s *MemoryStore) AppendMessage(ctx context.Context, sessionID string, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.load(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	next := session.Clone()
	msg := *message
	msg.SessionID = sessionID
	msg.CreatedAt = next.NextTimestamp(msg.CreatedAt)
	next.Messages = append(next.Messages, msg)
	next.UpdatedAt = s.now()
	s.cache.Set(sessionID, next, cache.DefaultExpiration)
	*message = msg
	return nil
}

// GetMessages returns the most recent limit messages in chronological order.
func (s *MemoryStore) GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.load(sessionID)
	if !ok {
		return []domain.Message{}, nil
	}
	return tail(session.Messages, limit), nil
}

// PurgeExpired drops sessions whose TTL has lapsed. The cache tracks expiry
// itself, so olderThan is not consulted.
func (s *MemoryStore) PurgeExpired(ctx context.Context, olderThan time.Time) (int, error) {
	before := s.cache.ItemCount()
	s.cache.DeleteExpired()
	purged := before - s.cache.ItemCount()
	if purged < 0 {
		purged = 0
	}
	return purged, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) load(sessionID string) (*domain.Session, bool) {
	x, found := s.cache.Get(sessionID)
	if !found {
		return nil, false
	}
	return x.(*domain.Session), true
}
