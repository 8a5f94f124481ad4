package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

const redisKeyPrefix = "chat:session:"

// RedisStore keeps each session as a JSON document under a key with a sliding TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewRedisClient parses url and returns a connected client. A url that is not a
// redis:// URL is used as a plain address.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// NewRedisStore wraps rdb. A ttl <= 0 keeps sessions forever.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func sessionKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) read(ctx context.Context, c redis.Cmdable, sessionID string) (*domain.Session, error) {
	data, err := c.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	if session.Context == nil {
		session.Context = make(map[string]any)
	}
	return &session, nil
}

// update runs fn over the stored session inside an optimistic transaction and
// writes the result back with a fresh TTL.
func (s *RedisStore) update(ctx context.Context, sessionID string, create bool, fn func(*domain.Session) error) (*domain.Session, error) {
	key := sessionKey(sessionID)
	var result *domain.Session
	txf := func(tx *redis.Tx) error {
		session, err := s.read(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			if !create {
				return ErrSessionNotFound
			}
			session = domain.NewSession(sessionID, s.now())
		}
		if err := fn(session); err != nil {
			return err
		}
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to encode session %s: %w", sessionID, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = session
		return nil
	}

	for attempt := 0; attempt < 5; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("session %s: too much contention", sessionID)
}

// GetOrCreateSession gets an existing session or creates a new one.
func (s *RedisStore) GetOrCreateSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.read(ctx, s.rdb, sessionID)
	if err != nil || session != nil {
		return session, err
	}
	return s.update(ctx, sessionID, true, func(*domain.Session) error { return nil })
}

// GetSession retrieves a session by ID. It returns nil, nil when absent.
func (s *RedisStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.read(ctx, s.rdb, sessionID)
}

// DeleteSession removes a session.
func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

// SetContext stores a context value on a session.
func (s *RedisStore) SetContext(ctx context.Context, sessionID, key string, value any) error {
	_, err := s.update(ctx, sessionID, false, func(session *domain.Session) error {
		session.Context[key] = value
		session.UpdatedAt = s.now()
		return nil
	})
	return err
}

// AppendMessage appends a message to the session history.
func (s *RedisStore) AppendMessage(ctx context.Context, sessionID string, message *domain.Message) error {
	var msg domain.Message
	_, err := s.update(ctx, sessionID, false, func(session *domain.Session) error {
		msg = *message
		msg.SessionID = sessionID
		msg.CreatedAt = session.NextTimestamp(msg.CreatedAt)
		session.Messages = append(session.Messages, msg)
		session.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return err
	}
	*message = msg
	return nil
}

// GetMessages returns the most recent limit messages in chronological order.
func (s *RedisStore) GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.Message, error) {
	session, err := s.read(ctx, s.rdb, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return []domain.Message{}, nil
	}
	return tail(session.Messages, limit), nil
}

// PurgeExpired is a no-op: Redis evicts keys when their TTL lapses.
func (s *RedisStore) PurgeExpired(ctx context.Context, olderThan time.Time) (int, error) {
	return 0, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
