package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// OpenOptions selects and configures a session backend.
type OpenOptions struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
	DatabaseURL   string
	RedisURL      string
}

// Open creates the session store named by opts.Backend.
func Open(ctx context.Context, opts OpenOptions) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "memory", "":
		return NewMemoryStore(opts.TTL, opts.SweepInterval), nil
	case "sqlite":
		return NewSQLiteStore(opts.DatabaseURL)
	case "redis":
		rdb, err := NewRedisClient(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, opts.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", opts.Backend)
	}
}
