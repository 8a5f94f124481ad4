package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSessionExpiryMonitor purges idle sessions until ctx is cancelled.
func (s *Service) RunSessionExpiryMonitor(ctx context.Context) {
	interval := s.config.SessionSweepInterval
	if interval <= 0 || s.config.SessionTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepExpiredSessions(ctx)
		}
	}
}

func (s *Service) sweepExpiredSessions(ctx context.Context) int {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	purged, err := s.store.PurgeExpired(sweepCtx, s.now().Add(-s.config.SessionTTL))
	if err != nil {
		s.logger.Warn("session expiry sweep failed", zap.Error(err))
		return 0
	}
	if purged > 0 {
		s.metrics.RecordPurged(purged)
		s.logger.Info("purged expired sessions", zap.Int("count", purged))
	}
	return purged
}
