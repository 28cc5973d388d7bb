package service

import (
	"context"
	"time"
)

// StartRefreshScheduler reloads the lists every interval until ctx is
// cancelled. It blocks, so it should be launched in a separate goroutine.
func (s *Service) StartRefreshScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Infof("Refresh scheduler started (every %s)", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Refresh scheduler stopped")
			return
		case <-ticker.C:
			// Load logs its own failures.
			_ = s.Load(ctx)
		}
	}
}
