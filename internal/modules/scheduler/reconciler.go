package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunReconciler drains the pending queue opportunistically: once at
// startup and then on every tick until ctx is cancelled. It never blocks
// booking creation or viewing; all failures are logged only.
func (s *Service) RunReconciler(ctx context.Context, interval time.Duration) {
	s.log.Info("pending-booking reconciler started", zap.Duration("interval", interval))

	s.ReconcilePending(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("pending-booking reconciler stopped")
			return
		case <-ticker.C:
			s.ReconcilePending(ctx)
		}
	}
}
