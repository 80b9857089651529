package notifier

import (
	"context"
	"time"

	"github.com/syndicma/syndic-api/pkg/logger"
	"github.com/syndicma/syndic-api/pkg/prom"
)

// Trigger flips due pending notifications and reports which ids fired.
type Trigger interface {
	TriggerDue(ctx context.Context, now time.Time) ([]int64, error)
}

// Scanner drives the notification lifecycle: on a fixed cadence it
// promotes every pending notification whose trigger date has passed to
// triggered. Scans are idempotent, so overlapping deployments or a
// second scanner instance cause no double firing.
type Scanner struct {
	trigger  Trigger
	interval time.Duration
	now      func() time.Time
	done     chan struct{}
}

func NewScanner(trigger Trigger, interval time.Duration) *Scanner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scanner{
		trigger:  trigger,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Run scans immediately, then on every tick until the context is
// cancelled. It blocks; run it in its own goroutine.
func (s *Scanner) Run(ctx context.Context) {
	defer close(s.done)

	logger.Info("[notifier] scanner started", "interval", s.interval.String())

	s.scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("[notifier] scanner stopped")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

// Done is closed once Run has returned, for shutdown sequencing.
func (s *Scanner) Done() <-chan struct{} {
	return s.done
}

func (s *Scanner) scan(ctx context.Context) {
	ids, err := s.trigger.TriggerDue(ctx, s.now())
	if err != nil {
		prom.AddNotificationScanError()
		logger.Error("[notifier] scan failed", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	prom.AddNotificationsTriggered(float64(len(ids)))
	logger.Info("[notifier] notifications triggered", "count", len(ids), "ids", ids)
}
