package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/example/booking-window/internal/bookingwindow"
)

// Scheduler recomputes the booking window as the clock advances and reports
// each window that differs from the previous one.
type Scheduler struct {
	Config   func() bookingwindow.Config
	Clock    func() time.Time
	Interval time.Duration
	OnChange func(now time.Time, w bookingwindow.Window)

	mu   sync.Mutex
	last *bookingwindow.Window
}

func (s *Scheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	// kick immediately
	s.Tick(s.now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Tick(s.now())
		}
	}
}

// Tick computes the window at now and reports whether it changed.
func (s *Scheduler) Tick(now time.Time) bool {
	w := bookingwindow.Compute(s.Config(), now)

	s.mu.Lock()
	changed := s.last == nil || !s.last.Earliest.Equal(w.Earliest) || !s.last.Latest.Equal(w.Latest)
	if changed {
		s.last = &w
	}
	s.mu.Unlock()

	if changed && s.OnChange != nil {
		s.OnChange(now, w)
	}
	return changed
}

func (s *Scheduler) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
