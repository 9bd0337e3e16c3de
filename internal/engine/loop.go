package engine

import (
	"log/slog"
	"time"
)

// Loop drives a session with fixed-interval frames. Each frame advances
// the session by the measured wall time since the previous frame, so
// simulation speed stays correct even when frames run long.
type Loop struct {
	session  *Session
	interval time.Duration
	stop     chan struct{}
}

// NewLoop creates a frame loop for a session.
func NewLoop(s *Session, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return &Loop{
		session:  s,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Run starts the frame loop. Blocks until Stop is called.
func (l *Loop) Run() {
	slog.Info("frame loop started", "interval", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := time.Now()
	for {
		select {
		case <-l.stop:
			slog.Info("frame loop stopped", "clock", l.session.World().Clock())
			return
		case now := <-ticker.C:
			dt := now.Sub(prev).Seconds()
			prev = now
			l.session.Update(dt)
		}
	}
}

// Stop halts the frame loop.
func (l *Loop) Stop() {
	close(l.stop)
}
