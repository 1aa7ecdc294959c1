package world

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/cubesim/internal/activity"
)

// TickManager advances a World in real time.
// Each tick the wall time elapsed since the previous one is simulated, split
// into steps no longer than the world's maxDt.
type TickManager struct {
	world    *World
	interval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
	ticks    atomic.Uint64
}

// NewTickManager creates new tick manager for w.
func NewTickManager(w *World, interval time.Duration) *TickManager {
	return &TickManager{
		world:    w,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start starts the tick loop (blocks until context is canceled or Stop is called)
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping", "ticks", m.Ticks())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped", "ticks", m.Ticks())
			return nil

		case now := <-ticker.C:
			m.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Step simulates elapsed seconds in world steps of at most maxDt.
func (m *TickManager) Step(elapsed float64) {
	for elapsed > 0 {
		dt := min(elapsed, m.world.maxDt)
		if err := m.world.AdvanceTime(dt); err != nil {
			slog.Error("world step failed", "dt", dt, "err", err)
			return
		}
		elapsed -= dt
	}
	n := m.ticks.Add(1)

	if activity.IsDebugEnabled() {
		slog.Debug("tick completed",
			"tick", n,
			"units", m.world.UnitCount())
	}
}

// Ticks returns the number of completed ticks.
func (m *TickManager) Ticks() uint64 {
	return m.ticks.Load()
}
