package activity

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/cubesim/internal/geo"
)

func TestEnableDebugLogging(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	tests := []struct {
		name     string
		enabled  bool
		expected bool
	}{
		{"enable", true, true},
		{"disable", false, false},
		{"enable again", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnableDebugLogging(tt.enabled)
			assert.Equal(t, tt.expected, IsDebugEnabled())
		})
	}
}

func TestDebugLogging_LifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	EnableDebugLogging(true)
	t.Cleanup(func() {
		slog.SetDefault(prev)
		EnableDebugLogging(false)
	})

	terrain := newTestTerrain(4, 4, 4)
	terrain.solid[geo.Cube{X: 3, Y: 3, Z: 0}] = true
	u := newTestUnit(t, 1, terrain, geo.Cube{X: 3, Y: 3, Z: 1})
	u.ctl.Advance(0.1)
	delete(terrain.solid, geo.Cube{X: 3, Y: 3, Z: 0})
	advanceUntil(t, u, 0.1, 100, func() bool { return len(u.finished) > 0 })

	out := buf.String()
	assert.Contains(t, out, "activity started")
	assert.Contains(t, out, "kind=FALL")
	assert.Contains(t, out, "unit landed")
	assert.Contains(t, out, "activity finished")
}

func BenchmarkIsDebugEnabled(b *testing.B) {
	EnableDebugLogging(false)
	for b.Loop() {
		_ = IsDebugEnabled()
	}
}
