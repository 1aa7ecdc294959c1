package kinematics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

var testBody = Body{Strength: 50, Agility: 50, Weight: 50, Toughness: 50}

func TestBaseSpeed(t *testing.T) {
	assert.InDelta(t, 1.5, BaseSpeed(testBody), 1e-12)
	assert.InDelta(t, 0.75, BaseSpeed(Body{Strength: 25, Agility: 25, Weight: 50}), 1e-12)
}

func TestWalkingSpeed(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl64.Vec3
		want float64
	}{
		{"flat", mgl64.Vec3{1, 0, 0}, 1.5},
		{"flat diagonal", mgl64.Vec3{1, 1, 0}, 1.5},
		{"descending", mgl64.Vec3{0, 0, -1}, 1.8},
		{"descending diagonal", mgl64.Vec3{1, 1, -1}, 1.8},
		{"climbing", mgl64.Vec3{1, 0, 1}, 0.75},
		{"zero", mgl64.Vec3{}, 1.5},
		{"shallow slope", mgl64.Vec3{1, 0, 0.2}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WalkingSpeed(testBody, tt.dir), 1e-12)
			assert.InDelta(t, 2*tt.want, SprintingSpeed(testBody, tt.dir), 1e-12)
			assert.InDelta(t, tt.want, Speed(testBody, tt.dir, false), 1e-12)
			assert.InDelta(t, 2*tt.want, Speed(testBody, tt.dir, true), 1e-12)
		})
	}
}

func TestRegeneration(t *testing.T) {
	assert.InDelta(t, 0.25, HitpointRegen(50), 1e-12)
	assert.InDelta(t, 0.5, StaminaRegen(50), 1e-12)
	assert.InDelta(t, 50.0, MaxPoints(testBody), 1e-12)
	assert.InDelta(t, 1.0, MaxPoints(Body{Weight: 1, Toughness: 1}), 1e-12)
}

func TestWorkDuration(t *testing.T) {
	assert.InDelta(t, 10.0, WorkDuration(50), 1e-12)
	assert.InDelta(t, 2.5, WorkDuration(200), 1e-12)
}

func TestFallDamage(t *testing.T) {
	assert.Equal(t, 50.0, FallDamage(5))
	assert.Equal(t, 0.0, FallDamage(0))
	assert.Equal(t, 0.0, FallDamage(-3))
}

func TestIntervals(t *testing.T) {
	tests := []struct {
		name         string
		p, dt, delta float64
		want         int
	}{
		{"first half interval", 0, 0.05, 0.1, 0},
		{"crosses boundary", 0.08, 0.05, 0.1, 1},
		{"exact boundary", 0.05, 0.05, 0.1, 1},
		{"spans several", 0.03, 0.35, 0.1, 3},
		{"large progress", 12.34, 0.07, 0.1, 1},
		{"zero dt", 0.09, 0, 0.1, 0},
		{"inexact quotient", 0.5, 0.1, 0.1, 1},
		{"accumulated rounding", 0.8999999999999999, 0.1, 0.1, 1},
		{"zero interval", 0.09, 0.1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intervals(tt.p, tt.dt, tt.delta))
		})
	}
}

func TestIntervalsAccumulateWithoutSkipping(t *testing.T) {
	dts := []float64{0.013, 0.2, 0.05, 0.087, 0.11, 0.04, 0.19, 0.001, 0.099}

	p, total := 0.0, 0
	for range 20 {
		for _, dt := range dts {
			total += Intervals(p, dt, SprintDrainInterval)
			p += dt
		}
	}
	// 20 rounds of 0.79s.
	assert.Equal(t, 158, total)
	assert.InDelta(t, 15.8, p, 1e-9)
}

func TestIntervalsDecimalTicks(t *testing.T) {
	for _, dt := range []float64{0.1, 0.05, 0.2, 0.01} {
		p, total := 0.0, 0
		for p < 1-dt/2 {
			total += Intervals(p, dt, SprintDrainInterval)
			p += dt
		}
		assert.Equal(t, 10, total, "dt=%v", dt)
	}
}
