// Package kinematics holds the pure movement, regeneration and timing
// formulas shared by unit activities.
package kinematics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Movement constants.
const (
	SprintFactor  = 2.0 // sprinting speed / walking speed
	DescendFactor = 1.2 // walking speed multiplier when going down
	ClimbFactor   = 0.5 // walking speed multiplier when going up

	// VerticalThreshold is the normalized vertical component beyond which a
	// direction counts as climbing or descending. Any single-cube step with a
	// vertical component exceeds it (1/sqrt(3) ≈ 0.577).
	VerticalThreshold = 0.5

	SprintDrainInterval = 0.1 // seconds per stamina point while sprinting
	SprintDrainAmount   = 1.0

	FallSpeed          = 3.0 // cubes per second
	FallDamagePerLevel = 10.0
)

// Activity timing constants.
const (
	RestInterval   = 0.2 // seconds per recovery quantum
	WorkBase       = 500.0
	AttackDuration = 1.0
)

// Body is the set of unit attributes that drive the formulas. All values are
// expected to be positive.
type Body struct {
	Strength  int32
	Agility   int32
	Weight    int32
	Toughness int32
}

// BaseSpeed returns the flat-ground walking speed in cubes per second.
func BaseSpeed(b Body) float64 {
	return 1.5 * float64(b.Strength+b.Agility) / (2 * float64(b.Weight))
}

// WalkingSpeed returns the walking speed along dir. dir need not be
// normalized; a zero vector yields the base speed.
func WalkingSpeed(b Body, dir mgl64.Vec3) float64 {
	base := BaseSpeed(b)
	l := dir.Len()
	if l == 0 {
		return base
	}
	switch vz := dir.Z() / l; {
	case vz < -VerticalThreshold:
		return base * DescendFactor
	case vz > VerticalThreshold:
		return base * ClimbFactor
	default:
		return base
	}
}

// SprintingSpeed returns twice the walking speed along dir.
func SprintingSpeed(b Body, dir mgl64.Vec3) float64 {
	return SprintFactor * WalkingSpeed(b, dir)
}

// Speed returns the walking or sprinting speed along dir.
func Speed(b Body, dir mgl64.Vec3, sprinting bool) float64 {
	if sprinting {
		return SprintingSpeed(b, dir)
	}
	return WalkingSpeed(b, dir)
}

// HitpointRegen returns hitpoints recovered per RestInterval.
func HitpointRegen(toughness int32) float64 {
	return float64(toughness) / 200
}

// StaminaRegen returns stamina recovered per RestInterval.
func StaminaRegen(toughness int32) float64 {
	return float64(toughness) / 100
}

// MaxPoints returns the maximum hitpoints (and stamina) of a body.
func MaxPoints(b Body) float64 {
	return math.Ceil(200 * float64(b.Weight) / 100 * float64(b.Toughness) / 100)
}

// WorkDuration returns the time needed to finish one work order.
func WorkDuration(strength int32) float64 {
	return WorkBase / float64(strength)
}

// FallDamage returns the hitpoints lost after falling the given number of
// levels. Negative level counts yield zero.
func FallDamage(levels int32) float64 {
	if levels <= 0 {
		return 0
	}
	return FallDamagePerLevel * float64(levels)
}

// Intervals returns how many whole intervals complete during a tick of
// length dt that starts at accumulated progress p:
//
//	floor(((p mod interval) + dt) / interval)
//
// It is evaluated as floor((p+dt)/interval) - floor(p/interval), which is the
// same count but telescopes exactly when p is accumulated as p += dt: summed
// over consecutive ticks it never skips or double-counts an interval, whatever
// the tick lengths. Both quotients are nudged by intervalEpsilon so that a
// boundary reached through accumulated rounding (ten 0.1s ticks summing to
// 0.9999999999999999) still counts as reached.
func Intervals(p, dt, interval float64) int {
	if interval <= 0 || dt <= 0 {
		return 0
	}
	return int(completed(p+dt, interval) - completed(p, interval))
}

const intervalEpsilon = 1e-9

func completed(p, interval float64) float64 {
	return math.Floor(p/interval + intervalEpsilon)
}
