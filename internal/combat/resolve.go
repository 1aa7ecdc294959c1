// Package combat resolves the defender's response to an attack.
package combat

import (
	"math/rand/v2"

	"github.com/udisondev/cubesim/internal/kinematics"
)

// Outcome is the defender's response to a blow.
type Outcome uint8

const (
	Hit     Outcome = iota // damage taken
	Dodged                 // defender jumped to an adjacent cube
	Blocked                // blow parried, no damage
)

// String returns human-readable outcome name
func (o Outcome) String() string {
	switch o {
	case Hit:
		return "HIT"
	case Dodged:
		return "DODGED"
	case Blocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// Formula coefficients.
const (
	DodgeFactor  = 0.20
	BlockFactor  = 0.25
	DamageFactor = 10.0 // attacker strength per hitpoint of damage
)

// Result describes a resolved blow.
type Result struct {
	Outcome Outcome
	Damage  float64 // hitpoints lost, zero unless Outcome is Hit
}

// DodgeChance returns the probability that the defender dodges.
// The value is not capped; anything >= 1 always dodges.
func DodgeChance(attacker, defender kinematics.Body) float64 {
	return DodgeFactor * float64(defender.Agility) / float64(attacker.Agility)
}

// BlockChance returns the probability that an undodged blow is blocked.
func BlockChance(attacker, defender kinematics.Body) float64 {
	return BlockFactor * float64(defender.Strength+defender.Agility) /
		float64(attacker.Strength+attacker.Agility)
}

// Damage returns the hitpoints a landed blow removes.
func Damage(attacker kinematics.Body) float64 {
	return float64(attacker.Strength) / DamageFactor
}

// Resolve rolls dodge first, then block, and otherwise lands the blow.
func Resolve(rng *rand.Rand, attacker, defender kinematics.Body) Result {
	if rng.Float64() < DodgeChance(attacker, defender) {
		return Result{Outcome: Dodged}
	}
	if rng.Float64() < BlockChance(attacker, defender) {
		return Result{Outcome: Blocked}
	}
	return Result{Outcome: Hit, Damage: Damage(attacker)}
}
