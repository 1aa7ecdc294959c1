package activity

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/kinematics"
)

// Unit is the state an activity reads and mutates. Activities never keep a
// copy of it; every tick they read the current values and submit changes.
type Unit interface {
	ID() uint32
	Name() string

	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	// Orientation is in radians, within [0, 2π).
	Orientation() float64
	SetOrientation(o float64)

	Stamina() float64
	MaxStamina() float64
	SetStamina(v float64)

	Hitpoints() float64
	MaxHitpoints() float64
	SetHitpoints(v float64)
	RemoveHitpoints(n float64)

	Body() kinematics.Body

	// Terrain is the world the unit lives in.
	Terrain() geo.Terrain
	// Rand is the unit's source of randomness. Tests inject seeded sources.
	Rand() *rand.Rand
	// DefaultBehavior reports whether the unit picks its own activities when idle.
	DefaultBehavior() bool

	// Defend resolves an attack by attacker: dodge, block or take damage.
	Defend(attacker Unit)
}
