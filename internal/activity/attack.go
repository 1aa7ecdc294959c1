package activity

import (
	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/kinematics"
)

// Attack strikes an adjacent unit. Both units turn to face each other when
// the attack starts; once kinematics.AttackDuration has elapsed the defender
// resolves the blow and the attack completes.
type Attack struct {
	core

	defender Unit
}

// NewAttack creates an attack on defender.
func NewAttack(defender Unit) *Attack {
	return &Attack{defender: defender}
}

func (a *Attack) Kind() Kind { return KindAttack }

// Defender returns the attacked unit.
func (a *Attack) Defender() Unit { return a.defender }

// IsAbleTo reports false when attacking oneself, when already attacking,
// during the initial rest, or when the defender is not in reach.
func (a *Attack) IsAbleTo() bool {
	if a.defender == nil || a.unit == nil || a.defender.ID() == a.unit.ID() {
		return false
	}
	if a.ctl.IsAttacking() || a.ctl.InInitialRest() {
		return false
	}
	if a.defender.Hitpoints() <= 0 {
		return false
	}
	from := geo.CubeOf(a.unit.Position())
	to := geo.CubeOf(a.defender.Position())
	return from == to || from.IsAdjacent(to)
}

func (a *Attack) startActivity() {
	d := a.defender.Position().Sub(a.unit.Position())
	if o, ok := facing(d.X(), d.Y()); ok {
		a.unit.SetOrientation(o)
	}
	if o, ok := facing(-d.X(), -d.Y()); ok {
		a.defender.SetOrientation(o)
	}
}

func (a *Attack) advanceActivity(dt float64) {
	if a.progress+dt >= kinematics.AttackDuration {
		a.defender.Defend(a.unit)
		a.requestFinish()
	}
}

// Only a fall cuts an attack short.
func (a *Attack) shouldStopFor(next Activity) bool {
	return next.Kind() == KindFall
}
