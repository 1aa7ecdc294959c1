package activity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/kinematics"
)

// AdjacentMove walks the unit to the center of an adjacent cube, one tick at
// a time. Run under a TargetMove it is a sub-step: the parent drains stamina
// and the two mirror each other's sprint state.
type AdjacentMove struct {
	core
	movement

	next geo.Cube
}

// NewAdjacentMove prepares a step from the unit's cube by offset. Each offset
// component must be in {-1,0,1}, and the step must not cut a corner.
func NewAdjacentMove(u Unit, offset geo.Cube) (*AdjacentMove, error) {
	from := geo.CubeOf(u.Position())
	return newAdjacentMove(u, from, from.Add(offset))
}

func newAdjacentMove(u Unit, from, to geo.Cube) (*AdjacentMove, error) {
	if !geo.IsValidStep(u.Terrain(), from, to) {
		return nil, fmt.Errorf("step %s -> %s: %w", from, to, ErrInvalidPosition)
	}
	return &AdjacentMove{next: to}, nil
}

func (a *AdjacentMove) Kind() Kind     { return KindAdjacentMove }
func (a *AdjacentMove) IsAbleTo() bool { return true }

// NextPosition returns the cube the step ends in.
func (a *AdjacentMove) NextPosition() geo.Cube { return a.next }

func (a *AdjacentMove) anchor() geo.Cube { return a.next }

func (a *AdjacentMove) parent() *TargetMove {
	p, _ := a.ctl.parentOf(a.handle).(*TargetMove)
	return p
}

func (a *AdjacentMove) setSprinting(on bool) {
	a.sprinting = on
	if p := a.parent(); p != nil {
		p.sprinting = on
	}
}

func (a *AdjacentMove) stopActivity() {
	a.sprinting = false
}

func (a *AdjacentMove) interruptActivity() {
	a.setSprinting(false)
	a.currentSpeed = 0
}

func (a *AdjacentMove) advanceActivity(dt float64) {
	u := a.unit
	if a.parent() == nil {
		tickSprint(a, dt)
	}

	pos := u.Position()
	target := a.next.Center()
	if pos == target {
		a.requestFinish()
		return
	}

	d := target.Sub(pos)
	a.currentSpeed = kinematics.Speed(u.Body(), d, a.sprinting)
	np := pos.Add(d.Normalize().Mul(a.currentSpeed * dt))
	np = clampToTarget(pos, np, target)

	u.SetPosition(np)
	if o, ok := facing(d.X(), d.Y()); ok {
		u.SetOrientation(o)
	}

	if np == target {
		a.requestFinish()
	}
}

// clampToTarget snaps every axis of np that reached or passed target's value
// on that axis, as seen from pos, to exactly target's value.
func clampToTarget(pos, np, target mgl64.Vec3) mgl64.Vec3 {
	for i := range 3 {
		switch {
		case pos[i] <= target[i] && np[i] >= target[i]:
			np[i] = target[i]
		case pos[i] >= target[i] && np[i] <= target[i]:
			np[i] = target[i]
		}
	}
	return np
}

// Falling or a new movement replaces the step; anything else suspends it.
func (a *AdjacentMove) shouldStopFor(next Activity) bool {
	return next.Kind() == KindFall || next.Kind().IsMovement()
}

func (a *AdjacentMove) shouldInterruptFor(next Activity) bool {
	return !next.Kind().IsMovement() && next.Kind() != KindFall
}
