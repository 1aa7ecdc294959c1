package activity

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/cubesim/internal/geo"
)

// TargetMove walks a planned route to a distant cube. It does not move the
// unit itself: each tick it either advances the current step or spawns an
// AdjacentMove for the next cube of the path.
type TargetMove struct {
	core
	movement

	dest  geo.Cube
	path  []geo.Cube
	child Handle
}

// NewTargetMove plans a route from the unit's cube to dest.
// It fails with ErrInvalidPosition or ErrPathNotFound.
func NewTargetMove(u Unit, dest geo.Cube) (*TargetMove, error) {
	from := geo.CubeOf(u.Position())
	path, err := geo.FindPath(u.Terrain(), from, dest)
	if err != nil {
		return nil, fmt.Errorf("move to %s: %w", dest, err)
	}
	return &TargetMove{dest: dest, path: path}, nil
}

// NewRandomTargetMove picks a random in-bounds destination. If it cannot be
// reached, a cube picked uniformly among those reachable from the unit is used
// instead. It fails with ErrPathNotFound only when the unit cannot move at all.
func NewRandomTargetMove(u Unit) (*TargetMove, error) {
	t := u.Terrain()
	rng := u.Rand()
	lo, hi := t.MinBounds(), t.MaxBounds()
	dest := geo.Cube{
		X: lo.X + rng.Int32N(hi.X-lo.X+1),
		Y: lo.Y + rng.Int32N(hi.Y-lo.Y+1),
		Z: lo.Z + rng.Int32N(hi.Z-lo.Z+1),
	}

	from := geo.CubeOf(u.Position())
	if dest != from {
		if tm, err := NewTargetMove(u, dest); err == nil {
			return tm, nil
		}
	}

	if !t.IsValidPosition(from) {
		return nil, fmt.Errorf("random move from %s: %w", from, ErrInvalidPosition)
	}
	dest, ok := geo.Explore(t, from, nil).Pick(rng)
	if !ok {
		return nil, fmt.Errorf("random move from %s: nothing reachable: %w", from, ErrPathNotFound)
	}
	return NewTargetMove(u, dest)
}

func (m *TargetMove) Kind() Kind     { return KindTargetMove }
func (m *TargetMove) IsAbleTo() bool { return true }

// Destination returns the cube the route ends in.
func (m *TargetMove) Destination() geo.Cube { return m.dest }

// Remaining returns the cubes still to be walked, excluding the current step.
func (m *TargetMove) Remaining() []geo.Cube { return m.path }

// Step returns the running sub-step, or nil between steps.
func (m *TargetMove) Step() *AdjacentMove {
	if m.ctl == nil {
		return nil
	}
	s, _ := m.ctl.lookup(m.child).(*AdjacentMove)
	return s
}

func (m *TargetMove) anchor() geo.Cube {
	if s := m.Step(); s != nil {
		return s.next
	}
	return m.cube()
}

func (m *TargetMove) setSprinting(on bool) {
	m.sprinting = on
	if s := m.Step(); s != nil {
		s.sprinting = on
	}
}

func (m *TargetMove) stopActivity() {
	if s := m.Step(); s != nil {
		m.ctl.finish(m.child, ErrStopped)
	}
	m.child = 0
	m.sprinting = false
	m.currentSpeed = 0
}

func (m *TargetMove) interruptActivity() {
	m.setSprinting(false)
	m.currentSpeed = 0
	if s := m.Step(); s != nil {
		interrupt(s)
	}
}

func (m *TargetMove) resumeActivity() {
	if s := m.Step(); s != nil {
		resume(s)
	}
}

func (m *TargetMove) advanceActivity(dt float64) {
	tickSprint(m, dt)

	step := m.Step()
	if step == nil {
		if len(m.path) == 0 {
			m.requestFinish()
			return
		}
		var err error
		if step, err = m.spawnStep(); err != nil {
			m.abort(err)
			return
		}
		if step == nil {
			m.requestFinish()
			return
		}
	}

	advance(step, dt)
	m.currentSpeed = step.currentSpeed
	if m.Step() == nil && len(m.path) == 0 {
		m.requestFinish()
	}
}

// spawnStep starts an AdjacentMove to the next cube of the path. If the
// terrain changed and the step is no longer valid, the route is planned again
// from where the unit stands.
func (m *TargetMove) spawnStep() (*AdjacentMove, error) {
	from := m.cube()
	step, err := newAdjacentMove(m.unit, from, m.path[0])
	if err != nil {
		path, perr := geo.FindPath(m.unit.Terrain(), from, m.dest)
		if perr != nil {
			return nil, fmt.Errorf("replan to %s: %w", m.dest, perr)
		}
		if IsDebugEnabled() {
			slog.Debug("route replanned",
				"unit", m.unit.Name(),
				"dest", m.dest,
				"steps", len(path))
		}
		if len(path) == 0 {
			m.path = nil
			return nil, nil
		}
		m.path = path
		if step, err = newAdjacentMove(m.unit, from, m.path[0]); err != nil {
			return nil, err
		}
	}
	m.path = m.path[1:]
	step.sprinting = m.sprinting
	m.child = m.ctl.startChild(m, step)
	return step, nil
}

func (m *TargetMove) shouldStopFor(next Activity) bool {
	return next.Kind() == KindFall || next.Kind().IsMovement()
}

func (m *TargetMove) shouldInterruptFor(next Activity) bool {
	return !next.Kind().IsMovement() && next.Kind() != KindFall
}
