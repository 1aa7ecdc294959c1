package activity

import (
	"fmt"
	"math"

	"github.com/udisondev/cubesim/internal/geo"
)

// Activity is the lifecycle contract shared by every behavior a unit can run.
//
// The set of implementations is closed: Idle, AdjacentMove, TargetMove, Fall,
// Work, Rest and Attack. Activities are driven through a Controller, which
// owns start/stop/interrupt and advances the active one once per tick.
type Activity interface {
	Kind() Kind
	// Progress is the simulated time elapsed since the activity last started.
	Progress() float64
	IsActive() bool
	// IsDefault reports whether the activity was picked by default behavior.
	IsDefault() bool
	// IsAbleTo reports whether the unit's current state allows the activity.
	IsAbleTo() bool

	state() *core

	startActivity()
	stopActivity()
	interruptActivity()
	resumeActivity()
	advanceActivity(dt float64)

	// shouldStopFor reports whether this (current) activity is discarded in
	// favor of next.
	shouldStopFor(next Activity) bool
	// shouldInterruptFor reports whether this (current) activity is suspended
	// while next runs, and resumed afterwards.
	shouldInterruptFor(next Activity) bool
}

// core is the state embedded in every activity.
type core struct {
	unit   Unit
	ctl    *Controller
	handle Handle

	progress  float64
	isDefault bool
	isActive  bool
}

func (c *core) state() *core { return c }
func (c *core) Progress() float64 { return c.progress }
func (c *core) IsActive() bool { return c.isActive }
func (c *core) IsDefault() bool { return c.isDefault }
func (c *core) Handle() Handle { return c.handle }
func (c *core) interruptActivity() {}
func (c *core) resumeActivity() {}
func (c *core) stopActivity() {}
func (c *core) startActivity() {}
func (c *core) advanceActivity(float64) {}

func (c *core) shouldInterruptFor(Activity) bool { return false }

// requestFinish signals that the activity completed.
func (c *core) requestFinish() {
	c.ctl.finish(c.handle, nil)
}

// abort signals that the activity cannot continue.
func (c *core) abort(err error) {
	c.ctl.finish(c.handle, err)
}

// cube returns the cube the unit currently occupies.
func (c *core) cube() geo.Cube {
	return geo.CubeOf(c.unit.Position())
}

// start begins a. Unless a is started by default behavior, it fails with
// ErrNotAble when the unit cannot perform it.
func start(a Activity, isDefault bool) error {
	if !isDefault && !a.IsAbleTo() {
		return fmt.Errorf("start %s: %w", a.Kind(), ErrNotAble)
	}
	s := a.state()
	s.progress = 0
	s.isDefault = isDefault
	s.isActive = true
	a.startActivity()
	return nil
}

// stop ends a for good.
func stop(a Activity) {
	a.stopActivity()
	s := a.state()
	s.progress = 0
	s.isActive = false
}

// interrupt suspends a, keeping its progress so it can be resumed.
func interrupt(a Activity) {
	a.interruptActivity()
	a.state().isActive = false
}

// resume reactivates an interrupted activity.
func resume(a Activity) {
	a.state().isActive = true
	a.resumeActivity()
}

// advance runs one tick of a and then accounts dt to its progress.
func advance(a Activity, dt float64) {
	a.advanceActivity(dt)
	if s := a.state(); s.isActive {
		s.progress += dt
	}
}

// facing returns the orientation, in [0, 2π), of a planar direction.
// The boolean is false when the direction has no planar component.
func facing(dx, dy float64) (float64, bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}
	o := math.Atan2(dy, dx)
	if o < 0 {
		o += 2 * math.Pi
	}
	if o >= 2*math.Pi {
		o = 0
	}
	return o, true
}
