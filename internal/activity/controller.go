package activity

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/cubesim/internal/geo"
)

// Handle identifies an activity in its controller's table. The zero handle
// never refers to an activity.
type Handle uint32

// FinishFunc is notified whenever a top-level activity ends. err is nil when
// the activity completed, ErrStopped when it was preempted, or the reason it
// aborted.
type FinishFunc func(kind Kind, err error)

// slot is an entry of the activity table.
type slot struct {
	act    Activity
	parent Handle // owning activity of a sub-step, zero for top-level
}

// Controller runs the activities of one unit. At most one top-level activity
// is active at a time; a TargetMove registers its per-step AdjacentMove as a
// child slot but stays the active one itself.
//
// Controller is not safe for concurrent use. The world advances units from a
// single goroutine.
type Controller struct {
	unit Unit

	slots      map[Handle]*slot
	nextHandle Handle
	current    Handle
	suspended  Handle

	onFinish FinishFunc
}

// NewController creates a controller for u. The unit starts without an
// activity; the first Advance starts Idle.
func NewController(u Unit) *Controller {
	return &Controller{
		unit:  u,
		slots: make(map[Handle]*slot, 4),
	}
}

// SetFinishFunc sets the activity completion callback.
func (c *Controller) SetFinishFunc(fn FinishFunc) {
	c.onFinish = fn
}

// Current returns the active top-level activity, or nil.
func (c *Controller) Current() Activity {
	return c.lookup(c.current)
}

// Suspended returns the interrupted activity waiting to resume, or nil.
func (c *Controller) Suspended() Activity {
	return c.lookup(c.suspended)
}

// CurrentKind returns the kind of the active activity. A controller without
// one reports KindIdle.
func (c *Controller) CurrentKind() Kind {
	if a := c.Current(); a != nil {
		return a.Kind()
	}
	return KindIdle
}

// IsAttacking reports whether the unit is executing an attack.
func (c *Controller) IsAttacking() bool {
	return c.CurrentKind() == KindAttack
}

// IsFalling reports whether the unit is falling.
func (c *Controller) IsFalling() bool {
	return c.CurrentKind() == KindFall
}

// InInitialRest reports whether the unit is resting and has not yet
// recovered a whole point since it lay down.
func (c *Controller) InInitialRest() bool {
	r, ok := c.Current().(*Rest)
	return ok && r.InInitialRest()
}

// lookup returns the activity registered under h, or nil if h was released.
func (c *Controller) lookup(h Handle) Activity {
	if s, ok := c.slots[h]; ok {
		return s.act
	}
	return nil
}

// parentOf returns the live parent of the activity registered under h.
func (c *Controller) parentOf(h Handle) Activity {
	s, ok := c.slots[h]
	if !ok || s.parent == 0 {
		return nil
	}
	return c.lookup(s.parent)
}

// bind attaches a to this controller's unit so it can inspect unit state.
func (c *Controller) bind(a Activity) {
	st := a.state()
	st.unit = c.unit
	st.ctl = c
}

// register adds a to the table and binds it to this controller.
func (c *Controller) register(a Activity, parent Handle) Handle {
	c.bind(a)
	c.nextHandle++
	h := c.nextHandle
	a.state().handle = h
	c.slots[h] = &slot{act: a, parent: parent}
	return h
}

func (c *Controller) release(h Handle) {
	delete(c.slots, h)
}

// Request asks the unit to switch to a. The current activity decides whether
// it is stopped, suspended, or refuses (ErrBusy). a is rejected with
// ErrNotAble if the unit cannot perform it. A failed request leaves the unit
// in its previous state.
func (c *Controller) Request(a Activity) error {
	return c.request(a, false)
}

func (c *Controller) request(a Activity, isDefault bool) error {
	st := a.state()
	if st.ctl != nil {
		return fmt.Errorf("request %s: activity already used", a.Kind())
	}

	cur := c.Current()
	stopCur, interruptCur := false, false
	if cur != nil {
		stopCur = cur.shouldStopFor(a)
		interruptCur = !stopCur && cur.shouldInterruptFor(a)
		if !stopCur && !interruptCur {
			return fmt.Errorf("request %s while %s: %w", a.Kind(), cur.Kind(), ErrBusy)
		}
	}

	c.bind(a)
	if !isDefault && !a.IsAbleTo() {
		st.unit, st.ctl = nil, nil
		return fmt.Errorf("request %s: %w", a.Kind(), ErrNotAble)
	}

	// A new destination or a fall supersedes any movement waiting to resume.
	if a.Kind().IsMovement() || a.Kind() == KindFall {
		c.dropSuspended()
	}

	switch {
	case stopCur:
		c.stopCurrent(ErrStopped)
	case interruptCur:
		c.dropSuspended()
		interrupt(cur)
		c.suspended = c.current
		c.current = 0
		if IsDebugEnabled() {
			slog.Debug("activity interrupted",
				"unit", c.unit.Name(),
				"kind", cur.Kind(),
				"by", a.Kind())
		}
	}

	h := c.register(a, 0)
	if err := start(a, isDefault); err != nil {
		c.release(h)
		return err
	}
	c.current = h

	if IsDebugEnabled() {
		slog.Debug("activity started",
			"unit", c.unit.Name(),
			"kind", a.Kind(),
			"default", isDefault)
	}
	return nil
}

// startChild registers and starts a sub-step owned by parent. The child does
// not become the current activity.
func (c *Controller) startChild(parent Activity, child Activity) Handle {
	h := c.register(child, parent.state().handle)
	_ = start(child, parent.IsDefault())
	return h
}

// stopCurrent stops the current activity and notifies listeners with reason.
func (c *Controller) stopCurrent(reason error) {
	cur := c.Current()
	if cur == nil {
		return
	}
	h := c.current
	stop(cur)
	c.release(h)
	c.current = 0
	c.notify(cur.Kind(), reason)
}

func (c *Controller) dropSuspended() {
	if s := c.Suspended(); s != nil {
		stop(s)
		c.release(c.suspended)
		c.notify(s.Kind(), ErrStopped)
	}
	c.suspended = 0
}

// finish ends the activity registered under h. A sub-step simply leaves the
// table so its parent moves on; a top-level activity is stopped and replaced
// by the suspended activity if any, or by Idle.
func (c *Controller) finish(h Handle, reason error) {
	s, ok := c.slots[h]
	if !ok {
		return
	}
	if s.parent != 0 {
		stop(s.act)
		c.release(h)
		return
	}
	if h == c.suspended {
		stop(s.act)
		c.release(h)
		c.suspended = 0
		c.notify(s.act.Kind(), reason)
		return
	}
	if h != c.current {
		return
	}

	c.stopCurrent(reason)

	if IsDebugEnabled() {
		slog.Debug("activity finished",
			"unit", c.unit.Name(),
			"kind", s.act.Kind(),
			"err", reason)
	}

	if sus := c.Suspended(); sus != nil {
		c.current = c.suspended
		c.suspended = 0
		resume(sus)
		return
	}
	c.startIdle()
}

func (c *Controller) startIdle() {
	idle := NewIdle()
	h := c.register(idle, 0)
	_ = start(idle, c.unit.DefaultBehavior())
	c.current = h
}

func (c *Controller) notify(kind Kind, err error) {
	if kind != KindIdle && c.onFinish != nil {
		c.onFinish(kind, err)
	}
}

// Advance runs one tick of length dt. It starts a fall if the ground under
// the unit is gone, then advances the active activity exactly once.
func (c *Controller) Advance(dt float64) {
	if c.Current() == nil {
		c.startIdle()
	}

	if !c.IsFalling() && c.shouldFall() {
		c.startFall()
	}

	advance(c.Current(), dt)
}

// shouldFall reports whether the cube the unit stands on, or is stepping
// into, no longer supports it.
func (c *Controller) shouldFall() bool {
	t := c.unit.Terrain()
	anchor := geo.CubeOf(c.unit.Position())
	if m, ok := c.Current().(interface{ anchor() geo.Cube }); ok {
		anchor = m.anchor()
	}
	return geo.InBounds(t, anchor) && t.IsPassable(anchor) && !t.IsValidPosition(anchor)
}

func (c *Controller) startFall() {
	if err := c.Request(NewFall()); err != nil {
		slog.Warn("fall rejected", "unit", c.unit.Name(), "err", err)
	}
}

// Displaced tells the controller the unit was moved by an outside force.
// A movement in progress cannot continue from the new position and is
// aborted with ErrDisplaced.
func (c *Controller) Displaced() {
	if s := c.Suspended(); s != nil && s.Kind().IsMovement() {
		c.finish(c.suspended, ErrDisplaced)
	}
	if cur := c.Current(); cur != nil && cur.Kind().IsMovement() {
		c.finish(c.current, ErrDisplaced)
	}
}

// SetSprinting turns sprinting on or off for the current movement.
func (c *Controller) SetSprinting(on bool) error {
	m, ok := c.Current().(mover)
	if !ok || !m.Kind().IsMovement() {
		return fmt.Errorf("sprint while %s: %w", c.CurrentKind(), ErrInvalidSprint)
	}
	if on && !canSprint(c.unit) {
		return fmt.Errorf("sprint with stamina %.1f: %w", c.unit.Stamina(), ErrInvalidSprint)
	}
	m.setSprinting(on)
	return nil
}

// IsSprinting reports whether the current movement is sprinting.
func (c *Controller) IsSprinting() bool {
	if m, ok := c.Current().(mover); ok {
		return m.moveState().sprinting
	}
	return false
}

// MoveTo plans a route to dest and starts walking it.
func (c *Controller) MoveTo(dest geo.Cube) error {
	tm, err := NewTargetMove(c.unit, dest)
	if err != nil {
		return err
	}
	return c.Request(tm)
}

// MoveAdjacent starts a single step by offset, each component in {-1,0,1}.
func (c *Controller) MoveAdjacent(offset geo.Cube) error {
	am, err := NewAdjacentMove(c.unit, offset)
	if err != nil {
		return err
	}
	return c.Request(am)
}

// Work starts a work order.
func (c *Controller) Work() error {
	return c.Request(NewWork(c.unit))
}

// Rest starts resting.
func (c *Controller) Rest() error {
	return c.Request(NewRest())
}

// Attack starts an attack on defender.
func (c *Controller) Attack(defender Unit) error {
	return c.Request(NewAttack(defender))
}

// chooseDefault picks one of the default behaviors uniformly at random and
// requests it on behalf of the unit.
func (c *Controller) chooseDefault() {
	var (
		a   Activity
		err error
	)
	switch c.unit.Rand().IntN(3) {
	case 0:
		a, err = NewRandomTargetMove(c.unit)
	case 1:
		a = NewWork(c.unit)
	default:
		a = NewRest()
	}
	if err == nil {
		err = c.request(a, true)
	}
	if err != nil && IsDebugEnabled() {
		slog.Debug("default behavior choice skipped",
			"unit", c.unit.Name(),
			"err", err)
	}
}
