package activity

import (
	"github.com/udisondev/cubesim/internal/kinematics"
)

const (
	// MinSprintStamina is the stamina a unit must exceed to sprint.
	MinSprintStamina = 0.0

	// DefaultSprintChance is the per-tick chance that a unit moving on its
	// own starts sprinting.
	DefaultSprintChance = 0.01
)

// movement is the sprint and speed state shared by the position-changing
// activities. It is embedded by value; the owning activity decides when to
// drain stamina.
type movement struct {
	sprinting    bool
	currentSpeed float64
}

// mover is implemented by activities that embed movement.
type mover interface {
	Activity
	moveState() *movement
	setSprinting(on bool)
}

func (m *movement) moveState() *movement { return m }

// IsSprinting reports whether the movement is sprinting.
func (m *movement) IsSprinting() bool { return m.sprinting }

// CurrentSpeed returns the speed used in the last tick, in cubes per second.
func (m *movement) CurrentSpeed() float64 { return m.currentSpeed }

func canSprint(u Unit) bool {
	return u.Stamina() > MinSprintStamina
}

// drainStamina charges the sprint cost for a tick of length dt starting at
// activity progress p. It returns false once stamina ran out, in which case
// the caller must stop sprinting.
func (m *movement) drainStamina(u Unit, p, dt float64) bool {
	if !m.sprinting {
		return true
	}
	n := kinematics.Intervals(p, dt, kinematics.SprintDrainInterval)
	if n == 0 {
		return canSprint(u)
	}
	st := u.Stamina() - float64(n)*kinematics.SprintDrainAmount
	if st < 0 {
		st = 0
	}
	u.SetStamina(st)
	return canSprint(u)
}

// tickSprint runs the per-tick sprint bookkeeping of a top-level movement:
// stamina drain, forced stop when exhausted, and the spontaneous sprint of
// units moving on their own.
func tickSprint(m mover, dt float64) {
	st := m.state()
	mv := m.moveState()
	if !mv.drainStamina(st.unit, st.progress, dt) {
		m.setSprinting(false)
		return
	}
	if st.isDefault && !mv.sprinting && canSprint(st.unit) &&
		st.unit.Rand().Float64() < DefaultSprintChance {
		m.setSprinting(true)
	}
}
