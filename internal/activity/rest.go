package activity

import (
	"github.com/udisondev/cubesim/internal/kinematics"
)

// Rest recovers hitpoints first, then stamina, one quantum per
// kinematics.RestInterval, and completes when both are full.
//
// Until a whole point has been recovered the unit is in its initial rest and
// refuses most other activities.
type Rest struct {
	core

	recovered float64
}

// NewRest creates a rest activity.
func NewRest() *Rest {
	return &Rest{}
}

func (r *Rest) Kind() Kind { return KindRest }

// IsAbleTo reports false while attacking.
func (r *Rest) IsAbleTo() bool {
	if r.ctl == nil {
		return true
	}
	return !r.ctl.IsAttacking()
}

// Recovered returns the points recovered since the rest started.
func (r *Rest) Recovered() float64 { return r.recovered }

// InInitialRest reports whether less than one point was recovered so far.
func (r *Rest) InInitialRest() bool { return r.recovered < 1 }

func (r *Rest) startActivity() {
	r.recovered = 0
}

func (r *Rest) advanceActivity(dt float64) {
	u := r.unit
	if r.rested() {
		r.requestFinish()
		return
	}

	toughness := u.Body().Toughness
	for range kinematics.Intervals(r.progress, dt, kinematics.RestInterval) {
		switch {
		case u.Hitpoints() < u.MaxHitpoints():
			r.recovered += refill(u.Hitpoints, u.MaxHitpoints, u.SetHitpoints, kinematics.HitpointRegen(toughness))
		case u.Stamina() < u.MaxStamina():
			r.recovered += refill(u.Stamina, u.MaxStamina, u.SetStamina, kinematics.StaminaRegen(toughness))
		}
	}

	if r.rested() {
		r.requestFinish()
	}
}

func (r *Rest) rested() bool {
	u := r.unit
	return u.Hitpoints() >= u.MaxHitpoints() && u.Stamina() >= u.MaxStamina()
}

// refill adds amount to a capped pool and returns what was actually added.
func refill(get, limit func() float64, set func(float64), amount float64) float64 {
	cur, top := get(), limit()
	next := min(cur+amount, top)
	set(next)
	return next - cur
}

// During the initial rest only a fall takes over. Afterwards anything but
// another rest stops it.
func (r *Rest) shouldStopFor(next Activity) bool {
	if next.Kind() == KindFall {
		return true
	}
	if r.InInitialRest() {
		return false
	}
	return next.Kind() != KindRest
}
