package activity

import "github.com/udisondev/cubesim/internal/kinematics"

// Work performs one work order. Stronger units finish sooner.
type Work struct {
	core

	duration float64
}

// NewWork creates a work order sized for u.
func NewWork(u Unit) *Work {
	return &Work{duration: kinematics.WorkDuration(u.Body().Strength)}
}

func (w *Work) Kind() Kind { return KindWork }

// Duration returns the time the work order takes.
func (w *Work) Duration() float64 { return w.duration }

// IsAbleTo reports false while attacking or during the initial rest.
func (w *Work) IsAbleTo() bool {
	if w.ctl == nil {
		return true
	}
	return !w.ctl.IsAttacking() && !w.ctl.InInitialRest()
}

func (w *Work) advanceActivity(dt float64) {
	if w.progress+dt >= w.duration {
		w.requestFinish()
	}
}

func (w *Work) shouldStopFor(Activity) bool { return true }
