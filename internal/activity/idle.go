package activity

// Idle does nothing. While the unit has default behavior enabled it picks a
// new activity every tick, however the idle activity was started.
type Idle struct {
	core
}

// NewIdle creates an idle activity.
func NewIdle() *Idle {
	return &Idle{}
}

func (i *Idle) Kind() Kind                  { return KindIdle }
func (i *Idle) IsAbleTo() bool              { return true }
func (i *Idle) shouldStopFor(Activity) bool { return true }

func (i *Idle) advanceActivity(float64) {
	if i.unit.DefaultBehavior() {
		i.ctl.chooseDefault()
	}
}
