package activity

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/kinematics"
)

// Fall drops the unit straight down until it lands on solid ground or the
// bottom of the world, then applies fall damage. It cannot be preempted.
type Fall struct {
	core
	movement

	origin int32 // cube height the fall started from
}

// NewFall creates a fall. The controller starts one by itself when the ground
// under the unit disappears.
func NewFall() *Fall {
	return &Fall{}
}

func (f *Fall) Kind() Kind     { return KindFall }
func (f *Fall) IsAbleTo() bool { return true }

// Origin returns the cube height the fall started from.
func (f *Fall) Origin() int32 { return f.origin }

func (f *Fall) setSprinting(bool) {}

func (f *Fall) startActivity() {
	pos := f.unit.Position()
	c := geo.CubeOf(pos)
	center := c.Center()
	f.unit.SetPosition(mgl64.Vec3{center.X(), center.Y(), pos.Z()})
	f.origin = c.Z
	f.currentSpeed = kinematics.FallSpeed
}

func (f *Fall) advanceActivity(dt float64) {
	t := f.unit.Terrain()
	pos := f.unit.Position()
	from := geo.CubeOf(pos)
	np := mgl64.Vec3{pos.X(), pos.Y(), pos.Z() - kinematics.FallSpeed*dt}
	to := geo.CubeOf(np)

	for z := from.Z; z >= to.Z; z-- {
		c := geo.Cube{X: from.X, Y: from.Y, Z: z}
		if !isLanding(t, c) || np.Z() > c.Center().Z() {
			continue
		}
		f.land(c)
		return
	}
	f.unit.SetPosition(np)
}

// isLanding reports whether a falling unit comes to rest in c.
func isLanding(t geo.Terrain, c geo.Cube) bool {
	return c.Z <= t.MinBounds().Z || !t.IsPassable(c.Below())
}

func (f *Fall) land(c geo.Cube) {
	f.unit.SetPosition(c.Center())
	levels := f.origin - c.Z
	damage := kinematics.FallDamage(levels)
	if damage > 0 {
		f.unit.RemoveHitpoints(damage)
	}
	if IsDebugEnabled() {
		slog.Debug("unit landed",
			"unit", f.unit.Name(),
			"levels", levels,
			"damage", damage)
	}
	f.requestFinish()
}

func (f *Fall) shouldStopFor(Activity) bool { return false }
