package activity

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/kinematics"
)

// testTerrain is passable everywhere except cubes marked solid.
type testTerrain struct {
	lo, hi geo.Cube
	solid  map[geo.Cube]bool
}

func newTestTerrain(sx, sy, sz int32) *testTerrain {
	return &testTerrain{
		hi:    geo.Cube{X: sx - 1, Y: sy - 1, Z: sz - 1},
		solid: make(map[geo.Cube]bool),
	}
}

func (t *testTerrain) MinBounds() geo.Cube { return t.lo }
func (t *testTerrain) MaxBounds() geo.Cube { return t.hi }

func (t *testTerrain) IsPassable(c geo.Cube) bool {
	return geo.InBounds(t, c) && !t.solid[c]
}

func (t *testTerrain) IsValidPosition(c geo.Cube) bool {
	if !t.IsPassable(c) {
		return false
	}
	if c.Z == t.lo.Z {
		return true
	}
	for _, n := range t.NeighborCubes(c) {
		if t.solid[n] {
			return true
		}
	}
	return false
}

func (t *testTerrain) NeighborCubes(c geo.Cube) []geo.Cube {
	return geo.Neighborhood(t.lo, t.hi, c)
}

// testUnit is a bare Unit with public fields for assertions.
type testUnit struct {
	id          uint32
	pos         mgl64.Vec3
	orientation float64
	stamina     float64
	hitpoints   float64
	maxPoints   float64
	body        kinematics.Body
	terrain     geo.Terrain
	rng         *rand.Rand
	dflt        bool

	attackers []Unit
	ctl       *Controller
	finished  []finishEvent
}

type finishEvent struct {
	kind Kind
	err  error
}

func newTestUnit(t *testing.T, id uint32, terrain geo.Terrain, at geo.Cube) *testUnit {
	t.Helper()
	u := &testUnit{
		id:        id,
		pos:       at.Center(),
		stamina:   50,
		hitpoints: 50,
		maxPoints: 50,
		body:      kinematics.Body{Strength: 50, Agility: 50, Weight: 50, Toughness: 50},
		terrain:   terrain,
		rng:       rand.New(rand.NewPCG(uint64(id), 42)),
	}
	u.ctl = NewController(u)
	u.ctl.SetFinishFunc(func(kind Kind, err error) {
		u.finished = append(u.finished, finishEvent{kind: kind, err: err})
	})
	return u
}

func (u *testUnit) ID() uint32                 { return u.id }
func (u *testUnit) Name() string               { return "test-unit" }
func (u *testUnit) Position() mgl64.Vec3       { return u.pos }
func (u *testUnit) SetPosition(p mgl64.Vec3) { u.pos = p }
func (u *testUnit) Orientation() float64       { return u.orientation }
func (u *testUnit) SetOrientation(o float64) { u.orientation = o }
func (u *testUnit) Stamina() float64           { return u.stamina }
func (u *testUnit) MaxStamina() float64        { return u.maxPoints }
func (u *testUnit) SetStamina(v float64) { u.stamina = v }
func (u *testUnit) Hitpoints() float64         { return u.hitpoints }
func (u *testUnit) MaxHitpoints() float64      { return u.maxPoints }
func (u *testUnit) SetHitpoints(v float64) { u.hitpoints = v }
func (u *testUnit) Body() kinematics.Body      { return u.body }
func (u *testUnit) Terrain() geo.Terrain       { return u.terrain }
func (u *testUnit) Rand() *rand.Rand           { return u.rng }
func (u *testUnit) DefaultBehavior() bool      { return u.dflt }
func (u *testUnit) Defend(attacker Unit) { u.attackers = append(u.attackers, attacker) }

func (u *testUnit) RemoveHitpoints(n float64) {
	u.hitpoints = max(0, u.hitpoints-n)
}

// lastFinish returns the most recent finish event.
func (u *testUnit) lastFinish(t *testing.T) finishEvent {
	t.Helper()
	require.NotEmpty(t, u.finished, "no activity finished")
	return u.finished[len(u.finished)-1]
}

// advanceUntil advances the unit until cond holds, failing after limit ticks.
// It returns the number of ticks run.
func advanceUntil(t *testing.T, u *testUnit, dt float64, limit int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		u.ctl.Advance(dt)
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not met after %d ticks", limit)
	return limit
}
