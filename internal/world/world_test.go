package world

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cubesim/internal/activity"
	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/model"
)

var average = model.Attributes{Strength: 50, Agility: 50, Weight: 50, Toughness: 50}

func newTestWorld(t *testing.T, x, y, z int32) *World {
	t.Helper()
	g, err := NewGrid(x, y, z)
	require.NoError(t, err)
	return New(g, rand.New(rand.NewPCG(1, 2)), 0.2)
}

func TestWorld_SpawnUnit(t *testing.T) {
	w := newTestWorld(t, 5, 5, 3)

	u, err := w.SpawnUnit("Alice", geo.Cube{X: 1, Y: 2}, average, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), u.ID())
	assert.Equal(t, geo.Cube{X: 1, Y: 2}, u.Cube())
	assert.Equal(t, 1, w.UnitCount())

	got, err := w.Unit(u.ID())
	require.NoError(t, err)
	assert.Same(t, u, got)

	_, err = w.Unit(99)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestWorld_SpawnUnitErrors(t *testing.T) {
	w := newTestWorld(t, 5, 5, 3)

	_, err := w.SpawnUnit("Alice", geo.Cube{X: 1, Y: 1, Z: 2}, average, false)
	assert.ErrorIs(t, err, geo.ErrInvalidPosition, "mid-air")

	_, err = w.SpawnUnit("alice", geo.Cube{}, average, false)
	assert.ErrorIs(t, err, model.ErrInvalidName)

	bad := average
	bad.Weight = 0
	_, err = w.SpawnUnit("Alice", geo.Cube{}, bad, false)
	assert.ErrorIs(t, err, model.ErrInvalidAttribute)

	assert.Zero(t, w.UnitCount())
}

func TestWorld_SpawnRandomUnit(t *testing.T) {
	w := newTestWorld(t, 6, 6, 4)
	for range 20 {
		u, err := w.SpawnRandomUnit("Bob", 10, 20, true)
		require.NoError(t, err)
		assert.True(t, w.Terrain().IsValidPosition(u.Cube()))
		a := u.Attributes()
		for _, v := range []int32{a.Strength, a.Agility, a.Weight, a.Toughness} {
			assert.GreaterOrEqual(t, v, int32(10))
			assert.LessOrEqual(t, v, int32(20))
		}
		assert.True(t, u.DefaultBehavior())
	}
}

func TestWorld_SpawnRandomUnitInvertedRange(t *testing.T) {
	w := newTestWorld(t, 6, 6, 4)
	_, err := w.SpawnRandomUnit("Bob", 30, 20, false)
	require.ErrorIs(t, err, model.ErrInvalidAttribute)
	assert.Zero(t, w.UnitCount())
}

func TestWorld_SpawnRandomUnitNoRoom(t *testing.T) {
	g, err := NewGrid(1, 1, 1)
	require.NoError(t, err)
	g.SetSolid(geo.Cube{})
	w := New(g, rand.New(rand.NewPCG(1, 2)), 0.2)

	_, err = w.SpawnRandomUnit("Bob", 10, 20, false)
	assert.ErrorIs(t, err, ErrNoSpawnPosition)
}

func TestWorld_AdvanceTimeRange(t *testing.T) {
	w := newTestWorld(t, 3, 3, 1)

	assert.ErrorIs(t, w.AdvanceTime(-0.01), ErrInvalidDuration)
	assert.ErrorIs(t, w.AdvanceTime(0.21), ErrInvalidDuration)
	require.NoError(t, w.AdvanceTime(0))
	require.NoError(t, w.AdvanceTime(0.2))
	assert.InDelta(t, 0.2, w.Time(), 1e-12)
}

func TestWorld_MoveThroughCommand(t *testing.T) {
	w := newTestWorld(t, 8, 8, 2)
	u, err := w.SpawnUnit("Alice", geo.Cube{}, average, false)
	require.NoError(t, err)

	require.NoError(t, w.Command(u.ID(), func(u *model.Unit) error {
		return u.Controller().MoveTo(geo.Cube{X: 5, Y: 5})
	}))
	assert.ErrorIs(t, w.Command(42, func(*model.Unit) error { return nil }), ErrUnitNotFound)

	for range 100 {
		require.NoError(t, w.AdvanceTime(0.1))
	}
	assert.Equal(t, geo.Cube{X: 5, Y: 5}.Center(), u.Position())
	assert.Equal(t, activity.KindIdle, u.Controller().CurrentKind())
}

func TestWorld_CollapseMakesUnitFall(t *testing.T) {
	w := newTestWorld(t, 3, 3, 6)
	for z := range int32(4) {
		w.SetSolid(geo.Cube{X: 1, Y: 1, Z: z})
	}
	u, err := w.SpawnUnit("Alice", geo.Cube{X: 1, Y: 1, Z: 4}, average, false)
	require.NoError(t, err)
	hp := u.Hitpoints()

	for z := range int32(4) {
		w.SetPassable(geo.Cube{X: 1, Y: 1, Z: z})
	}
	require.NoError(t, w.AdvanceTime(0.1))
	assert.True(t, u.Controller().IsFalling())

	for range 30 {
		require.NoError(t, w.AdvanceTime(0.1))
	}
	assert.Equal(t, geo.Cube{X: 1, Y: 1}, u.Cube())
	assert.InDelta(t, hp-40, u.Hitpoints(), 1e-9)
}

func TestWorld_DeadUnitsAreRemoved(t *testing.T) {
	w := newTestWorld(t, 3, 3, 3)
	u, err := w.SpawnUnit("Alice", geo.Cube{}, average, false)
	require.NoError(t, err)
	other, err := w.SpawnUnit("Bob", geo.Cube{X: 1}, average, false)
	require.NoError(t, err)

	u.RemoveHitpoints(u.MaxHitpoints())
	require.NoError(t, w.AdvanceTime(0.1))

	assert.Equal(t, 1, w.UnitCount())
	_, err = w.Unit(u.ID())
	assert.ErrorIs(t, err, ErrUnitNotFound)
	assert.Equal(t, []uint32{other.ID()}, snapshotIDs(w.Snapshots()))
}

func TestWorld_AttackAndUnitsAround(t *testing.T) {
	w := newTestWorld(t, 5, 5, 1)
	a, err := w.SpawnUnit("Alice", geo.Cube{X: 1, Y: 1}, average, false)
	require.NoError(t, err)
	b, err := w.SpawnUnit("Bob", geo.Cube{X: 2, Y: 2}, average, false)
	require.NoError(t, err)
	c, err := w.SpawnUnit("Carol", geo.Cube{X: 4, Y: 4}, average, false)
	require.NoError(t, err)

	around := w.UnitsAround(a.Cube(), a.ID())
	require.Len(t, around, 1)
	assert.Same(t, b, around[0])

	require.NoError(t, w.Attack(a.ID(), b.ID()))
	assert.True(t, a.Controller().IsAttacking())
	assert.ErrorIs(t, w.Attack(a.ID(), 77), ErrUnitNotFound)

	require.ErrorIs(t, w.Attack(c.ID(), a.ID()), activity.ErrNotAble, "out of reach")
}

func TestWorld_DefaultBehaviorSoak(t *testing.T) {
	g, err := NewGrid(16, 16, 8)
	require.NoError(t, err)
	Generate(g, 3, 0.15, 4)
	w := New(g, rand.New(rand.NewPCG(3, 3)), 0.2)

	for range 6 {
		_, err := w.SpawnRandomUnit("Worker", 20, 120, true)
		require.NoError(t, err)
	}

	for range 3000 {
		require.NoError(t, w.AdvanceTime(0.1))
		for _, s := range w.Snapshots() {
			c := geo.CubeOf(s.Position)
			require.True(t, geo.InBounds(g, c), "unit %d left the world at %s", s.ID, c)
			require.True(t, g.IsPassable(c), "unit %d inside solid cube %s", s.ID, c)
			require.GreaterOrEqual(t, s.Stamina, 0.0)
			require.LessOrEqual(t, s.Stamina, s.MaxPoints)
		}
	}
	assert.Equal(t, 6, w.UnitCount(), "nobody fights or falls on static terrain")
}

func snapshotIDs(snaps []model.Snapshot) []uint32 {
	ids := make([]uint32, 0, len(snaps))
	for _, s := range snaps {
		ids = append(ids, s.ID)
	}
	return ids
}
