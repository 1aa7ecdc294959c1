package testutil

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/cubesim/internal/config"
	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/model"
	"github.com/udisondev/cubesim/internal/world"
)

// AverageAttributes задаёт атрибуты «среднего» юнита: скорость 1.5 куба/с,
// 50 hitpoints, работа за 10 секунд.
var AverageAttributes = model.Attributes{
	Strength:  50,
	Agility:   50,
	Weight:    50,
	Toughness: 50,
}

// NewRand создаёт детерминированный генератор для тестов.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewAirGrid создаёт пустой (полностью проходимый) грид.
func NewAirGrid(t testing.TB, x, y, z int32) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(x, y, z)
	require.NoError(t, err)
	return g
}

// NewAirWorld создаёт мир без твёрдых кубов с максимальным шагом
// config.MaxTickDuration.
func NewAirWorld(t testing.TB, x, y, z int32) *world.World {
	t.Helper()
	return world.New(NewAirGrid(t, x, y, z), NewRand(1), config.MaxTickDuration)
}

// NewPillarWorld создаёт мир с твёрдым столбом в колонке (px, py) от пола до
// height-1 включительно. На вершине столба (px, py, height) можно стоять.
func NewPillarWorld(t testing.TB, size int32, px, py, height int32) *world.World {
	t.Helper()
	g := NewAirGrid(t, size, size, size)
	for z := range height {
		g.SetSolid(geo.Cube{X: px, Y: py, Z: z})
	}
	return world.New(g, NewRand(1), config.MaxTickDuration)
}

// SpawnUnit создаёт юнит со средними атрибутами без собственного поведения.
func SpawnUnit(t testing.TB, w *world.World, name string, at geo.Cube) *model.Unit {
	t.Helper()
	u, err := w.SpawnUnit(name, at, AverageAttributes, false)
	require.NoError(t, err)
	return u
}

// AdvanceUntil продвигает мир шагами dt, пока cond не станет true.
// Возвращает число шагов; падает после limit шагов.
func AdvanceUntil(t testing.TB, w *world.World, dt float64, limit int, cond func() bool) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		require.NoError(t, w.AdvanceTime(dt))
		if cond() {
			return i
		}
	}
	t.Fatalf("condition not met after %d steps", limit)
	return limit
}
