package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cubesim/internal/geo"
)

func TestNewGrid_InvalidSize(t *testing.T) {
	for _, size := range [][3]int32{{0, 1, 1}, {1, 0, 1}, {1, 1, -3}} {
		_, err := NewGrid(size[0], size[1], size[2])
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestGrid_SolidBits(t *testing.T) {
	g, err := NewGrid(5, 7, 3)
	require.NoError(t, err)

	cubes := []geo.Cube{{}, {X: 4, Y: 6, Z: 2}, {X: 2, Y: 3, Z: 1}, {X: 1}}
	for _, c := range cubes {
		g.SetSolid(c)
	}
	g.SetSolid(geo.Cube{X: 5}) // out of bounds, ignored

	assert.Equal(t, len(cubes), g.SolidCount())
	for _, c := range cubes {
		assert.True(t, g.IsSolid(c), c.String())
		assert.False(t, g.IsPassable(c), c.String())
	}
	assert.False(t, g.IsSolid(geo.Cube{X: 2, Y: 3}))
	assert.False(t, g.IsPassable(geo.Cube{X: -1}), "out of bounds is not passable")

	g.SetPassable(geo.Cube{X: 2, Y: 3, Z: 1})
	assert.False(t, g.IsSolid(geo.Cube{X: 2, Y: 3, Z: 1}))
	assert.Equal(t, len(cubes)-1, g.SolidCount())
}

func TestGrid_Bounds(t *testing.T) {
	g, err := NewGrid(4, 5, 6)
	require.NoError(t, err)

	assert.Equal(t, geo.Cube{}, g.MinBounds())
	assert.Equal(t, geo.Cube{X: 3, Y: 4, Z: 5}, g.MaxBounds())
	x, y, z := g.Size()
	assert.Equal(t, [3]int32{4, 5, 6}, [3]int32{x, y, z})
}

func TestGrid_IsValidPosition(t *testing.T) {
	g, err := NewGrid(5, 5, 5)
	require.NoError(t, err)
	g.SetSolid(geo.Cube{X: 2, Y: 2, Z: 1})

	tests := []struct {
		cube  geo.Cube
		valid bool
	}{
		{geo.Cube{X: 0, Y: 0, Z: 0}, true},  // floor
		{geo.Cube{X: 2, Y: 2, Z: 1}, false}, // solid
		{geo.Cube{X: 2, Y: 2, Z: 2}, true},  // on top of the block
		{geo.Cube{X: 3, Y: 3, Z: 2}, true},  // diagonal neighbor of the block
		{geo.Cube{X: 1, Y: 2, Z: 1}, true},  // beside the block
		{geo.Cube{X: 0, Y: 0, Z: 2}, false}, // mid-air
		{geo.Cube{X: 2, Y: 2, Z: 4}, false}, // far above
		{geo.Cube{X: 5, Y: 0, Z: 0}, false}, // out of bounds
	}

	for _, tt := range tests {
		t.Run(tt.cube.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, g.IsValidPosition(tt.cube))
		})
	}
}

func TestGrid_NeighborCubes(t *testing.T) {
	g, err := NewGrid(3, 3, 3)
	require.NoError(t, err)

	assert.Len(t, g.NeighborCubes(geo.Cube{X: 1, Y: 1, Z: 1}), 26)
	assert.Len(t, g.NeighborCubes(geo.Cube{}), 7)
}

func TestGenerate(t *testing.T) {
	g, err := NewGrid(24, 24, 8)
	require.NoError(t, err)

	Generate(g, 7, 0.1, 5)

	assert.Positive(t, g.SolidCount())
	for x := range int32(24) {
		for y := range int32(24) {
			top := geo.Cube{X: x, Y: y, Z: 7}
			assert.False(t, g.IsSolid(top), "top layer stays air")
			// Columns are filled bottom-up without gaps.
			gap := false
			for z := range int32(8) {
				c := geo.Cube{X: x, Y: y, Z: z}
				if !g.IsSolid(c) {
					gap = true
				} else {
					require.False(t, gap, "floating block at %s", c)
				}
				if z >= 5 {
					assert.False(t, g.IsSolid(c), "above max height at %s", c)
				}
			}
		}
	}

	same, err := NewGrid(24, 24, 8)
	require.NoError(t, err)
	Generate(same, 7, 0.1, 5)
	assert.Equal(t, g.solid, same.solid, "same seed, same terrain")
}

func BenchmarkGrid_IsValidPosition(b *testing.B) {
	g, err := NewGrid(64, 64, 16)
	require.NoError(b, err)
	Generate(g, 1, 0.08, 8)
	c := geo.Cube{X: 30, Y: 30, Z: 4}

	b.ReportAllocs()
	for b.Loop() {
		_ = g.IsValidPosition(c)
	}
}
