package world

import (
	"fmt"

	"github.com/udisondev/cubesim/internal/geo"
)

// Grid is a dense cube grid with one solid bit per cube. Cube coordinates run
// from (0,0,0) to Size-1 inclusive. Grid implements geo.Terrain.
//
// Grid is not safe for concurrent use; World serializes access to it.
type Grid struct {
	sizeX, sizeY, sizeZ int32
	solid               []uint64
}

// NewGrid creates an all-air grid.
func NewGrid(sizeX, sizeY, sizeZ int32) (*Grid, error) {
	if sizeX < 1 || sizeY < 1 || sizeZ < 1 {
		return nil, fmt.Errorf("grid %dx%dx%d: %w", sizeX, sizeY, sizeZ, ErrInvalidSize)
	}
	n := int(sizeX) * int(sizeY) * int(sizeZ)
	return &Grid{
		sizeX: sizeX,
		sizeY: sizeY,
		sizeZ: sizeZ,
		solid: make([]uint64, (n+63)/64),
	}, nil
}

// Size returns the grid dimensions in cubes.
func (g *Grid) Size() (x, y, z int32) {
	return g.sizeX, g.sizeY, g.sizeZ
}

// index converts an in-bounds cube to its bit index.
// Layout: z-major, then y, then x.
func (g *Grid) index(c geo.Cube) int {
	return (int(c.Z)*int(g.sizeY)+int(c.Y))*int(g.sizeX) + int(c.X)
}

// IsSolid reports whether c is in bounds and solid.
func (g *Grid) IsSolid(c geo.Cube) bool {
	if !geo.InBounds(g, c) {
		return false
	}
	i := g.index(c)
	return g.solid[i>>6]&(1<<(i&63)) != 0
}

// SetSolid fills c. Out-of-bounds cubes are ignored.
func (g *Grid) SetSolid(c geo.Cube) {
	if !geo.InBounds(g, c) {
		return
	}
	i := g.index(c)
	g.solid[i>>6] |= 1 << (i & 63)
}

// SetPassable clears c. Out-of-bounds cubes are ignored.
func (g *Grid) SetPassable(c geo.Cube) {
	if !geo.InBounds(g, c) {
		return
	}
	i := g.index(c)
	g.solid[i>>6] &^= 1 << (i & 63)
}

// SolidCount returns the number of solid cubes.
func (g *Grid) SolidCount() int {
	n := 0
	for _, w := range g.solid {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

func (g *Grid) MinBounds() geo.Cube { return geo.Cube{} }

func (g *Grid) MaxBounds() geo.Cube {
	return geo.Cube{X: g.sizeX - 1, Y: g.sizeY - 1, Z: g.sizeZ - 1}
}

// IsPassable reports whether c is in bounds and not solid.
func (g *Grid) IsPassable(c geo.Cube) bool {
	return geo.InBounds(g, c) && !g.IsSolid(c)
}

// IsValidPosition reports whether a unit may stand in c: the cube is passable
// and either lies on the bottom layer or touches a solid cube.
func (g *Grid) IsValidPosition(c geo.Cube) bool {
	if !g.IsPassable(c) {
		return false
	}
	if c.Z == 0 {
		return true
	}
	for _, n := range g.NeighborCubes(c) {
		if g.IsSolid(n) {
			return true
		}
	}
	return false
}

// NeighborCubes returns the in-bounds 26-neighborhood of c.
func (g *Grid) NeighborCubes(c geo.Cube) []geo.Cube {
	return geo.Neighborhood(g.MinBounds(), g.MaxBounds(), c)
}
