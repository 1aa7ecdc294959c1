package geo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cube identifies a unit-sized grid cell by its integer coordinates.
// Z is the vertical axis.
type Cube struct {
	X, Y, Z int32
}

// CubeOf returns the cube containing the continuous point p.
func CubeOf(p mgl64.Vec3) Cube {
	return Cube{
		X: int32(math.Floor(p.X())),
		Y: int32(math.Floor(p.Y())),
		Z: int32(math.Floor(p.Z())),
	}
}

// Center returns the continuous point at the middle of the cube.
func (c Cube) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X) + 0.5, float64(c.Y) + 0.5, float64(c.Z) + 0.5}
}

// Add returns c translated by d.
func (c Cube) Add(d Cube) Cube {
	return Cube{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Sub returns the offset from other to c.
func (c Cube) Sub(other Cube) Cube {
	return Cube{X: c.X - other.X, Y: c.Y - other.Y, Z: c.Z - other.Z}
}

// Below returns the cube directly underneath c.
func (c Cube) Below() Cube {
	return Cube{X: c.X, Y: c.Y, Z: c.Z - 1}
}

// IsAdjacent reports whether other differs from c by one step on at least
// one axis and by no more than one step on every axis.
func (c Cube) IsAdjacent(other Cube) bool {
	d := other.Sub(c)
	if d == (Cube{}) {
		return false
	}
	return abs32(d.X) <= 1 && abs32(d.Y) <= 1 && abs32(d.Z) <= 1
}

// Chebyshev returns the number of single-cube steps between c and other
// when diagonal steps are allowed and nothing is in the way.
func (c Cube) Chebyshev(other Cube) int32 {
	d := other.Sub(c)
	return max(abs32(d.X), abs32(d.Y), abs32(d.Z))
}

func (c Cube) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
