package geo

// Terrain is the read-only view of the world consumed by movement and path
// planning. Implementations must be cheap to query; the planner calls them
// once per explored cube.
type Terrain interface {
	// MinBounds returns the lowest in-bounds cube (inclusive).
	MinBounds() Cube
	// MaxBounds returns the highest in-bounds cube (inclusive).
	MaxBounds() Cube
	// IsPassable reports whether a unit may occupy the cube.
	// Out-of-bounds cubes are never passable.
	IsPassable(c Cube) bool
	// IsValidPosition reports whether a unit may stand in the cube:
	// in bounds, passable and supported.
	IsValidPosition(c Cube) bool
	// NeighborCubes returns the in-bounds cubes adjacent to c.
	NeighborCubes(c Cube) []Cube
}

// InBounds reports whether c lies inside the terrain bounds.
func InBounds(t Terrain, c Cube) bool {
	lo, hi := t.MinBounds(), t.MaxBounds()
	return c.X >= lo.X && c.X <= hi.X &&
		c.Y >= lo.Y && c.Y <= hi.Y &&
		c.Z >= lo.Z && c.Z <= hi.Z
}

// Neighborhood returns the in-bounds cubes of the 26-neighborhood around c,
// in a fixed order. Terrain implementations may use it for NeighborCubes.
func Neighborhood(lo, hi, c Cube) []Cube {
	out := make([]Cube, 0, 26)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				n := Cube{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
				if n.X < lo.X || n.X > hi.X || n.Y < lo.Y || n.Y > hi.Y || n.Z < lo.Z || n.Z > hi.Z {
					continue
				}
				out = append(out, n)
			}
		}
	}
	return out
}
