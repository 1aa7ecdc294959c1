package world

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/udisondev/cubesim/internal/geo"
)

// Generate fills g with a heightmap terrain: every (x, y) column is solid
// from the bottom up to a height sampled from 2D simplex noise, at most
// maxHeight cubes. scale is the noise frequency per cube; smaller values give
// smoother hills. The top layer always stays air.
func Generate(g *Grid, seed int64, scale float64, maxHeight int32) {
	noise := opensimplex.NewNormalized(seed)
	maxHeight = min(maxHeight, g.sizeZ-1)

	for x := range g.sizeX {
		for y := range g.sizeY {
			n := noise.Eval2(float64(x)*scale, float64(y)*scale) // [0, 1)
			h := int32(math.Floor(n * float64(maxHeight+1)))
			h = min(max(h, 0), maxHeight)
			for z := range h {
				g.SetSolid(geo.Cube{X: x, Y: y, Z: z})
			}
		}
	}
}
