package geo

// IsValidStep reports whether a unit may move from cube a to the adjacent
// cube b in one step.
//
// Both endpoints must be valid positions. A diagonal step is decomposed into
// its single-axis components; every intermediate cube reached that way (the
// rest of the box spanned by a and b) must be in bounds and passable, so a
// diagonal move never clips through a solid edge or corner. The set of
// intermediate cubes is the same seen from a or from b, so the rule is
// symmetric.
func IsValidStep(t Terrain, a, b Cube) bool {
	if !a.IsAdjacent(b) {
		return false
	}
	if !t.IsValidPosition(a) || !t.IsValidPosition(b) {
		return false
	}
	d := b.Sub(a)
	for mx := int32(0); mx <= abs32(d.X); mx++ {
		for my := int32(0); my <= abs32(d.Y); my++ {
			for mz := int32(0); mz <= abs32(d.Z); mz++ {
				c := Cube{X: a.X + mx*d.X, Y: a.Y + my*d.Y, Z: a.Z + mz*d.Z}
				if c == a || c == b {
					continue
				}
				if !InBounds(t, c) || !t.IsPassable(c) {
					return false
				}
			}
		}
	}
	return true
}
