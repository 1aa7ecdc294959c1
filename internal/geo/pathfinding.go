package geo

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/elliotchance/orderedmap/v2"
)

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrPathNotFound    = errors.New("path not found")
)

// Exploration is the result of a breadth-first search over valid steps.
// It records, in discovery order, the minimal step distance from the seed
// cube to every cube reached.
type Exploration struct {
	seed Cube
	dist *orderedmap.OrderedMap[Cube, int32]
}

// frontierNode is a queued cube together with its BFS layer.
type frontierNode struct {
	cube Cube
	dist int32
}

// Explore runs a breadth-first search from seed over IsValidStep edges.
// If stop is non-nil, the search ends as soon as a cube for which stop
// returns true has been recorded; otherwise it runs until the frontier is
// exhausted. Distances are final once recorded because cubes are discovered
// layer by layer.
func Explore(t Terrain, seed Cube, stop func(Cube) bool) *Exploration {
	exp := &Exploration{
		seed: seed,
		dist: orderedmap.NewOrderedMap[Cube, int32](),
	}
	exp.dist.Set(seed, 0)
	if stop != nil && stop(seed) {
		return exp
	}

	queue := make([]frontierNode, 0, 64)
	queue = append(queue, frontierNode{cube: seed})

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, n := range t.NeighborCubes(cur.cube) {
			if _, seen := exp.dist.Get(n); seen {
				continue
			}
			if !IsValidStep(t, cur.cube, n) {
				continue
			}
			exp.dist.Set(n, cur.dist+1)
			if stop != nil && stop(n) {
				return exp
			}
			queue = append(queue, frontierNode{cube: n, dist: cur.dist + 1})
		}
	}

	return exp
}

// Seed returns the cube the search started from.
func (e *Exploration) Seed() Cube {
	return e.seed
}

// Distance returns the recorded step distance of c from the seed.
func (e *Exploration) Distance(c Cube) (int32, bool) {
	return e.dist.Get(c)
}

// Len returns the number of cubes reached, seed included.
func (e *Exploration) Len() int {
	return e.dist.Len()
}

// Cubes returns the reached cubes in discovery order, seed first.
func (e *Exploration) Cubes() []Cube {
	out := make([]Cube, 0, e.dist.Len())
	for el := e.dist.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Pick returns a uniformly random reached cube other than the seed.
// Returns false if nothing besides the seed was reached.
func (e *Exploration) Pick(rng *rand.Rand) (Cube, bool) {
	n := e.dist.Len() - 1
	if n <= 0 {
		return Cube{}, false
	}
	skip := rng.IntN(n) + 1
	el := e.dist.Front()
	for range skip {
		el = el.Next()
	}
	return el.Key, true
}

// PathFrom reconstructs a shortest route from `from` back to the seed by
// greedy descent: at each cube it steps to the valid neighbor with the
// strictly lowest recorded distance. The returned path excludes `from` and
// ends at the seed.
func (e *Exploration) PathFrom(t Terrain, from Cube) ([]Cube, error) {
	d, ok := e.dist.Get(from)
	if !ok {
		return nil, fmt.Errorf("from %s to %s: %w", from, e.seed, ErrPathNotFound)
	}

	path := make([]Cube, 0, d)
	cur := from
	for cur != e.seed {
		best, bestDist := cur, d
		for _, n := range t.NeighborCubes(cur) {
			nd, ok := e.dist.Get(n)
			if !ok || nd >= bestDist {
				continue
			}
			if !IsValidStep(t, cur, n) {
				continue
			}
			best, bestDist = n, nd
		}
		if best == cur {
			// Terrain changed since the search ran.
			return nil, fmt.Errorf("from %s to %s: stale exploration: %w", from, e.seed, ErrPathNotFound)
		}
		path = append(path, best)
		cur, d = best, bestDist
	}
	return path, nil
}

// FindPath plans a shortest route from `from` to `to` with a reverse
// breadth-first search seeded at the destination. The path excludes `from`
// and ends at `to`; it is empty when both are the same cube.
func FindPath(t Terrain, from, to Cube) ([]Cube, error) {
	if !t.IsValidPosition(to) {
		return nil, fmt.Errorf("destination %s: %w", to, ErrInvalidPosition)
	}
	if !t.IsValidPosition(from) {
		return nil, fmt.Errorf("origin %s: %w", from, ErrInvalidPosition)
	}
	if from == to {
		return []Cube{}, nil
	}

	exp := Explore(t, to, func(c Cube) bool { return c == from })
	return exp.PathFrom(t, from)
}

// Reachable returns every cube reachable from `from`, excluding `from`
// itself, in discovery order.
func Reachable(t Terrain, from Cube) []Cube {
	if !t.IsValidPosition(from) {
		return nil
	}
	cubes := Explore(t, from, nil).Cubes()
	return cubes[1:]
}
