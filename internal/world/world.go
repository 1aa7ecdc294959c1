package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/model"
)

var (
	ErrInvalidSize     = errors.New("world size must be positive")
	ErrInvalidDuration = errors.New("tick duration out of range")
	ErrUnitNotFound    = errors.New("unit not found")
	ErrNoSpawnPosition = errors.New("no valid spawn position")
)

// World owns the cube grid and the units living in it, and advances them in
// lockstep. Units are advanced in spawn order.
//
// All methods are safe for concurrent use: AdvanceTime and the terrain and
// command methods take the write lock, queries take the read lock.
type World struct {
	mu    sync.RWMutex
	grid  *Grid
	units *orderedmap.OrderedMap[uint32, *model.Unit]

	ids   *UnitIDGenerator
	rng   *rand.Rand
	maxDt float64
	time  float64
}

// New creates a world around grid. rng seeds every unit's own RNG, and
// AdvanceTime accepts steps up to maxDt simulated seconds.
func New(grid *Grid, rng *rand.Rand, maxDt float64) *World {
	return &World{
		grid:  grid,
		units: orderedmap.NewOrderedMap[uint32, *model.Unit](),
		ids:   NewUnitIDGenerator(),
		rng:   rng,
		maxDt: maxDt,
	}
}

// Terrain returns the grid. Mutate it only through World methods once units
// are spawned.
func (w *World) Terrain() geo.Terrain {
	return w.grid
}

// Time returns the simulated seconds elapsed since the world was created.
func (w *World) Time() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.time
}

// SpawnUnit creates a unit standing in cube at and registers it.
func (w *World) SpawnUnit(name string, at geo.Cube, attrs model.Attributes, defaultBehavior bool) (*model.Unit, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spawnLocked(name, at, attrs, defaultBehavior)
}

// SpawnRandomUnit creates a unit with attributes rolled uniformly in
// [minAttr, maxAttr] at a random valid position.
func (w *World) SpawnRandomUnit(name string, minAttr, maxAttr int32, defaultBehavior bool) (*model.Unit, error) {
	if minAttr > maxAttr {
		return nil, fmt.Errorf("spawning unit: attribute range [%d, %d]: %w", minAttr, maxAttr, model.ErrInvalidAttribute)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	at, err := w.randomPositionLocked()
	if err != nil {
		return nil, err
	}
	roll := func() int32 { return minAttr + w.rng.Int32N(maxAttr-minAttr+1) }
	attrs := model.Attributes{
		Strength:  roll(),
		Agility:   roll(),
		Weight:    roll(),
		Toughness: roll(),
	}
	return w.spawnLocked(name, at, attrs, defaultBehavior)
}

func (w *World) spawnLocked(name string, at geo.Cube, attrs model.Attributes, defaultBehavior bool) (*model.Unit, error) {
	id := w.ids.Next()
	rng := rand.New(rand.NewPCG(w.rng.Uint64(), uint64(id)))

	u, err := model.NewUnit(id, name, at, attrs, w.grid, rng)
	if err != nil {
		return nil, fmt.Errorf("spawning unit: %w", err)
	}
	u.SetDefaultBehavior(defaultBehavior)
	w.units.Set(id, u)

	slog.Info("unit spawned",
		"id", id,
		"name", name,
		"cube", at,
		"maxPoints", u.MaxHitpoints())
	return u, nil
}

// randomPositionLocked samples random cubes, then falls back to a full scan.
func (w *World) randomPositionLocked() (geo.Cube, error) {
	hi := w.grid.MaxBounds()
	for range 64 {
		c := geo.Cube{
			X: w.rng.Int32N(hi.X + 1),
			Y: w.rng.Int32N(hi.Y + 1),
			Z: w.rng.Int32N(hi.Z + 1),
		}
		if w.grid.IsValidPosition(c) {
			return c, nil
		}
	}

	var valid []geo.Cube
	for z := range hi.Z + 1 {
		for y := range hi.Y + 1 {
			for x := range hi.X + 1 {
				if c := (geo.Cube{X: x, Y: y, Z: z}); w.grid.IsValidPosition(c) {
					valid = append(valid, c)
				}
			}
		}
	}
	if len(valid) == 0 {
		return geo.Cube{}, ErrNoSpawnPosition
	}
	return valid[w.rng.IntN(len(valid))], nil
}

// Unit returns the unit with the given ID.
func (w *World) Unit(id uint32) (*model.Unit, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	u, ok := w.units.Get(id)
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnitNotFound)
	}
	return u, nil
}

// UnitCount returns the number of living units.
func (w *World) UnitCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.units.Len()
}

// Snapshots returns the state of every unit in spawn order.
func (w *World) Snapshots() []model.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]model.Snapshot, 0, w.units.Len())
	for el := w.units.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.Snapshot())
	}
	return out
}

// UnitsAround returns the units standing in c or one of its neighbors,
// excluding exclude.
func (w *World) UnitsAround(c geo.Cube, exclude uint32) []*model.Unit {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*model.Unit
	for el := w.units.Front(); el != nil; el = el.Next() {
		u := el.Value
		if u.ID() == exclude {
			continue
		}
		if uc := u.Cube(); uc == c || uc.IsAdjacent(c) {
			out = append(out, u)
		}
	}
	return out
}

// SetSolid fills c. Units standing on it start falling on the next tick.
func (w *World) SetSolid(c geo.Cube) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.grid.SetSolid(c)
}

// SetPassable clears c. Units it supported start falling on the next tick.
func (w *World) SetPassable(c geo.Cube) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.grid.SetPassable(c)
}

// Command runs fn on unit id under the world lock, so it does not race with
// AdvanceTime. It is the entry point for activity requests from outside the
// tick goroutine.
func (w *World) Command(id uint32, fn func(u *model.Unit) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	u, ok := w.units.Get(id)
	if !ok {
		return fmt.Errorf("unit %d: %w", id, ErrUnitNotFound)
	}
	return fn(u)
}

// Attack makes attacker strike defender.
func (w *World) Attack(attackerID, defenderID uint32) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.units.Get(attackerID)
	if !ok {
		return fmt.Errorf("attacker %d: %w", attackerID, ErrUnitNotFound)
	}
	d, ok := w.units.Get(defenderID)
	if !ok {
		return fmt.Errorf("defender %d: %w", defenderID, ErrUnitNotFound)
	}
	return a.Controller().Attack(d)
}

// AdvanceTime advances every unit by dt simulated seconds, then removes the
// units that died. dt must lie in [0, maxDt].
func (w *World) AdvanceTime(dt float64) error {
	if dt < 0 || dt > w.maxDt {
		return fmt.Errorf("advance %g (max %g): %w", dt, w.maxDt, ErrInvalidDuration)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var dead []uint32
	for el := w.units.Front(); el != nil; el = el.Next() {
		el.Value.Advance(dt)
	}
	for el := w.units.Front(); el != nil; el = el.Next() {
		if !el.Value.IsAlive() {
			dead = append(dead, el.Key)
		}
	}
	for _, id := range dead {
		u, _ := w.units.Get(id)
		w.units.Delete(id)
		slog.Info("unit died",
			"id", id,
			"name", u.Name(),
			"cube", u.Cube())
	}

	w.time += dt
	return nil
}
