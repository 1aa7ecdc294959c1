package model

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/cubesim/internal/activity"
	"github.com/udisondev/cubesim/internal/combat"
	"github.com/udisondev/cubesim/internal/geo"
	"github.com/udisondev/cubesim/internal/kinematics"
)

// DefaultOrientation задаёт направление взгляда нового юнита (радианы).
const DefaultOrientation = math.Pi / 2

// Unit представляет автономный юнит в кубическом мире.
// Хранит позицию, ориентацию, hitpoints/stamina и атрибуты; поведением
// управляет activity.Controller.
//
// mu защищает изменяемое состояние. Controller вызывается только из горутины
// мира.
type Unit struct {
	id    uint32
	name  string
	attrs Attributes

	terrain geo.Terrain
	rng     *rand.Rand
	ctl     *activity.Controller

	defaultBehavior atomic.Bool

	mu          sync.RWMutex
	position    mgl64.Vec3
	orientation float64
	hitpoints   float64
	stamina     float64
	maxPoints   float64
}

// NewUnit создаёт юнит в центре куба at.
// Hitpoints и stamina устанавливаются равными максимальным.
func NewUnit(id uint32, name string, at geo.Cube, attrs Attributes, terrain geo.Terrain, rng *rand.Rand) (*Unit, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, fmt.Errorf("unit %q: %w", name, err)
	}
	if !terrain.IsValidPosition(at) {
		return nil, fmt.Errorf("unit %q at %s: %w", name, at, geo.ErrInvalidPosition)
	}

	maxPoints := kinematics.MaxPoints(attrs.Body())
	u := &Unit{
		id:          id,
		name:        name,
		attrs:       attrs,
		terrain:     terrain,
		rng:         rng,
		position:    at.Center(),
		orientation: DefaultOrientation,
		hitpoints:   maxPoints,
		stamina:     maxPoints,
		maxPoints:   maxPoints,
	}
	u.ctl = activity.NewController(u)
	return u, nil
}

func (u *Unit) ID() uint32 { return u.id }
func (u *Unit) Name() string { return u.name }
func (u *Unit) Attributes() Attributes { return u.attrs }
func (u *Unit) Body() kinematics.Body { return u.attrs.Body() }
func (u *Unit) Terrain() geo.Terrain { return u.terrain }
func (u *Unit) Rand() *rand.Rand { return u.rng }
func (u *Unit) Controller() *activity.Controller { return u.ctl }

// DefaultBehavior сообщает, выбирает ли юнит активности сам.
func (u *Unit) DefaultBehavior() bool {
	return u.defaultBehavior.Load()
}

// SetDefaultBehavior включает или выключает самостоятельное поведение.
// Новое значение подхватывается при следующем запуске Idle.
func (u *Unit) SetDefaultBehavior(on bool) {
	u.defaultBehavior.Store(on)
}

// Position возвращает точную позицию юнита.
func (u *Unit) Position() mgl64.Vec3 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.position
}

// SetPosition перемещает юнит.
func (u *Unit) SetPosition(p mgl64.Vec3) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.position = p
}

// Cube возвращает куб, в котором находится юнит.
func (u *Unit) Cube() geo.Cube {
	return geo.CubeOf(u.Position())
}

// Orientation возвращает направление взгляда в радианах.
func (u *Unit) Orientation() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.orientation
}

// SetOrientation устанавливает направление взгляда.
func (u *Unit) SetOrientation(o float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.orientation = o
}

// Hitpoints возвращает текущие hitpoints.
func (u *Unit) Hitpoints() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.hitpoints
}

// MaxHitpoints возвращает максимальные hitpoints.
func (u *Unit) MaxHitpoints() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.maxPoints
}

// SetHitpoints устанавливает hitpoints с валидацией (clamp 0..max).
func (u *Unit) SetHitpoints(hp float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.hitpoints = clamp(hp, u.maxPoints)
}

// RemoveHitpoints снимает n hitpoints, не опуская ниже нуля.
func (u *Unit) RemoveHitpoints(n float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.hitpoints = clamp(u.hitpoints-n, u.maxPoints)
}

// IsAlive сообщает, остались ли у юнита hitpoints.
func (u *Unit) IsAlive() bool {
	return u.Hitpoints() > 0
}

// Stamina возвращает текущую stamina.
func (u *Unit) Stamina() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.stamina
}

// MaxStamina возвращает максимальную stamina.
func (u *Unit) MaxStamina() float64 {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.maxPoints
}

// SetStamina устанавливает stamina с валидацией (clamp 0..max).
func (u *Unit) SetStamina(st float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stamina = clamp(st, u.maxPoints)
}

func clamp(v, top float64) float64 {
	return max(0, min(v, top))
}

// Advance продвигает текущую активность юнита на dt. Мёртвый юнит не действует.
func (u *Unit) Advance(dt float64) {
	if !u.IsAlive() {
		return
	}
	u.ctl.Advance(dt)
}

// Defend resolves a blow from attacker: the unit dodges to a random adjacent
// cube, blocks, or loses hitpoints. A dodge with nowhere to go counts as a
// block.
func (u *Unit) Defend(attacker activity.Unit) {
	res := combat.Resolve(u.rng, attacker.Body(), u.Body())
	if res.Outcome == combat.Dodged && !u.dodge() {
		res.Outcome = combat.Blocked
	}
	if res.Outcome == combat.Hit {
		u.RemoveHitpoints(res.Damage)
	}

	if activity.IsDebugEnabled() {
		slog.Debug("blow resolved",
			"attacker", attacker.Name(),
			"defender", u.name,
			"outcome", res.Outcome,
			"damage", res.Damage,
			"hitpoints", u.Hitpoints())
	}
}

// dodge jumps to a random valid neighbor cube on the same level.
func (u *Unit) dodge() bool {
	if u.ctl.IsFalling() {
		return false
	}
	from := u.Cube()
	var options []geo.Cube
	for _, c := range u.terrain.NeighborCubes(from) {
		if c.Z == from.Z && u.terrain.IsValidPosition(c) {
			options = append(options, c)
		}
	}
	if len(options) == 0 {
		return false
	}
	to := options[u.rng.IntN(len(options))]
	u.SetPosition(to.Center())
	u.ctl.Displaced()
	return true
}

// Snapshot содержит копию наблюдаемого состояния юнита для отчётов.
type Snapshot struct {
	ID          uint32
	Name        string
	Position    mgl64.Vec3
	Orientation float64
	Hitpoints   float64
	Stamina     float64
	MaxPoints   float64
	Activity    activity.Kind
}

// Snapshot возвращает копию состояния. Activity читается без блокировки
// и должен вызываться из горутины мира.
func (u *Unit) Snapshot() Snapshot {
	kind := u.ctl.CurrentKind()
	u.mu.RLock()
	defer u.mu.RUnlock()
	return Snapshot{
		ID:          u.id,
		Name:        u.name,
		Position:    u.position,
		Orientation: u.orientation,
		Hitpoints:   u.hitpoints,
		Stamina:     u.stamina,
		MaxPoints:   u.maxPoints,
		Activity:    kind,
	}
}
