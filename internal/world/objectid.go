package world

import "sync/atomic"

// UnitIDGenerator generates unique unit IDs.
// ID 0 is reserved (invalid unit).
type UnitIDGenerator struct {
	next atomic.Uint32
}

// NewUnitIDGenerator creates a new ID generator.
func NewUnitIDGenerator() *UnitIDGenerator {
	return &UnitIDGenerator{}
}

// Next generates next unique unit ID.
// Thread-safe via atomic increment.
func (g *UnitIDGenerator) Next() uint32 {
	return g.next.Add(1)
}
