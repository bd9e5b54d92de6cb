package sim

import (
	"fmt"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

// Positions is the read view the broad phase needs
type Positions interface {
	Len() int
	Position(i int) (x, y float64)
}

// Store owns every entity attribute under one physical layout.
// Entities are addressed by a stable index in [0, Len()); the population never changes.
// All access is O(1) and every layout produces identical values for identical writes.
type Store interface {
	Positions
	Layout() config.Layout

	Entity(i int) Entity
	// SetEntity overwrites every attribute of entity i; mass is re-derived from the radius.
	SetEntity(i int, e Entity)

	Body(i int) Body
	SetPosition(i int, x, y float64)
	Velocity(i int) (vx, vy float64)
	SetVelocity(i int, vx, vy float64)
	Radius(i int) float64
	Mass(i int) float64
	Paint(i int) Paint
}

// NewStore allocates a zeroed store of n entities using the given layout
func NewStore(layout config.Layout, n int) (Store, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", config.ErrInvalidCount, n)
	}
	switch layout {
	case config.LayoutAoS:
		return newRecordStore(n), nil
	case config.LayoutSoA:
		return newColumnStore(n), nil
	case config.LayoutSplit:
		return newSplitStore(n), nil
	}
	return nil, layout.Validate()
}

// Snapshot copies every entity out of s, in index order
func Snapshot(s Store) []Entity {
	out := make([]Entity, s.Len())
	for i := range out {
		out[i] = s.Entity(i)
	}
	return out
}
