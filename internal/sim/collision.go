package sim

import "math"

// Contact describes what Collide did to a pair
type Contact uint8

const (
	NoContact  Contact = iota // disjoint, or coincident centres
	Separated                 // overlap removed, bodies already moving apart
	Bounced                   // overlap removed and elastic impulse applied
)

// Collide is the narrow phase for two bodies: it removes any overlap, weighting each body's
// displacement by the other body's mass, and applies a frictionless elastic impulse along the
// contact normal when the bodies approach. Coincident centres have no normal and are skipped.
func Collide(a, b *Body) Contact {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist2 := dx*dx + dy*dy
	rSum := a.Radius + b.Radius

	if dist2 >= rSum*rSum || dist2 <= 0 {
		return NoContact
	}

	dist := math.Sqrt(dist2)
	nx := dx / dist
	ny := dy / dist

	m1, m2 := a.Mass, b.Mass
	mSum := m1 + m2

	overlap := rSum - dist
	move := overlap / mSum
	a.X -= move * m2 * nx
	a.Y -= move * m2 * ny
	b.X += move * m1 * nx
	b.Y += move * m1 * ny

	// Closing speed along the normal, positive while approaching
	vn := (a.VX-b.VX)*nx + (a.VY-b.VY)*ny
	if vn <= 0 {
		return Separated
	}

	impulse := 2 * vn / mSum
	a.VX -= impulse * m2 * nx
	a.VY -= impulse * m2 * ny
	b.VX += impulse * m1 * nx
	b.VY += impulse * m1 * ny
	return Bounced
}

// Resolver applies Collide to candidate pairs held in a store and counts outcomes
type Resolver struct {
	store Store

	Tests    int
	Contacts int
	Impulses int
}

// NewResolver binds a resolver to a store
func NewResolver(s Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve runs the narrow phase on entities i and j and writes back any correction.
// Returns true if the pair overlapped.
func (r *Resolver) Resolve(i, j int) bool {
	r.Tests++
	a, b := r.store.Body(i), r.store.Body(j)
	switch Collide(&a, &b) {
	case NoContact:
		return false
	case Bounced:
		r.Impulses++
		r.store.SetVelocity(i, a.VX, a.VY)
		r.store.SetVelocity(j, b.VX, b.VY)
	}
	r.Contacts++
	r.store.SetPosition(i, a.X, a.Y)
	r.store.SetPosition(j, b.X, b.Y)
	return true
}

// Reset zeroes the counters
func (r *Resolver) Reset() {
	r.Tests, r.Contacts, r.Impulses = 0, 0, 0
}
