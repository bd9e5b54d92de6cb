package sim

import "github.com/olivierh59500/circle-collide-go/internal/config"

// Integrator advances positions from velocities
type Integrator struct {
	store Store
}

// NewIntegrator binds an integrator to a store
func NewIntegrator(s Store) Integrator {
	return Integrator{store: s}
}

// Advance moves every entity by velocity*dt (single explicit substep).
// dt is not validated; supplying a finite positive value is the caller's job.
func (in Integrator) Advance(dt float64) {
	s := in.store
	for i := 0; i < s.Len(); i++ {
		x, y := s.Position(i)
		vx, vy := s.Velocity(i)
		// Conversions force rounding of the product, so no fused multiply-add changes results
		s.SetPosition(i, x+float64(vx*dt), y+float64(vy*dt))
	}
}

// BoundaryReflector keeps entities inside the world rectangle
type BoundaryReflector struct {
	store Store
	world config.World
}

// NewBoundaryReflector binds a reflector to a store and world
func NewBoundaryReflector(s Store, w config.World) BoundaryReflector {
	return BoundaryReflector{store: s, world: w}
}

// Reflect clamps every entity that crosses a wall back inside and negates the velocity on that axis.
// Each axis is checked independently, so a corner hit reflects on both. Returns the number of reflections.
func (b BoundaryReflector) Reflect() int {
	s, w := b.store, b.world
	n := 0
	for i := 0; i < s.Len(); i++ {
		x, y := s.Position(i)
		vx, vy := s.Velocity(i)
		r := s.Radius(i)

		hit := false
		if x-r < w.XMin {
			x, vx, hit = w.XMin+r, -vx, true
			n++
		} else if x+r > w.XMax {
			x, vx, hit = w.XMax-r, -vx, true
			n++
		}
		if y-r < w.YMin {
			y, vy, hit = w.YMin+r, -vy, true
			n++
		} else if y+r > w.YMax {
			y, vy, hit = w.YMax-r, -vy, true
			n++
		}

		if hit {
			s.SetPosition(i, x, y)
			s.SetVelocity(i, vx, vy)
		}
	}
	return n
}
