package sim

// Momentum returns the total linear momentum of the population
func Momentum(s Store) (px, py float64) {
	for i := 0; i < s.Len(); i++ {
		vx, vy := s.Velocity(i)
		m := s.Mass(i)
		px += m * vx
		py += m * vy
	}
	return px, py
}

// KineticEnergy returns the total kinetic energy of the population
func KineticEnergy(s Store) float64 {
	e := 0.0
	for i := 0; i < s.Len(); i++ {
		vx, vy := s.Velocity(i)
		e += 0.5 * s.Mass(i) * (vx*vx + vy*vy)
	}
	return e
}

// Overlaps counts pairs whose circles intersect by more than eps. O(n²), meant for tests and tooling.
func Overlaps(s Store, eps float64) int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		a := s.Body(i)
		for j := i + 1; j < s.Len(); j++ {
			b := s.Body(j)
			dx, dy := b.X-a.X, b.Y-a.Y
			rs := a.Radius + b.Radius - eps
			if rs > 0 && dx*dx+dy*dy < rs*rs {
				n++
			}
		}
	}
	return n
}
