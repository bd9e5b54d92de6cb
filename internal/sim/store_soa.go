package sim

import "github.com/olivierh59500/circle-collide-go/internal/config"

// columnStore is the structure-of-arrays layout: one flat array per field, indexed in parallel
type columnStore struct {
	x, y   []float64
	vx, vy []float64
	radius []float64
	mass   []float64

	// Graphics columns, one per corner
	corners [4][]RGB
}

func newColumnStore(n int) *columnStore {
	s := &columnStore{
		x:      make([]float64, n),
		y:      make([]float64, n),
		vx:     make([]float64, n),
		vy:     make([]float64, n),
		radius: make([]float64, n),
		mass:   make([]float64, n),
	}
	for k := range s.corners {
		s.corners[k] = make([]RGB, n)
	}
	return s
}

func (s *columnStore) Len() int              { return len(s.x) }
func (s *columnStore) Layout() config.Layout { return config.LayoutSoA }

func (s *columnStore) Entity(i int) Entity {
	return Entity{Body: s.Body(i), Paint: s.Paint(i)}
}

func (s *columnStore) SetEntity(i int, e Entity) {
	s.x[i], s.y[i] = e.X, e.Y
	s.vx[i], s.vy[i] = e.VX, e.VY
	s.radius[i] = e.Radius
	s.mass[i] = MassOf(e.Radius)
	for k := range s.corners {
		s.corners[k][i] = e.Paint.Corners[k]
	}
}

func (s *columnStore) Body(i int) Body {
	return Body{X: s.x[i], Y: s.y[i], VX: s.vx[i], VY: s.vy[i], Radius: s.radius[i], Mass: s.mass[i]}
}

func (s *columnStore) Position(i int) (float64, float64) { return s.x[i], s.y[i] }

func (s *columnStore) SetPosition(i int, x, y float64) {
	s.x[i], s.y[i] = x, y
}

func (s *columnStore) Velocity(i int) (float64, float64) { return s.vx[i], s.vy[i] }

func (s *columnStore) SetVelocity(i int, vx, vy float64) {
	s.vx[i], s.vy[i] = vx, vy
}

func (s *columnStore) Radius(i int) float64 { return s.radius[i] }
func (s *columnStore) Mass(i int) float64   { return s.mass[i] }

func (s *columnStore) Paint(i int) Paint {
	var p Paint
	for k := range s.corners {
		p.Corners[k] = s.corners[k][i]
	}
	return p
}
