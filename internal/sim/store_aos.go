package sim

import "github.com/olivierh59500/circle-collide-go/internal/config"

// circle is one interleaved record holding every attribute of an entity
type circle struct {
	x, y   float64
	vx, vy float64
	paint  Paint
	radius float64
	mass   float64
}

// recordStore is the array-of-records layout: one contiguous arena of full records
type recordStore struct {
	circles []circle
}

func newRecordStore(n int) *recordStore {
	return &recordStore{circles: make([]circle, n)}
}

func (s *recordStore) Len() int              { return len(s.circles) }
func (s *recordStore) Layout() config.Layout { return config.LayoutAoS }

func (s *recordStore) Entity(i int) Entity {
	c := &s.circles[i]
	return Entity{
		Body:  Body{X: c.x, Y: c.y, VX: c.vx, VY: c.vy, Radius: c.radius, Mass: c.mass},
		Paint: c.paint,
	}
}

func (s *recordStore) SetEntity(i int, e Entity) {
	s.circles[i] = circle{
		x: e.X, y: e.Y,
		vx: e.VX, vy: e.VY,
		paint:  e.Paint,
		radius: e.Radius,
		mass:   MassOf(e.Radius),
	}
}

func (s *recordStore) Body(i int) Body {
	c := &s.circles[i]
	return Body{X: c.x, Y: c.y, VX: c.vx, VY: c.vy, Radius: c.radius, Mass: c.mass}
}

func (s *recordStore) Position(i int) (float64, float64) {
	c := &s.circles[i]
	return c.x, c.y
}

func (s *recordStore) SetPosition(i int, x, y float64) {
	c := &s.circles[i]
	c.x, c.y = x, y
}

func (s *recordStore) Velocity(i int) (float64, float64) {
	c := &s.circles[i]
	return c.vx, c.vy
}

func (s *recordStore) SetVelocity(i int, vx, vy float64) {
	c := &s.circles[i]
	c.vx, c.vy = vx, vy
}

func (s *recordStore) Radius(i int) float64 { return s.circles[i].radius }
func (s *recordStore) Mass(i int) float64   { return s.circles[i].mass }
func (s *recordStore) Paint(i int) Paint    { return s.circles[i].paint }
