package sim

import "github.com/olivierh59500/circle-collide-go/internal/config"

// splitStore keeps hot physics records and cold graphics records in two parallel arrays.
// Integration and collision touch only bodies; only rendering reads paints.
type splitStore struct {
	bodies []Body
	paints []Paint
}

func newSplitStore(n int) *splitStore {
	return &splitStore{
		bodies: make([]Body, n),
		paints: make([]Paint, n),
	}
}

func (s *splitStore) Len() int              { return len(s.bodies) }
func (s *splitStore) Layout() config.Layout { return config.LayoutSplit }

func (s *splitStore) Entity(i int) Entity {
	return Entity{Body: s.bodies[i], Paint: s.paints[i]}
}

func (s *splitStore) SetEntity(i int, e Entity) {
	b := e.Body
	b.Mass = MassOf(b.Radius)
	s.bodies[i] = b
	s.paints[i] = e.Paint
}

func (s *splitStore) Body(i int) Body { return s.bodies[i] }

func (s *splitStore) Position(i int) (float64, float64) {
	b := &s.bodies[i]
	return b.X, b.Y
}

func (s *splitStore) SetPosition(i int, x, y float64) {
	b := &s.bodies[i]
	b.X, b.Y = x, y
}

func (s *splitStore) Velocity(i int) (float64, float64) {
	b := &s.bodies[i]
	return b.VX, b.VY
}

func (s *splitStore) SetVelocity(i int, vx, vy float64) {
	b := &s.bodies[i]
	b.VX, b.VY = vx, vy
}

func (s *splitStore) Radius(i int) float64 { return s.bodies[i].Radius }
func (s *splitStore) Mass(i int) float64   { return s.bodies[i].Mass }
func (s *splitStore) Paint(i int) Paint    { return s.paints[i] }
