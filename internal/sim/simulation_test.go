package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

const testDT = 1.0 / 60

func testConfig(layout config.Layout) config.Config {
	cfg := config.Default()
	cfg.Count = 1500
	cfg.MinRadius, cfg.MaxRadius = 0.004, 0.01
	cfg.Layout = layout
	cfg.Seed = 5
	return cfg
}

func newTestSim(t *testing.T, cfg config.Config) *Simulation {
	t.Helper()
	s, err := New(cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

// TestLayoutEquivalence verifies every layout follows a bit-identical trajectory
func TestLayoutEquivalence(t *testing.T) {
	ref := newTestSim(t, testConfig(config.LayoutAoS))
	initial := Snapshot(ref.Store())

	sims := make([]*Simulation, 0, len(config.Layouts))
	for _, layout := range config.Layouts {
		cfg := testConfig(layout)
		s, err := NewWithEntities(cfg, initial)
		if err != nil {
			t.Fatalf("NewWithEntities(%s) error = %v", layout, err)
		}
		sims = append(sims, s)
	}

	for tick := 0; tick < 300; tick++ {
		dt := testDT * (1 + 0.5*math.Sin(float64(tick)))
		for _, s := range sims {
			s.Step(dt)
		}
	}

	want := Snapshot(sims[0].Store())
	for _, s := range sims[1:] {
		got := Snapshot(s.Store())
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("layout %s entity %d = %+v, want %+v", s.Store().Layout(), i, got[i], want[i])
			}
		}
		if s.Stats() != sims[0].Stats() {
			t.Errorf("layout %s stats %+v, want %+v", s.Store().Layout(), s.Stats(), sims[0].Stats())
		}
	}
}

// TestDeterminism verifies two identical runs agree exactly
func TestDeterminism(t *testing.T) {
	cfg := testConfig(config.LayoutSoA)
	a := newTestSim(t, cfg)
	b := newTestSim(t, cfg)

	for tick := 0; tick < 200; tick++ {
		a.Step(testDT)
		b.Step(testDT)
	}

	sa, sb := Snapshot(a.Store()), Snapshot(b.Store())
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("entity %d diverged: %+v vs %+v", i, sa[i], sb[i])
		}
	}
}

// TestPaletteDoesNotAffectPhysics verifies colour choice leaves bodies unchanged
func TestPaletteDoesNotAffectPhysics(t *testing.T) {
	var bodies [][]Body
	for _, p := range []config.Palette{config.PaletteSolid, config.PaletteGradient, config.PaletteNoise} {
		cfg := testConfig(config.LayoutSplit)
		cfg.Palette = p
		s := newTestSim(t, cfg)
		out := make([]Body, s.Len())
		for i := range out {
			out[i] = s.Store().Body(i)
		}
		bodies = append(bodies, out)
	}

	for k := 1; k < len(bodies); k++ {
		for i := range bodies[0] {
			if bodies[k][i] != bodies[0][i] {
				t.Fatalf("palette %d entity %d body differs", k, i)
			}
		}
	}
}

// TestBoundaryConfinement verifies entities stay near the world across many ticks.
// Strict confinement only holds right after reflection (TestReflectionConfinesExactly).
// Overlap correction runs later in the same tick and may push a body past a wall by at most
// its overlap, under 2*MaxRadius, until the next tick reflects it back. The slack is that
// known bound of the tick order, not tolerance for error.
func TestBoundaryConfinement(t *testing.T) {
	cfg := testConfig(config.LayoutSoA)
	cfg.Count = 400
	s := newTestSim(t, cfg)
	slack := 2 * cfg.MaxRadius
	w := cfg.World

	for tick := 0; tick < 500; tick++ {
		s.Step(testDT)
		st := s.Store()
		for i := 0; i < st.Len(); i++ {
			b := st.Body(i)
			if b.X-b.Radius < w.XMin-slack || b.X+b.Radius > w.XMax+slack ||
				b.Y-b.Radius < w.YMin-slack || b.Y+b.Radius > w.YMax+slack {
				t.Fatalf("tick %d entity %d escaped: %+v", tick, i, b)
			}
		}
	}
}

// TestReflectionConfinesExactly verifies the reflector alone leaves nobody outside
func TestReflectionConfinesExactly(t *testing.T) {
	cfg := testConfig(config.LayoutAoS)
	s := newTestSim(t, cfg)
	st := s.Store()
	in := NewIntegrator(st)
	rf := NewBoundaryReflector(st, cfg.World)
	const eps = 1e-12

	for tick := 0; tick < 200; tick++ {
		in.Advance(0.1)
		rf.Reflect()
		for i := 0; i < st.Len(); i++ {
			b := st.Body(i)
			if b.X-b.Radius < -eps || b.X+b.Radius > 1+eps || b.Y-b.Radius < -eps || b.Y+b.Radius > 1+eps {
				t.Fatalf("tick %d entity %d outside after reflect: %+v", tick, i, b)
			}
		}
	}
}

// TestEnergyConserved verifies walls and collisions are both perfectly elastic
func TestEnergyConserved(t *testing.T) {
	for _, bp := range []config.BroadPhase{config.BroadPhaseGrid, config.BroadPhaseBrute} {
		t.Run(string(bp), func(t *testing.T) {
			cfg := testConfig(config.LayoutSplit)
			cfg.Count = 600
			cfg.BroadPhase = bp
			s := newTestSim(t, cfg)

			before := KineticEnergy(s.Store())
			impulses := 0
			for tick := 0; tick < 300; tick++ {
				s.Step(testDT)
				impulses += s.Stats().Impulses
			}
			after := KineticEnergy(s.Store())

			if impulses == 0 {
				t.Fatal("no collisions happened")
			}
			if math.Abs(after-before) > 1e-9*before {
				t.Errorf("kinetic energy %g -> %g", before, after)
			}
		})
	}
}

// TestIsolatedPairConservesMomentum verifies momentum survives a full Step away from the walls
func TestIsolatedPairConservesMomentum(t *testing.T) {
	cfg := testConfig(config.LayoutSoA)
	cfg.MaxRadius = 0.05
	entities := []Entity{
		{Body: Body{X: 0.45, Y: 0.5, VX: 0.3, VY: 0.05, Radius: 0.04}},
		{Body: Body{X: 0.5, Y: 0.51, VX: -0.2, VY: 0, Radius: 0.02}},
	}
	s, err := NewWithEntities(cfg, entities)
	if err != nil {
		t.Fatal(err)
	}

	px, py := Momentum(s.Store())
	s.Step(0.01)
	if s.Stats().Impulses != 1 {
		t.Fatalf("impulses = %d, want 1", s.Stats().Impulses)
	}
	px2, py2 := Momentum(s.Store())
	if math.Abs(px-px2) > 1e-15 || math.Abs(py-py2) > 1e-15 {
		t.Errorf("momentum (%g,%g) -> (%g,%g)", px, py, px2, py2)
	}
	if Overlaps(s.Store(), 1e-12) != 0 {
		t.Error("pair still overlapping after step")
	}
}

// TestStepStats verifies per-tick counters
func TestStepStats(t *testing.T) {
	cfg := testConfig(config.LayoutSoA)
	cfg.MaxRadius = 0.1
	entities := []Entity{
		{Body: Body{X: 0.5, Y: 0.5, VX: 1, Radius: 0.1}},
		{Body: Body{X: 0.65, Y: 0.5, VX: -1, Radius: 0.1}},
		{Body: Body{X: 0.95, Y: 0.1, VX: 1, Radius: 0.1}},
	}
	s, err := NewWithEntities(cfg, entities)
	if err != nil {
		t.Fatal(err)
	}

	s.Step(0.001)
	st := s.Stats()
	if st.Ticks != 1 || st.Reflections != 1 || st.Contacts != 1 || st.Impulses != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.Candidates < 1 {
		t.Errorf("candidates = %d", st.Candidates)
	}
}

// TestNewWithEntitiesRejects verifies explicit state validation
func TestNewWithEntitiesRejects(t *testing.T) {
	cfg := testConfig(config.LayoutSoA)
	tests := []struct {
		name string
		e    Entity
	}{
		{"zero radius", Entity{Body: Body{X: 0.5, Y: 0.5}}},
		{"negative radius", Entity{Body: Body{X: 0.5, Y: 0.5, Radius: -0.001}}},
		{"nan radius", Entity{Body: Body{X: 0.5, Y: 0.5, Radius: math.NaN()}}},
		{"too large", Entity{Body: Body{X: 0.5, Y: 0.5, Radius: cfg.MaxRadius * 2}}},
	}
	for _, tt := range tests {
		if _, err := NewWithEntities(cfg, []Entity{tt.e}); !errors.Is(err, ErrInvalidEntity) {
			t.Errorf("%s: error = %v, want ErrInvalidEntity", tt.name, err)
		}
	}

	if _, err := NewWithEntities(cfg, nil); !errors.Is(err, config.ErrInvalidCount) {
		t.Errorf("empty population error = %v", err)
	}
}

// TestNewRejectsBadConfig verifies configuration errors surface from New
func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig("tiles")
	if _, err := New(cfg, rand.New(rand.NewSource(1))); !errors.Is(err, config.ErrUnknownLayout) {
		t.Errorf("New() error = %v, want ErrUnknownLayout", err)
	}
}

type recordingDrawer struct {
	solid, gradient int
}

func (d *recordingDrawer) FillCircle(x, y, r float64, c RGB)           { d.solid++ }
func (d *recordingDrawer) FillGradientCircle(x, y, r float64, p Paint) { d.gradient++ }

// TestRender verifies the drawer is called once per entity with the right variant
func TestRender(t *testing.T) {
	cfg := testConfig(config.LayoutSoA)
	cfg.Count = 50

	s := newTestSim(t, cfg)
	var d recordingDrawer
	s.Render(&d)
	if d.solid != 50 || d.gradient != 0 {
		t.Errorf("solid palette draws: solid=%d gradient=%d", d.solid, d.gradient)
	}

	cfg.Palette = config.PaletteGradient
	s = newTestSim(t, cfg)
	d = recordingDrawer{}
	s.Render(&d)
	if d.solid+d.gradient != 50 || d.gradient == 0 {
		t.Errorf("gradient palette draws: solid=%d gradient=%d", d.solid, d.gradient)
	}
}
