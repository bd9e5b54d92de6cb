package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

// ErrInvalidEntity is returned for explicit entities the core cannot simulate
var ErrInvalidEntity = errors.New("invalid entity")

// Stats describes the most recent tick
type Stats struct {
	Ticks       uint64
	Reflections int
	Candidates  int
	Contacts    int
	Impulses    int
}

// CircleDrawer is the render collaborator, called once per entity per frame
type CircleDrawer interface {
	FillCircle(x, y, r float64, c RGB)
	FillGradientCircle(x, y, r float64, p Paint)
}

// Simulation owns a fixed population and runs one collision tick per Step
type Simulation struct {
	cfg        config.Config
	store      Store
	integrator Integrator
	reflector  BoundaryReflector
	broad      BroadPhase
	resolver   *Resolver
	visit      func(i, j int)
	stats      Stats
}

// New validates cfg and builds a randomly populated simulation. All randomness comes from rng.
func New(cfg config.Config, rng *rand.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	painter, err := NewPainter(cfg.Palette, cfg.World, cfg.Seed)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(cfg.Layout, cfg.Count)
	if err != nil {
		return nil, err
	}
	Populate(store, cfg, rng, painter)
	return build(cfg, store)
}

// NewWithEntities builds a simulation from explicit state; cfg.Count is replaced by len(entities)
// and mass is re-derived from each radius. Radii must be positive and no larger than cfg.MaxRadius.
func NewWithEntities(cfg config.Config, entities []Entity) (*Simulation, error) {
	cfg.Count = len(entities)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, err := NewStore(cfg.Layout, len(entities))
	if err != nil {
		return nil, err
	}
	for i, e := range entities {
		if !(e.Radius > 0) || e.Radius > cfg.MaxRadius || math.IsInf(e.Radius, 0) {
			return nil, fmt.Errorf("%w: entity %d radius %g outside (0,%g]", ErrInvalidEntity, i, e.Radius, cfg.MaxRadius)
		}
		store.SetEntity(i, e)
	}
	return build(cfg, store)
}

func build(cfg config.Config, store Store) (*Simulation, error) {
	broad, err := NewBroadPhase(cfg.BroadPhase, cfg.World, cfg.MaxRadius, store.Len())
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:        cfg,
		store:      store,
		integrator: NewIntegrator(store),
		reflector:  NewBoundaryReflector(store, cfg.World),
		broad:      broad,
		resolver:   NewResolver(store),
	}
	s.visit = s.resolvePair
	return s, nil
}

// Step runs one tick: integrate, reflect off walls, rebuild the broad phase, resolve candidate pairs.
// dt must be finite and positive.
func (s *Simulation) Step(dt float64) {
	s.resolver.Reset()
	s.stats.Candidates = 0

	s.integrator.Advance(dt)
	s.stats.Reflections = s.reflector.Reflect()
	s.broad.Rebuild(s.store)
	s.broad.ForEachCandidatePair(s.visit)

	s.stats.Contacts = s.resolver.Contacts
	s.stats.Impulses = s.resolver.Impulses
	s.stats.Ticks++
}

func (s *Simulation) resolvePair(i, j int) {
	s.stats.Candidates++
	s.resolver.Resolve(i, j)
}

// Render hands every entity to d, solid paints as one colour and the rest as four corners
func (s *Simulation) Render(d CircleDrawer) {
	st := s.store
	for i := 0; i < st.Len(); i++ {
		x, y := st.Position(i)
		r := st.Radius(i)
		p := st.Paint(i)
		if p.Solid() {
			d.FillCircle(x, y, r, p.Corners[0])
		} else {
			d.FillGradientCircle(x, y, r, p)
		}
	}
}

// Store exposes the entity store
func (s *Simulation) Store() Store { return s.store }

// Config returns the configuration the simulation was built with
func (s *Simulation) Config() config.Config { return s.cfg }

// Stats returns counters for the last tick
func (s *Simulation) Stats() Stats { return s.stats }

// Len returns the population size
func (s *Simulation) Len() int { return s.store.Len() }
