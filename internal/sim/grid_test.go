package sim

import (
	"math/rand"
	"testing"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

type pairKey [2]int

func orderedPair(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}
	return pairKey{i, j}
}

// randomStore fills a store with n circles, a few of them pinned on or past the walls
func randomStore(t *testing.T, n int, world config.World, minR, maxR float64, seed int64) Store {
	t.Helper()
	s, err := NewStore(config.LayoutSoA, n)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		r := uniform(rng, minR, maxR)
		x := uniform(rng, world.XMin+r, world.XMax-r)
		y := uniform(rng, world.YMin+r, world.YMax-r)
		switch i % 97 {
		case 0:
			x = world.XMax - r
		case 1:
			y = world.YMax
		case 2:
			x, y = world.XMin, world.YMin
		}
		s.SetEntity(i, Entity{Body: Body{X: x, Y: y, Radius: r}})
	}
	return s
}

func overlappingPairs(s Store) map[pairKey]bool {
	out := make(map[pairKey]bool)
	for i := 0; i < s.Len(); i++ {
		a := s.Body(i)
		for j := i + 1; j < s.Len(); j++ {
			b := s.Body(j)
			dx, dy := b.X-a.X, b.Y-a.Y
			rs := a.Radius + b.Radius
			if dx*dx+dy*dy < rs*rs {
				out[pairKey{i, j}] = true
			}
		}
	}
	return out
}

// TestGridCompleteness verifies every overlapping pair is offered exactly once and no pair repeats
func TestGridCompleteness(t *testing.T) {
	worlds := []config.World{
		{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		{XMin: -3, XMax: 2.37, YMin: 5, YMax: 6.1},
	}

	for wi, world := range worlds {
		const maxR = 0.01
		s := randomStore(t, 3000, world, 0.002, maxR, int64(wi+1))
		g := NewGrid(world, maxR, s.Len())
		g.Rebuild(s)

		seen := make(map[pairKey]int)
		g.ForEachCandidatePair(func(i, j int) {
			if i == j {
				t.Fatalf("self pair %d", i)
			}
			seen[orderedPair(i, j)]++
		})

		for k, c := range seen {
			if c != 1 {
				t.Errorf("world %d: pair %v visited %d times", wi, k, c)
			}
		}
		want := overlappingPairs(s)
		if len(want) == 0 {
			t.Fatalf("world %d: population too sparse to test", wi)
		}
		for k := range want {
			if seen[k] != 1 {
				t.Errorf("world %d: overlapping pair %v missed", wi, k)
			}
		}
	}
}

// TestGridDiagonalNeighbour verifies a pair straddling the (-x,+y) corner is found
func TestGridDiagonalNeighbour(t *testing.T) {
	world := config.World{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	g := NewGrid(world, 0.05, 2) // cell side 0.1

	s, _ := NewStore(config.LayoutAoS, 2)
	s.SetEntity(0, Entity{Body: Body{X: 0.51, Y: 0.49, Radius: 0.05}}) // cell (5,4)
	s.SetEntity(1, Entity{Body: Body{X: 0.49, Y: 0.51, Radius: 0.05}}) // cell (4,5)
	g.Rebuild(s)

	count := 0
	g.ForEachCandidatePair(func(i, j int) {
		if orderedPair(i, j) == (pairKey{0, 1}) {
			count++
		}
	})
	if count != 1 {
		t.Errorf("diagonal pair visited %d times, want 1", count)
	}
}

// TestGridDims verifies cell sizing and clamping
func TestGridDims(t *testing.T) {
	world := config.World{XMin: 0, XMax: 1, YMin: 0, YMax: 0.55}
	g := NewGrid(world, 0.05, 0)

	if g.CellSize() != 0.1 {
		t.Errorf("CellSize = %g, want 0.1", g.CellSize())
	}
	if w, h := g.Dims(); w != 10 || h != 6 {
		t.Errorf("Dims = %dx%d, want 10x6", w, h)
	}

	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 0, 0},
		{0.15, 0.25, 1, 2},
		{1, 0.55, 9, 5},
		{1.5, -0.2, 9, 0},
		{-1, 9, 0, 5},
	}
	for _, tt := range tests {
		if cx, cy := g.CellOf(tt.x, tt.y); cx != tt.cx || cy != tt.cy {
			t.Errorf("CellOf(%g,%g) = (%d,%d), want (%d,%d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
}

// TestGridCellCap verifies tiny radii do not allocate an unbounded cell array
func TestGridCellCap(t *testing.T) {
	tests := []struct {
		name   string
		world  config.World
		radius float64
	}{
		{"small radius", config.World{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, 1e-7},
		{"vanishing radius", config.World{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, 1e-300},
		{"wide world", config.World{XMin: -1e6, XMax: 1e6, YMin: 0, YMax: 1}, 1e-5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.world, tt.radius, 0)
			w, h := g.Dims()
			if w < 1 || h < 1 || w*h > maxGridCells {
				t.Errorf("Dims() = %dx%d, cap is %d", w, h, maxGridCells)
			}
			// a cap that fires must still leave more than one cell in a square world
			if tt.world.Width() == tt.world.Height() && w*h < maxGridCells/4 {
				t.Errorf("Dims() = %dx%d, grid collapsed", w, h)
			}
			if g.CellSize() < 2*tt.radius {
				t.Errorf("CellSize %g below twice the max radius", g.CellSize())
			}
			if float64(w)*g.CellSize() < tt.world.Width() || float64(h)*g.CellSize() < tt.world.Height() {
				t.Errorf("%dx%d cells of %g do not cover %v", w, h, g.CellSize(), tt.world)
			}
		})
	}
}

// TestGridRebuildResizes verifies a population change is tolerated
func TestGridRebuildResizes(t *testing.T) {
	world := config.World{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	g := NewGrid(world, 0.05, 1)
	s, _ := NewStore(config.LayoutSplit, 3)
	for i := 0; i < 3; i++ {
		s.SetEntity(i, Entity{Body: Body{X: 0.5, Y: 0.5, Radius: 0.05}})
	}
	g.Rebuild(s)

	pairs := 0
	g.ForEachCandidatePair(func(i, j int) { pairs++ })
	if pairs != 3 {
		t.Errorf("pairs = %d, want 3", pairs)
	}
}

// TestBruteForcePairs verifies the reference broad phase visits all i<j
func TestBruteForcePairs(t *testing.T) {
	s, _ := NewStore(config.LayoutSoA, 6)
	var b BruteForce
	b.Rebuild(s)

	seen := make(map[pairKey]bool)
	b.ForEachCandidatePair(func(i, j int) {
		if i >= j {
			t.Errorf("unordered pair (%d,%d)", i, j)
		}
		seen[pairKey{i, j}] = true
	})
	if len(seen) != 15 {
		t.Errorf("visited %d pairs, want 15", len(seen))
	}
}

// TestNewBroadPhase verifies selection by kind
func TestNewBroadPhase(t *testing.T) {
	world := config.World{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	if bp, err := NewBroadPhase(config.BroadPhaseGrid, world, 0.01, 4); err != nil {
		t.Errorf("grid: %v", err)
	} else if _, ok := bp.(*Grid); !ok {
		t.Errorf("grid kind returned %T", bp)
	}
	if bp, err := NewBroadPhase(config.BroadPhaseBrute, world, 0.01, 4); err != nil {
		t.Errorf("brute: %v", err)
	} else if _, ok := bp.(*BruteForce); !ok {
		t.Errorf("brute kind returned %T", bp)
	}
	if _, err := NewBroadPhase("octree", world, 0.01, 4); err == nil {
		t.Error("expected error for unknown broad phase")
	}
}
