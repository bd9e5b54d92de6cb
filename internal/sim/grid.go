package sim

import (
	"math"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

// maxGridCells caps the cell array; tiny radii in a large world get coarser cells instead
const maxGridCells = 1 << 22

const noEntity int32 = -1

// BroadPhase produces candidate pairs from the current positions
type BroadPhase interface {
	Rebuild(p Positions)
	ForEachCandidatePair(visit func(i, j int))
}

// NewBroadPhase returns the candidate source selected by kind
func NewBroadPhase(kind config.BroadPhase, world config.World, maxRadius float64, n int) (BroadPhase, error) {
	switch kind {
	case config.BroadPhaseGrid:
		return NewGrid(world, maxRadius, n), nil
	case config.BroadPhaseBrute:
		return &BruteForce{}, nil
	}
	return nil, kind.Validate()
}

// Grid is a uniform spatial partition rebuilt from scratch every tick.
// Cells are an implicit multi-map: cellHead[c] starts a singly linked chain through nextInCell.
// Cell side is at least twice the largest radius, so overlapping circles always share a cell
// or sit in 8-connected neighbour cells.
type Grid struct {
	world    config.World
	cellSize float64
	width    int
	height   int

	cellHead   []int32
	nextInCell []int32
}

// NewGrid sizes a grid for entities of at most maxRadius in world
func NewGrid(world config.World, maxRadius float64, n int) *Grid {
	cellSize := 2 * maxRadius
	fw, fh := gridDims(world, cellSize)
	if !(fw*fh <= maxGridCells) {
		// fw*fh may be +Inf for extreme radii; size from the area instead
		cellSize = max(cellSize, math.Sqrt(world.Width()*world.Height()/maxGridCells))
		fw, fh = gridDims(world, cellSize)
		for fw*fh > maxGridCells {
			cellSize *= 1.0625
			fw, fh = gridDims(world, cellSize)
		}
	}
	width, height := int(fw), int(fh)

	return &Grid{
		world:      world,
		cellSize:   cellSize,
		width:      width,
		height:     height,
		cellHead:   make([]int32, width*height),
		nextInCell: make([]int32, n),
	}
}

// gridDims returns the cell counts along x and y as floats so callers can cap them before converting
func gridDims(w config.World, cellSize float64) (float64, float64) {
	return max(1, math.Ceil(w.Width()/cellSize)), max(1, math.Ceil(w.Height()/cellSize))
}

// CellSize returns the side of one square cell
func (g *Grid) CellSize() float64 { return g.cellSize }

// Dims returns the number of cells along x and y
func (g *Grid) Dims() (int, int) { return g.width, g.height }

// CellOf returns the clamped cell coordinates of a world point
func (g *Grid) CellOf(x, y float64) (int, int) {
	cx := int(math.Floor((x - g.world.XMin) / g.cellSize))
	cy := int(math.Floor((y - g.world.YMin) / g.cellSize))
	return clampInt(cx, 0, g.width-1), clampInt(cy, 0, g.height-1)
}

// Rebuild clears every cell and prepends each entity to the chain of its cell. O(n), no allocation
// unless the population size changed.
func (g *Grid) Rebuild(p Positions) {
	n := p.Len()
	if len(g.nextInCell) != n {
		g.nextInCell = make([]int32, n)
	}
	for c := range g.cellHead {
		g.cellHead[c] = noEntity
	}

	for i := 0; i < n; i++ {
		x, y := p.Position(i)
		cx, cy := g.CellOf(x, y)
		c := cx + cy*g.width
		g.nextInCell[i] = g.cellHead[c]
		g.cellHead[c] = int32(i)
	}
}

// ForEachCandidatePair visits every unordered pair sharing a cell, then every pair between a cell
// and its forward neighbours (+x,0), (0,+y), (+x,+y), (-x,+y). Each adjacency belongs to exactly
// one of its two cells, so no pair is visited twice.
func (g *Grid) ForEachCandidatePair(visit func(i, j int)) {
	w, h := g.width, g.height
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			c := cx + cy*w
			if g.cellHead[c] == noEntity {
				continue
			}
			g.visitWithin(c, visit)

			if cx+1 < w {
				g.visitAcross(c, c+1, visit)
			}
			if cy+1 < h {
				g.visitAcross(c, c+w, visit)
				if cx+1 < w {
					g.visitAcross(c, c+w+1, visit)
				}
				if cx > 0 {
					g.visitAcross(c, c+w-1, visit)
				}
			}
		}
	}
}

func (g *Grid) visitWithin(c int, visit func(i, j int)) {
	for i := g.cellHead[c]; i != noEntity; i = g.nextInCell[i] {
		for j := g.nextInCell[i]; j != noEntity; j = g.nextInCell[j] {
			visit(int(i), int(j))
		}
	}
}

func (g *Grid) visitAcross(a, b int, visit func(i, j int)) {
	if g.cellHead[b] == noEntity {
		return
	}
	for i := g.cellHead[a]; i != noEntity; i = g.nextInCell[i] {
		for j := g.cellHead[b]; j != noEntity; j = g.nextInCell[j] {
			visit(int(i), int(j))
		}
	}
}

// BruteForce offers every pair i < j; O(n²), used for small populations and as a reference
type BruteForce struct {
	n int
}

// Rebuild records the population size
func (b *BruteForce) Rebuild(p Positions) { b.n = p.Len() }

// ForEachCandidatePair visits all i < j
func (b *BruteForce) ForEachCandidatePair(visit func(i, j int)) {
	for i := 0; i < b.n; i++ {
		for j := i + 1; j < b.n; j++ {
			visit(i, j)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
