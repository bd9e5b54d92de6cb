package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/circle-collide-go/internal/config"
	"github.com/olivierh59500/circle-collide-go/internal/fps"
	"github.com/olivierh59500/circle-collide-go/internal/sim"
)

// Rendering constants
const (
	MinSegments    = 12
	MaxSegments    = 48
	maxBatchVerts  = 1 << 15
	hudLineSpacing = 16
)

// Game drives a simulation from Ebitengine's update loop and draws it each frame
type Game struct {
	sim      *sim.Simulation
	world    config.World
	fixedDT  float64
	counter  *fps.Counter
	reporter *fps.Reporter

	Paused  bool
	StepOne bool // advance one tick while paused
	ShowHUD bool

	width, height int
	scale         float64

	// Frame-local draw state
	dst      *ebiten.Image
	white    *ebiten.Image // source texture for vertex-coloured triangles
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewGame sizes the screen so the world keeps its aspect ratio at cfg.WindowSize pixels wide
func NewGame(s *sim.Simulation, counter *fps.Counter, reporter *fps.Reporter) *Game {
	cfg := s.Config()
	w := cfg.World
	width := cfg.WindowSize
	height := max(1, int(math.Round(float64(width)*w.Height()/w.Width())))
	return &Game{
		sim:      s,
		world:    w,
		fixedDT:  cfg.FixedDT,
		counter:  counter,
		reporter: reporter,
		ShowHUD:  true,
		width:    width,
		height:   height,
		scale:    float64(width) / w.Width(),
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if g.handleInput() {
		return ebiten.Termination
	}

	dt := g.counter.Tick()
	if g.Paused && !g.StepOne {
		return nil
	}
	g.StepOne = false

	t0 := time.Now()
	g.sim.Step(stepDT(g.fixedDT, dt))
	g.reporter.Record(time.Since(t0), g.sim.Stats())
	g.reporter.Flush(time.Now())
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	g.dst = screen
	g.sim.Render(g)
	g.flushTriangles()
	g.dst = nil

	if g.ShowHUD {
		g.drawHUD(screen)
	}
}

// Layout returns the screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// handleInput processes keyboard input; returns true when the user asked to quit
func (g *Game) handleInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) && g.Paused {
		g.StepOne = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.ShowHUD = !g.ShowHUD
	}
	return false
}

// FillCircle queues a solid circle in the same batch as gradient circles, keeping entity order
func (g *Game) FillCircle(x, y, r float64, c sim.RGB) {
	g.FillGradientCircle(x, y, r, sim.SolidPaint(c))
}

// FillGradientCircle queues a triangle fan whose vertex colours interpolate the four corners
func (g *Game) FillGradientCircle(x, y, r float64, p sim.Paint) {
	cx, cy := g.worldToScreen(x, y)
	sr := r * g.scale
	segments := clampSegments(sr)

	if len(g.vertices)+segments+1 > maxBatchVerts {
		g.flushTriangles()
	}

	base := uint16(len(g.vertices))
	g.vertices = append(g.vertices, paintVertex(p, cx, cy, 0.5, 0.5))
	for k := 0; k < segments; k++ {
		a := 2 * math.Pi * float64(k) / float64(segments)
		dx, dy := math.Cos(a), math.Sin(a)
		u, v := 0.5+dx/2, 0.5+dy/2
		g.vertices = append(g.vertices, paintVertex(p, cx+dx*sr, cy+dy*sr, u, v))
	}
	for k := 0; k < segments; k++ {
		next := (k+1)%segments + 1
		g.indices = append(g.indices, base, base+uint16(k+1), base+uint16(next))
	}
}

func (g *Game) flushTriangles() {
	if len(g.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	g.dst.DrawTriangles(g.vertices, g.indices, g.whitePixel(), op)
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
}

func (g *Game) whitePixel() *ebiten.Image {
	if g.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		g.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return g.white
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	for i, l := range g.hudLines() {
		text.Draw(screen, l, basicfont.Face7x13, 8, hudLineSpacing*(i+1), color.White)
	}
}

func (g *Game) hudLines() []string {
	st := g.sim.Stats()
	cfg := g.sim.Config()
	px, py := sim.Momentum(g.sim.Store())
	lines := []string{
		g.counter.OverlayText(),
		fmt.Sprintf("n=%d layout=%s broad=%s", g.sim.Len(), cfg.Layout, cfg.BroadPhase),
		fmt.Sprintf("pairs=%d contacts=%d", st.Candidates, st.Contacts),
		fmt.Sprintf("energy=%.6g momentum=(%.3g,%.3g)", sim.KineticEnergy(g.sim.Store()), px, py),
	}
	if g.Paused {
		lines = append(lines, "PAUSED (. to step)")
	}
	return lines
}

// worldToScreen maps world coordinates (y up) to pixels (y down)
func (g *Game) worldToScreen(x, y float64) (float64, float64) {
	return (x - g.world.XMin) * g.scale, (g.world.YMax - y) * g.scale
}

func paintVertex(p sim.Paint, x, y, u, v float64) ebiten.Vertex {
	c := p.At(u, v).RGBA()
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}

// clampSegments picks a fan resolution from the on-screen radius
func clampSegments(screenRadius float64) int {
	n := int(screenRadius * 2)
	if n < MinSegments {
		return MinSegments
	}
	if n > MaxSegments {
		return MaxSegments
	}
	return n
}
