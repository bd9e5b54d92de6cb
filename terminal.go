package main

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/circle-collide-go/internal/config"
	"github.com/olivierh59500/circle-collide-go/internal/fps"
	"github.com/olivierh59500/circle-collide-go/internal/sim"
)

// Terminal cells are roughly twice as tall as they are wide
const cellAspect = 2.0

// Terminal draws the simulation into a tcell screen, one coloured cell per covered character
type Terminal struct {
	screen  tcell.Screen
	sim     *sim.Simulation
	world   config.World
	tps     int
	fixedDT float64
	counter *fps.Counter
	paused  bool

	cols, rows int
	sx, sy     float64 // cells per world unit
}

// NewTerminal initialises a tcell screen for s. Nothing is logged while the screen is active.
func NewTerminal(s *sim.Simulation, counter *fps.Counter) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newTerminalOn(screen, s, counter), nil
}

// newTerminalOn wraps an initialised screen
func newTerminalOn(screen tcell.Screen, s *sim.Simulation, counter *fps.Counter) *Terminal {
	cfg := s.Config()
	t := &Terminal{
		screen:  screen,
		sim:     s,
		world:   cfg.World,
		tps:     cfg.TPS,
		fixedDT: cfg.FixedDT,
		counter: counter,
	}
	t.resize()
	return t
}

// Close restores the terminal
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Run steps and draws at the configured rate until ctx ends or the user quits
func (t *Terminal) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(t.tps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			dt := t.counter.Tick()
			if !t.paused {
				t.sim.Step(stepDT(t.fixedDT, dt))
			}
			t.draw()
		}
	}
}

// handleEvent returns false when the user asked to quit
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				t.paused = !t.paused
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return true
}

func (t *Terminal) resize() {
	t.cols, t.rows = t.screen.Size()
	t.sx, t.sy = terminalScale(t.world, t.cols, t.rows)
}

func (t *Terminal) draw() {
	t.screen.Clear()
	t.sim.Render(t)

	hud := t.counter.OverlayText()
	if t.paused {
		hud += " PAUSED"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range hud {
		t.screen.SetContent(i, 0, r, nil, style)
	}
	t.screen.Show()
}

// FillCircle paints every cell whose centre lies inside the circle
func (t *Terminal) FillCircle(x, y, r float64, c sim.RGB) {
	style := cellStyle(c)
	t.cover(x, y, r, func(_, _ float64) tcell.Style { return style })
}

// FillGradientCircle is FillCircle with each cell sampling the four-corner gradient
func (t *Terminal) FillGradientCircle(x, y, r float64, p sim.Paint) {
	t.cover(x, y, r, func(u, v float64) tcell.Style { return cellStyle(p.At(u, v)) })
}

// cover visits the cells under a circle; circles smaller than a cell still mark their own cell
func (t *Terminal) cover(x, y, r float64, style func(u, v float64) tcell.Style) {
	col := (x - t.world.XMin) * t.sx
	row := (t.world.YMax - y) * t.sy
	rc, rr := r*t.sx, r*t.sy

	c0, c1 := int(math.Floor(col-rc)), int(math.Floor(col+rc))
	r0, r1 := int(math.Floor(row-rr)), int(math.Floor(row+rr))
	drawn := false
	for cy := max(r0, 0); cy <= min(r1, t.rows-1); cy++ {
		for cx := max(c0, 0); cx <= min(c1, t.cols-1); cx++ {
			dx := (float64(cx) + 0.5 - col) / rc
			dy := (float64(cy) + 0.5 - row) / rr
			if dx*dx+dy*dy > 1 {
				continue
			}
			t.screen.SetContent(cx, cy, ' ', nil, style(0.5+dx/2, 0.5+dy/2))
			drawn = true
		}
	}
	if !drawn {
		cx, cy := int(col), int(row)
		if cx >= 0 && cx < t.cols && cy >= 0 && cy < t.rows {
			t.screen.SetContent(cx, cy, ' ', nil, style(0.5, 0.5))
		}
	}
}

func cellStyle(c sim.RGB) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B())))
}

// terminalScale fits the world into cols x rows, keeping circles round on screen
func terminalScale(w config.World, cols, rows int) (sx, sy float64) {
	sx = float64(cols) / w.Width()
	sy = float64(rows) / w.Height()
	if sx > sy*cellAspect {
		sx = sy * cellAspect
	} else {
		sy = sx / cellAspect
	}
	return sx, sy
}
