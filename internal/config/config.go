package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"
)

// Defaults
const (
	DefaultCount          = 20000
	DefaultMinRadius      = 0.001
	DefaultMaxRadius      = 0.005
	DefaultMaxSpeed       = 0.25
	DefaultWindowSize     = 800
	DefaultTPS            = 60
	DefaultReportInterval = time.Second
)

var (
	ErrInvalidCount      = errors.New("entity count must be positive")
	ErrInvalidWorld      = errors.New("world bounds must be finite with min < max")
	ErrInvalidRadius     = errors.New("radius range must satisfy 0 < min <= max")
	ErrInvalidSpeed      = errors.New("max speed must be finite and non-negative")
	ErrWorldTooSmall     = errors.New("world cannot fit an entity of max radius")
	ErrUnknownLayout     = errors.New("unknown storage layout")
	ErrUnknownPalette    = errors.New("unknown palette")
	ErrUnknownRenderer   = errors.New("unknown renderer")
	ErrUnknownBroadPhase = errors.New("unknown broad phase")
)

// Layout selects how entity attributes are physically stored
type Layout string

const (
	LayoutAoS   Layout = "aos"   // one record per entity
	LayoutSoA   Layout = "soa"   // one flat array per field
	LayoutSplit Layout = "split" // hot physics records + cold graphics records
)

// Layouts lists every supported layout in a stable order
var Layouts = []Layout{LayoutAoS, LayoutSoA, LayoutSplit}

// BroadPhase selects how candidate pairs are produced
type BroadPhase string

const (
	BroadPhaseGrid  BroadPhase = "grid"
	BroadPhaseBrute BroadPhase = "brute"
)

// Palette selects how entity colours are generated
type Palette string

const (
	PaletteSolid    Palette = "solid"
	PaletteGradient Palette = "gradient"
	PaletteNoise    Palette = "noise"
)

// Renderer selects the front end
type Renderer string

const (
	RenderWindow   Renderer = "window"
	RenderTerminal Renderer = "term"
	RenderNone     Renderer = "none"
)

// World is the axis-aligned simulation rectangle
type World struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width of the world along x
func (w World) Width() float64 { return w.XMax - w.XMin }

// Height of the world along y
func (w World) Height() float64 { return w.YMax - w.YMin }

// String renders the world as "xmin,xmax,ymin,ymax"
func (w World) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", w.XMin, w.XMax, w.YMin, w.YMax)
}

// Config is the immutable launch configuration of one simulation run.
// It is passed by value; nothing in the simulation keeps a reference to the caller's copy.
type Config struct {
	Count      int
	Render     Renderer
	World      World
	MinRadius  float64
	MaxRadius  float64
	MaxSpeed   float64
	Seed       int64 // 0 derives a seed from the clock
	Layout     Layout
	BroadPhase BroadPhase
	Palette    Palette

	FixedDT        float64       // seconds per tick, 0 uses measured frame time
	Duration       time.Duration // headless run length, 0 runs until interrupted
	ReportInterval time.Duration
	WindowSize     int
	TPS            int
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Count:          DefaultCount,
		Render:         RenderWindow,
		World:          World{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		MinRadius:      DefaultMinRadius,
		MaxRadius:      DefaultMaxRadius,
		MaxSpeed:       DefaultMaxSpeed,
		Layout:         LayoutSoA,
		BroadPhase:     BroadPhaseGrid,
		Palette:        PaletteSolid,
		ReportInterval: DefaultReportInterval,
		WindowSize:     DefaultWindowSize,
		TPS:            DefaultTPS,
	}
}

// Validate checks every field the simulation core depends on
func (c Config) Validate() error {
	for _, g := range groups {
		if err := g.check(c); err != nil {
			return err
		}
	}
	return nil
}

// group is one independently repairable set of options
type group struct {
	check   func(Config) error
	restore func(c *Config, d Config)
}

// groups runs in dependency order: the fit check assumes a valid world and radius range
var groups = []group{
	{checkCount, func(c *Config, d Config) { c.Count = d.Count }},
	{checkWorld, func(c *Config, d Config) { c.World = d.World }},
	{checkRadius, func(c *Config, d Config) { c.MinRadius, c.MaxRadius = d.MinRadius, d.MaxRadius }},
	{checkFit, restoreFit},
	{checkSpeed, func(c *Config, d Config) { c.MaxSpeed = d.MaxSpeed }},
	{func(c Config) error { return c.Layout.Validate() }, func(c *Config, d Config) { c.Layout = d.Layout }},
	{func(c Config) error { return c.BroadPhase.Validate() }, func(c *Config, d Config) { c.BroadPhase = d.BroadPhase }},
	{func(c Config) error { return c.Palette.Validate() }, func(c *Config, d Config) { c.Palette = d.Palette }},
	{func(c Config) error { return c.Render.Validate() }, func(c *Config, d Config) { c.Render = d.Render }},
}

func checkCount(c Config) error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, c.Count)
	}
	return nil
}

func checkWorld(c Config) error {
	w := c.World
	if !finite(w.XMin, w.XMax, w.YMin, w.YMax) || w.XMin >= w.XMax || w.YMin >= w.YMax {
		return fmt.Errorf("%w: %s", ErrInvalidWorld, w)
	}
	return nil
}

func checkRadius(c Config) error {
	if !finite(c.MinRadius, c.MaxRadius) || c.MinRadius <= 0 || c.MinRadius > c.MaxRadius {
		return fmt.Errorf("%w: [%g,%g]", ErrInvalidRadius, c.MinRadius, c.MaxRadius)
	}
	return nil
}

func checkFit(c Config) error {
	w := c.World
	if 2*c.MaxRadius > w.Width() || 2*c.MaxRadius > w.Height() {
		return fmt.Errorf("%w: radius %g in %s", ErrWorldTooSmall, c.MaxRadius, w)
	}
	return nil
}

// restoreFit puts the default radius range back, and the default world too if even that does not fit
func restoreFit(c *Config, d Config) {
	c.MinRadius, c.MaxRadius = d.MinRadius, d.MaxRadius
	if checkFit(*c) != nil {
		c.World = d.World
	}
}

func checkSpeed(c Config) error {
	if !finite(c.MaxSpeed) || c.MaxSpeed < 0 {
		return fmt.Errorf("%w: %g", ErrInvalidSpeed, c.MaxSpeed)
	}
	return nil
}

// Repair replaces every invalid option group with its value from Default, logging each replacement.
// The result always passes Validate.
func (c *Config) Repair(logger *log.Logger) {
	d := Default()
	for _, g := range groups {
		if err := g.check(*c); err != nil {
			logger.Printf("%v, using default", err)
			g.restore(c, d)
		}
	}
}

// Validate reports ErrUnknownLayout for unsupported values
func (l Layout) Validate() error {
	switch l {
	case LayoutAoS, LayoutSoA, LayoutSplit:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownLayout, string(l))
}

// Validate reports ErrUnknownBroadPhase for unsupported values
func (b BroadPhase) Validate() error {
	switch b {
	case BroadPhaseGrid, BroadPhaseBrute:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownBroadPhase, string(b))
}

// Validate reports ErrUnknownPalette for unsupported values
func (p Palette) Validate() error {
	switch p {
	case PaletteSolid, PaletteGradient, PaletteNoise:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownPalette, string(p))
}

// Validate reports ErrUnknownRenderer for unsupported values
func (r Renderer) Validate() error {
	switch r {
	case RenderWindow, RenderTerminal, RenderNone:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownRenderer, string(r))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
