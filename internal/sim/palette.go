package sim

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

// Perlin parameters for the noise palette
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
	noiseScale  = 4.0 // noise periods across the world
)

// Painter picks the colours of a freshly created entity at (x, y) with radius r
type Painter interface {
	Paint(rng *rand.Rand, x, y, r float64) Paint
}

// NewPainter returns the painter for a palette. The noise palette is seeded from seed.
func NewPainter(p config.Palette, world config.World, seed int64) (Painter, error) {
	switch p {
	case config.PaletteSolid:
		return solidPainter{}, nil
	case config.PaletteGradient:
		return gradientPainter{}, nil
	case config.PaletteNoise:
		return &noisePainter{
			noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed),
			world: world,
		}, nil
	}
	return nil, p.Validate()
}

// solidPainter draws one uniformly random colour
type solidPainter struct{}

func (solidPainter) Paint(rng *rand.Rand, _, _, _ float64) Paint {
	return SolidPaint(randomRGB(rng))
}

// gradientPainter draws four independent corner colours
type gradientPainter struct{}

func (gradientPainter) Paint(rng *rand.Rand, _, _, _ float64) Paint {
	var p Paint
	for k := range p.Corners {
		p.Corners[k] = randomRGB(rng)
	}
	return p
}

// noisePainter samples a Perlin field at each corner of the circle's bounding box,
// so neighbouring circles get related hues. It consumes no random draws.
type noisePainter struct {
	noise *perlin.Perlin
	world config.World
}

var cornerOffsets = [4][2]float64{
	TopLeft:     {-1, 1},
	TopRight:    {1, 1},
	BottomLeft:  {-1, -1},
	BottomRight: {1, -1},
}

func (n *noisePainter) Paint(_ *rand.Rand, x, y, r float64) Paint {
	var p Paint
	sx := noiseScale / n.world.Width()
	sy := noiseScale / n.world.Height()
	for k, off := range cornerOffsets {
		u := (x - n.world.XMin + off[0]*r) * sx
		v := (y - n.world.YMin + off[1]*r) * sy
		hue := (n.noise.Noise2D(u, v) + 1) * 180
		p.Corners[k] = hueColor(hue)
	}
	return p
}

func randomRGB(rng *rand.Rand) RGB {
	return NewRGB(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)))
}

// hueColor returns a fully saturated colour for a hue in degrees
func hueColor(h float64) RGB {
	r, g, b := hsvToRGB(h, 1, 1)
	return NewRGB(uint8(r*255), uint8(g*255), uint8(b*255))
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
