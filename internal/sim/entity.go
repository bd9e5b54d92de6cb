package sim

import "image/color"

// RGB is a packed 0xRRGGBB colour
type RGB uint32

// NewRGB packs three channels
func NewRGB(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c RGB) R() uint8 { return uint8(c >> 16) }
func (c RGB) G() uint8 { return uint8(c >> 8) }
func (c RGB) B() uint8 { return uint8(c) }

// RGBA converts to an opaque color.RGBA
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 255}
}

// Corner indexes into Paint.Corners
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// Paint holds the four corner colours of a circle. A solid circle has four equal corners.
// Paint is cosmetic and never read by the physics.
type Paint struct {
	Corners [4]RGB
}

// SolidPaint returns a paint with every corner set to c
func SolidPaint(c RGB) Paint {
	return Paint{Corners: [4]RGB{c, c, c, c}}
}

// Solid reports whether every corner has the same colour
func (p Paint) Solid() bool {
	c := p.Corners[0]
	return p.Corners[1] == c && p.Corners[2] == c && p.Corners[3] == c
}

// Body is the physics state of one entity
type Body struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Mass   float64
}

// Entity is the full logical record of one circle, independent of how a Store lays it out
type Entity struct {
	Body
	Paint Paint
}

// MassOf derives mass from radius; mass is proportional to area
func MassOf(radius float64) float64 {
	return radius * radius
}

// At samples the paint bilinearly; u runs left to right and v top to bottom, both in [0,1]
func (p Paint) At(u, v float64) RGB {
	u = clamp01(u)
	v = clamp01(v)
	top := lerpRGB(p.Corners[TopLeft], p.Corners[TopRight], u)
	bottom := lerpRGB(p.Corners[BottomLeft], p.Corners[BottomRight], u)
	return lerpRGB(top, bottom, v)
}

func lerpRGB(a, b RGB, t float64) RGB {
	ch := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return NewRGB(ch(a.R(), b.R()), ch(a.G(), b.G()), ch(a.B(), b.B()))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
