package sim

import (
	"math/rand"

	"github.com/olivierh59500/circle-collide-go/internal/config"
)

// Populate fills every entity of s from the configured distributions:
// radius uniform in [MinRadius, MaxRadius], position uniform in the world shrunk by the radius,
// velocity components uniform in [-MaxSpeed, MaxSpeed].
//
// Colours come from a second generator split off rng before the first entity,
// so the physics draws are the same whichever palette is used.
func Populate(s Store, cfg config.Config, rng *rand.Rand, painter Painter) {
	colors := rand.New(rand.NewSource(rng.Int63()))
	w := cfg.World
	for i := 0; i < s.Len(); i++ {
		r := uniform(rng, cfg.MinRadius, cfg.MaxRadius)
		x := uniform(rng, w.XMin+r, w.XMax-r)
		y := uniform(rng, w.YMin+r, w.YMax-r)
		vx := uniform(rng, -cfg.MaxSpeed, cfg.MaxSpeed)
		vy := uniform(rng, -cfg.MaxSpeed, cfg.MaxSpeed)

		s.SetEntity(i, Entity{
			Body:  Body{X: x, Y: y, VX: vx, VY: vy, Radius: r},
			Paint: painter.Paint(colors, x, y, r),
		})
	}
}

// uniform draws from [lo, hi)
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
