package main

import (
	"context"
	"math"
	"time"

	"github.com/olivierh59500/circle-collide-go/internal/fps"
	"github.com/olivierh59500/circle-collide-go/internal/sim"
)

// MaxStep is the longest measured frame fed to the simulation, in seconds.
// A stalled frame would otherwise tunnel circles through each other.
const MaxStep = 0.05

// stepDT turns a measured frame time into a simulation timestep
func stepDT(fixed, measured float64) float64 {
	if fixed > 0 {
		return fixed
	}
	return math.Min(measured, MaxStep)
}

// runHeadless steps as fast as possible without drawing, reporting throughput once per interval.
// It stops when ctx ends or, if duration is positive, after duration. Returns the ticks run.
func runHeadless(ctx context.Context, s *sim.Simulation, counter *fps.Counter, reporter *fps.Reporter, duration time.Duration) uint64 {
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}
	fixed := s.Config().FixedDT

	for ctx.Err() == nil {
		dt := counter.Tick()

		t0 := time.Now()
		s.Step(stepDT(fixed, dt))
		reporter.Record(time.Since(t0), s.Stats())
		reporter.Flush(time.Now())
	}
	return s.Stats().Ticks
}
