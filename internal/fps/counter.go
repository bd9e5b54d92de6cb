package fps

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	DefaultWindow = 60
	// MinFrameTime replaces invalid or zero frame times
	MinFrameTime = 1e-9
)

var ErrInvalidWindow = errors.New("fps window must be positive")

// Counter smooths frame times over a fixed window of samples.
// It only observes timing and never feeds back into the simulation.
type Counter struct {
	frames []float64
	cursor int
	count  int
	sum    float64
	last   float64

	now      func() time.Time
	lastTick time.Time
	ticked   bool
}

// NewCounter returns a counter averaging the last window frames
func NewCounter(window int) (*Counter, error) {
	return NewCounterWithClock(window, time.Now)
}

// NewCounterWithClock is NewCounter with an injected clock for Tick
func NewCounterWithClock(window int, now func() time.Time) (*Counter, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	c := &Counter{frames: make([]float64, window), now: now}
	c.Reset()
	return c, nil
}

// Reset clears the window and the tick timer
func (c *Counter) Reset() {
	clear(c.frames)
	c.cursor, c.count = 0, 0
	c.sum, c.last = 0, 0
	c.ticked = false
}

// RecordFrame adds a caller-measured frame time in seconds.
// Non-finite or non-positive values are recorded as MinFrameTime.
func (c *Counter) RecordFrame(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		dt = MinFrameTime
	}
	c.last = dt

	if c.count < len(c.frames) {
		c.count++
	} else {
		c.sum -= c.frames[c.cursor]
	}
	c.frames[c.cursor] = dt
	c.sum += dt

	c.cursor++
	if c.cursor == len(c.frames) {
		c.cursor = 0
	}
}

// Tick measures the time since the previous Tick, records it and returns it in seconds.
// The first call has nothing to measure against and records MinFrameTime.
func (c *Counter) Tick() float64 {
	now := c.now()
	if !c.ticked {
		c.ticked = true
		c.lastTick = now
		c.RecordFrame(MinFrameTime)
		return MinFrameTime
	}
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	c.RecordFrame(dt)
	return c.last
}

// DeltaTime returns the last recorded frame time in seconds
func (c *Counter) DeltaTime() float64 { return c.last }

// AvgFrameTime returns the mean frame time over the window in seconds
func (c *Counter) AvgFrameTime() float64 {
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}

// SmoothedFPS is the reciprocal of AvgFrameTime
func (c *Counter) SmoothedFPS() float64 {
	if avg := c.AvgFrameTime(); avg > 0 {
		return 1 / avg
	}
	return 0
}

// InstantFPS is the reciprocal of the last frame time
func (c *Counter) InstantFPS() float64 {
	if c.last > 0 {
		return 1 / c.last
	}
	return 0
}

// Window returns the number of samples averaged
func (c *Counter) Window() int { return len(c.frames) }

// OverlayText is the short HUD string
func (c *Counter) OverlayText() string {
	return fmt.Sprintf("FPS: %.0f", c.SmoothedFPS())
}

func (c *Counter) String() string {
	return fmt.Sprintf("FPS: %.0f | Time: %.2f ms", c.SmoothedFPS(), c.AvgFrameTime()*1000)
}
