package fps

import (
	"log"
	"time"

	"github.com/olivierh59500/circle-collide-go/internal/sim"
)

// Reporter accumulates update cost and logs a throughput line once per interval
type Reporter struct {
	logger   *log.Logger
	interval time.Duration
	counter  *Counter

	start      time.Time
	updates    time.Duration
	frames     int
	candidates int
	contacts   int
}

// NewReporter logs through logger every interval; counter supplies the smoothed whole-frame rate
func NewReporter(logger *log.Logger, interval time.Duration, counter *Counter, now time.Time) *Reporter {
	return &Reporter{logger: logger, interval: interval, counter: counter, start: now}
}

// Record adds one frame whose simulation update took d
func (r *Reporter) Record(d time.Duration, st sim.Stats) {
	r.updates += d
	r.frames++
	r.candidates += st.Candidates
	r.contacts += st.Contacts
}

// Flush logs and resets the accumulators if the interval has elapsed. Returns true if it logged.
func (r *Reporter) Flush(now time.Time) bool {
	if now.Sub(r.start) < r.interval {
		return false
	}
	frames := max(1, r.frames)
	avgMs := float64(r.updates) / float64(time.Millisecond) / float64(frames)
	r.logger.Printf("Avg update: %.3f ms | FPS(whole): %.0f | pairs/tick: %d | contacts/tick: %d",
		avgMs, r.counter.SmoothedFPS(), r.candidates/frames, r.contacts/frames)

	r.start = now
	r.updates = 0
	r.frames = 0
	r.candidates = 0
	r.contacts = 0
	return true
}
