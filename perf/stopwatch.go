package perf

import (
	"time"

	"github.com/agiangrant/easel/host"
)

// Stopwatch measures the time between successive calls to DeltaMs.
type Stopwatch struct {
	clock host.Clock
	// last is the timestamp of the most recent DeltaMs call.
	last   time.Time
	primed bool
}

// NewStopwatch returns a stopwatch reading clock. It reports false, with a
// nil stopwatch, when there is no clock; a nil *Stopwatch always reports the
// delta as unknown.
func NewStopwatch(clock host.Clock) (*Stopwatch, bool) {
	if clock == nil {
		return nil, false
	}
	return &Stopwatch{clock: clock}, true
}

// DeltaMs returns the milliseconds elapsed since the previous call. It
// reports false on the first call.
func (s *Stopwatch) DeltaMs() (float64, bool) {
	if s == nil {
		return 0, false
	}
	now := s.clock.Now()
	last, primed := s.last, s.primed
	s.last, s.primed = now, true
	if !primed {
		return 0, false
	}
	return host.Milliseconds(now.Sub(last)), true
}
