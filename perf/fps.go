// Package perf tracks frame timing: a rolling frames-per-second meter and a
// stopwatch that reports the time between calls.
package perf

import (
	"fmt"
	"time"

	"github.com/agiangrant/easel/host"
)

// Window is the number of frames over which the meter averages.
const Window = 60

// refreshThresholdMs is the minimum total duration, in milliseconds, the
// window must span before the displayed rate is refreshed.
const refreshThresholdMs = 1000.0

// LabelClass is the element class of the FPS label.
const LabelClass = "perf-fps"

// Meter tracks and displays frames per second. A nil *Meter is valid and
// does nothing, which is how a missing clock degrades.
type Meter struct {
	clock host.Clock
	label host.Text

	// last is the previous reading of clock.Now, valid once started is set.
	last    time.Time
	started bool
	// deltas holds the most recent Window frame times in milliseconds.
	deltas [Window]float64
	// count is the total number of deltas recorded.
	count int
	// sum is the sum of deltas.
	sum float64

	rate    float64
	hasRate bool
}

// NewMeter creates a meter and its label. The label starts out holding a
// non-breaking space so the status line keeps its height.
func NewMeter(clock host.Clock, elements host.Elements) (*Meter, error) {
	if clock == nil {
		return nil, fmt.Errorf("failed to create fps meter: %w: no clock", host.ErrHostServiceUnavailable)
	}
	label, err := elements.NewText(LabelClass)
	if err != nil {
		return nil, fmt.Errorf("failed to create fps label: %w: %w", host.ErrElementConstructionFailed, err)
	}
	label.SetText("\u00a0")
	return &Meter{clock: clock, label: label}, nil
}

// Tick records one frame.
func (m *Meter) Tick() {
	if m == nil {
		return
	}
	now := m.clock.Now()
	if m.started {
		delta := host.Milliseconds(now.Sub(m.last))
		index := m.count % Window
		m.sum -= m.deltas[index]
		m.sum += delta
		m.deltas[index] = delta
		m.count++
		if m.count >= Window && m.sum > refreshThresholdMs {
			m.rate = Window * 1000 / m.sum
			m.hasRate = true
			m.label.SetText(fmt.Sprintf("%.1f fps", m.rate))
		}
	}
	m.last, m.started = now, true
}

// Rate returns the most recently displayed rate. It reports false until the
// window has filled and spans more than a second.
func (m *Meter) Rate() (float64, bool) {
	if m == nil {
		return 0, false
	}
	return m.rate, m.hasRate
}

// Samples returns the number of frame deltas recorded so far.
func (m *Meter) Samples() int {
	if m == nil {
		return 0
	}
	return m.count
}

// Label returns the element the rate is written to.
func (m *Meter) Label() host.Text {
	if m == nil {
		return nil
	}
	return m.label
}
