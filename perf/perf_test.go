package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/host/hosttest"
)

func newTestMeter(t *testing.T) (*Meter, *hosttest.Clock, *hosttest.Text) {
	t.Helper()
	clock := hosttest.NewClock()
	elements := &hosttest.Elements{}
	m, err := NewMeter(clock, elements)
	require.NoError(t, err)
	label := elements.TextByClass(LabelClass)
	require.NotNil(t, label)
	return m, clock, label
}

func TestNewMeter_Errors(t *testing.T) {
	_, err := NewMeter(nil, &hosttest.Elements{})
	assert.ErrorIs(t, err, host.ErrHostServiceUnavailable)

	_, err = NewMeter(hosttest.NewClock(), &hosttest.Elements{FailText: true})
	assert.ErrorIs(t, err, host.ErrElementConstructionFailed)
	assert.ErrorIs(t, err, hosttest.ErrInjected)
}

func TestNewMeter_LabelStartsBlank(t *testing.T) {
	_, _, label := newTestMeter(t)
	assert.Equal(t, "\u00a0", label.Value)
}

func TestMeter_ConvergesToFrameRate(t *testing.T) {
	tests := []struct {
		name    string
		deltaMs float64
		want    float64
		label   string
	}{
		{name: "60 fps", deltaMs: 16.67, want: 60.0, label: "60.0 fps"},
		{name: "30 fps", deltaMs: 33.3, want: 30.0, label: "30.0 fps"},
		{name: "24 fps", deltaMs: 41.67, want: 24.0, label: "24.0 fps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock, label := newTestMeter(t)
			for range Window + 20 {
				m.Tick()
				clock.AdvanceMs(tt.deltaMs)
			}

			rate, ok := m.Rate()
			require.True(t, ok)
			assert.InDelta(t, tt.want, rate, 0.1)
			assert.Equal(t, tt.label, label.Value)
		})
	}
}

func TestMeter_FirstTickRecordsNoSample(t *testing.T) {
	m, clock, _ := newTestMeter(t)
	m.Tick()
	assert.Zero(t, m.Samples())

	clock.AdvanceMs(20)
	m.Tick()
	assert.Equal(t, 1, m.Samples())
}

func TestMeter_WaitsForFullWindow(t *testing.T) {
	m, clock, label := newTestMeter(t)

	// Window deltas need Window+1 ticks.
	m.Tick()
	for range Window - 1 {
		clock.AdvanceMs(50)
		m.Tick()
	}
	_, ok := m.Rate()
	assert.False(t, ok, "window not yet full")
	assert.Equal(t, "\u00a0", label.Value)

	clock.AdvanceMs(50)
	m.Tick()
	rate, ok := m.Rate()
	require.True(t, ok)
	assert.InDelta(t, 20.0, rate, 0.001)
}

func TestMeter_ThrottlesBelowOneSecondWindow(t *testing.T) {
	m, clock, label := newTestMeter(t)
	m.Tick()
	for range 2 * Window {
		clock.AdvanceMs(10)
		m.Tick()
	}

	_, ok := m.Rate()
	assert.False(t, ok, "a 600ms window is below the refresh threshold")
	assert.Equal(t, 1, label.Updates, "only the initial blank was written")
}

func TestMeter_EvictsOldestSample(t *testing.T) {
	m, clock, _ := newTestMeter(t)
	m.Tick()
	for range Window {
		clock.AdvanceMs(100)
		m.Tick()
	}
	rate, _ := m.Rate()
	assert.InDelta(t, 10.0, rate, 0.001)

	// Replace the whole window with faster frames.
	for range Window {
		clock.AdvanceMs(20)
		m.Tick()
	}
	rate, ok := m.Rate()
	require.True(t, ok)
	assert.InDelta(t, 50.0, rate, 0.001)
	assert.Equal(t, 2*Window, m.Samples())
}

func TestMeter_NilIsInert(t *testing.T) {
	var m *Meter
	m.Tick()
	rate, ok := m.Rate()
	assert.Zero(t, rate)
	assert.False(t, ok)
	assert.Zero(t, m.Samples())
	assert.Nil(t, m.Label())
}

func TestStopwatch_FirstCallUnknown(t *testing.T) {
	clock := hosttest.NewClock()
	sw, ok := NewStopwatch(clock)
	require.True(t, ok)

	_, known := sw.DeltaMs()
	assert.False(t, known)

	clock.Advance(25 * time.Millisecond)
	delta, known := sw.DeltaMs()
	require.True(t, known)
	assert.InDelta(t, 25.0, delta, 1e-9)

	clock.AdvanceMs(7.5)
	delta, known = sw.DeltaMs()
	require.True(t, known)
	assert.InDelta(t, 7.5, delta, 1e-9)
}

func TestStopwatch_RealClock(t *testing.T) {
	sw, ok := NewStopwatch(host.SystemClock{})
	require.True(t, ok)

	_, known := sw.DeltaMs()
	require.False(t, known)
	time.Sleep(20 * time.Millisecond)
	delta, known := sw.DeltaMs()
	require.True(t, known)
	assert.GreaterOrEqual(t, delta, 20.0)
	assert.Less(t, delta, 1000.0)
}

func TestStopwatch_Unavailable(t *testing.T) {
	sw, ok := NewStopwatch(nil)
	assert.False(t, ok)
	assert.Nil(t, sw)

	_, known := sw.DeltaMs()
	assert.False(t, known)
}
