package hosttest

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/easel/host"
)

var (
	_ host.Scheduler = (*Scheduler)(nil)
	_ host.Clock     = (*Clock)(nil)
	_ host.Elements  = (*Elements)(nil)
	_ host.Painter   = (*Surface)(nil)
	_ host.Text      = (*Text)(nil)
	_ host.Button    = (*Button)(nil)
)

func TestScheduler_FireRunsOnlyPendingBatch(t *testing.T) {
	s := NewScheduler()

	var calls int
	var rearm host.FrameFunc
	rearm = func() {
		calls++
		s.RequestFrame(rearm)
	}
	s.RequestFrame(rearm)

	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, 1, calls)
	assert.Len(t, s.Pending(), 1, "re-armed request waits for the next fire")

	assert.Equal(t, 1, s.Fire())
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, s.Fired())
	assert.Equal(t, []host.Token{1, 2, 3}, s.Requested())
}

func TestScheduler_CancelFrame(t *testing.T) {
	s := NewScheduler()
	called := false
	tok := s.RequestFrame(func() { called = true })

	s.CancelFrame(tok)
	s.CancelFrame(tok)

	assert.Zero(t, s.Fire())
	assert.False(t, called)
	assert.Equal(t, []host.Token{tok, tok}, s.Cancelled())
	assert.Empty(t, s.Pending())
}

func TestScheduler_MaxPendingAndLast(t *testing.T) {
	s := NewScheduler()
	first := func() {}
	second := func() {}
	s.RequestFrame(first)
	s.RequestFrame(second)

	assert.Equal(t, 2, s.MaxPending())
	require.NotNil(t, s.Last())
	s.Fire()
	assert.Equal(t, 2, s.MaxPending(), "high-water mark survives firing")
}

func TestClock_Advance(t *testing.T) {
	c := NewClock()
	assert.Equal(t, Epoch, c.Now())

	c.Advance(time.Second)
	c.AdvanceMs(16.5)

	assert.Equal(t, Epoch.Add(time.Second+16500*time.Microsecond), c.Now())
}

func TestElements_FailuresAndRecording(t *testing.T) {
	e := &Elements{}

	s, err := e.NewSurface()
	require.NoError(t, err)
	assert.Equal(t, DefaultSurfaceSize, s.Size())

	txt, err := e.NewText("caption")
	require.NoError(t, err)
	txt.SetText("hello")
	assert.Equal(t, "hello", e.TextByClass("caption").Value)
	assert.Nil(t, e.TextByClass("missing"))

	e.FailSurface, e.FailText, e.FailButton = true, true, true
	_, err = e.NewSurface()
	assert.ErrorIs(t, err, ErrInjected)
	_, err = e.NewText("x")
	assert.ErrorIs(t, err, ErrInjected)
	_, err = e.NewButton("x", "y")
	assert.ErrorIs(t, err, ErrInjected)
}

func TestSurface_RecordsOps(t *testing.T) {
	s := &Surface{size: host.Size{Width: 10, Height: 5}}
	s.Clear(color.Black)
	s.FillRect(image.Rect(1, 1, 2, 2), color.White)

	require.Len(t, s.Ops, 2)
	assert.Equal(t, "clear", s.Ops[0].Kind)
	assert.Equal(t, image.Rect(0, 0, 10, 5), s.Ops[0].Rect)
	assert.Equal(t, "fill", s.Ops[1].Kind)

	s.SetSize(host.Size{Width: 1, Height: 1})
	assert.Equal(t, 1, s.Resizes)
	s.Reset()
	assert.Empty(t, s.Ops)
}

func TestButton_Click(t *testing.T) {
	b := &Button{}
	b.Click() // no handler yet

	clicks := 0
	b.OnClick(func() { clicks++ })
	b.Click()
	b.Click()
	assert.Equal(t, 2, clicks)
}

func TestHost_StepAdvancesThenFires(t *testing.T) {
	h := New()
	var seen time.Time
	h.Scheduler.RequestFrame(func() { seen = h.Clock.Now() })

	assert.Equal(t, 1, h.Step(10*time.Millisecond))
	assert.Equal(t, Epoch.Add(10*time.Millisecond), seen)

	sys := h.System()
	assert.Same(t, h.Scheduler, sys.Scheduler)
}
