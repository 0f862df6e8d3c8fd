package demo

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/easel"
	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/host/hosttest"
)

func TestRegistry(t *testing.T) {
	all := All()
	require.Len(t, all, 2)
	assert.Equal(t, "count", all[0].Name)
	assert.Equal(t, "sweep", all[1].Name)

	d, ok := Lookup(Default)
	require.True(t, ok)
	assert.NotNil(t, d.New())

	_, ok = Lookup("pong")
	assert.False(t, ok)
}

func TestCounter_WritesCaption(t *testing.T) {
	h := hosttest.New()
	e, err := easel.Start(h.System(), Counter())
	require.NoError(t, err)
	defer e.Close()

	h.Run(3, 16*time.Millisecond)
	caption := h.Elements.TextByClass(easel.CaptionClass)
	assert.Equal(t, "count=3", caption.Value)

	e.Pause()
	h.Run(3, 16*time.Millisecond)
	assert.Equal(t, "count=3", caption.Value, "paused frames do not render")

	e.Play()
	h.Step(16 * time.Millisecond)
	assert.Equal(t, "count=4", caption.Value)
}

func TestSweep_MovesByDelta(t *testing.T) {
	surface := &hosttest.Surface{}
	surface.SetSize(host.Size{Width: 100, Height: 10})
	caption := &hosttest.Text{}
	render := Sweep(100)

	render(easel.RenderContext{Surface: surface, Caption: caption})
	assert.Equal(t, "x=0", caption.Value)
	require.Len(t, surface.Ops, 2)
	assert.Equal(t, "clear", surface.Ops[0].Kind)
	assert.Equal(t, image.Rect(0, 0, BarWidth, 10), surface.Ops[1].Rect)

	surface.Reset()
	render(easel.RenderContext{Surface: surface, Caption: caption, DeltaMs: 500, DeltaKnown: true})
	assert.Equal(t, "x=50", caption.Value)
	assert.Equal(t, image.Rect(50, 0, 50+BarWidth, 10), surface.Ops[1].Rect)
}

func TestSweep_BouncesAtEdges(t *testing.T) {
	surface := &hosttest.Surface{}
	surface.SetSize(host.Size{Width: 100, Height: 10})
	caption := &hosttest.Text{}
	render := Sweep(100)

	step := func(ms float64) {
		render(easel.RenderContext{Surface: surface, Caption: caption, DeltaMs: ms, DeltaKnown: true})
	}

	step(1000) // 100px against a 90px track
	assert.Equal(t, "x=80", caption.Value)
	step(500)
	assert.Equal(t, "x=30", caption.Value)
	step(500)
	assert.Equal(t, "x=20", caption.Value)
}

func TestSweep_DegenerateSurface(t *testing.T) {
	surface := &hosttest.Surface{}
	surface.SetSize(host.Size{Width: 4, Height: 4})
	caption := &hosttest.Text{}
	render := Sweep(100)

	render(easel.RenderContext{Surface: surface, Caption: caption, DeltaMs: 100, DeltaKnown: true})
	assert.Equal(t, "x=0", caption.Value)
}
