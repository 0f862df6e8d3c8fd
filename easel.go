// Package easel runs a render function once per display frame on a canvas,
// behind a play/pause button, with a caption slot and an FPS readout.
//
// An Easel schedules itself with the host's frame-callback service: each
// callback requests the next frame before doing anything else, so the loop
// keeps running for as long as the Easel is alive. Pausing gates only the
// render function; frames keep firing and the FPS meter keeps sampling.
//
//	e, err := easel.Start(sys, func(ctx easel.RenderContext) {
//	    ctx.Caption.SetText("hello")
//	})
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
// An Easel is not safe for concurrent use. Call its methods from the host's
// frame goroutine.
package easel

import (
	"fmt"
	"weak"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/pause"
	"github.com/agiangrant/easel/perf"
)

// CaptionClass is the element class of the caption slot.
const CaptionClass = "easel-caption"

// RenderContext is the argument to a RenderFunc. Surface and Caption are
// borrowed for the duration of the call and must not be retained.
type RenderContext struct {
	Surface host.Surface
	Caption host.Text
	// DeltaMs is the number of milliseconds since the previous frame. It is
	// only meaningful when DeltaKnown is set, which it is not on the first
	// render or when the host has no clock.
	DeltaMs    float64
	DeltaKnown bool
}

// Delta returns DeltaMs and DeltaKnown.
func (c RenderContext) Delta() (float64, bool) {
	return c.DeltaMs, c.DeltaKnown
}

// RenderFunc updates and draws one frame.
type RenderFunc func(RenderContext)

// captive is the state shared by the Easel handle and the frame callback.
// Only the handle holds it strongly.
type captive struct {
	scheduler host.Scheduler
	surface   host.Surface
	caption   host.Text
	paused    bool

	// token identifies the outstanding frame request when pending is set.
	token   host.Token
	pending bool

	// callback is the FrameFunc handed to the scheduler. It is nil only while
	// New is wiring it up, because it must capture a reference to this record.
	callback host.FrameFunc

	fps   *perf.Meter
	watch *perf.Stopwatch

	frames   uint64
	renders  uint64
	released bool

	log      zerolog.Logger
	observer Observer
}

// request asks the host for the next frame and records the token.
func (c *captive) request() {
	if c.callback == nil {
		return
	}
	c.token = c.scheduler.RequestFrame(c.callback)
	c.pending = true
	c.observer.FrameScheduled()
}

// handlePause is the transition hook of the pause button.
func (c *captive) handlePause(state pause.State) {
	if c.released {
		return
	}
	if state == pause.Play && !c.pending {
		c.request()
		c.log.Debug().Msg("frame loop armed")
	}
	c.paused = state == pause.Pause
	c.observer.PauseChanged(c.paused)
	c.log.Debug().Stringer("state", state).Msg("pause state changed")
}

// release cancels the outstanding request. Later fires of a callback that
// was already handed to the host find released set and return.
func (c *captive) release() {
	if c.released {
		return
	}
	c.released = true
	if c.pending {
		c.scheduler.CancelFrame(c.token)
		c.pending = false
		c.observer.FrameCancelled()
	}
}

// newFrameCallback returns the callback registered with the host. It holds
// only a weak reference to the captive, so a registered callback does not
// keep a dropped Easel alive; once the captive is gone the callback returns
// without side effects and does not re-arm.
func newFrameCallback(ref weak.Pointer[captive], render RenderFunc) host.FrameFunc {
	return func() {
		c := ref.Value()
		if c == nil || c.released || c.callback == nil {
			return
		}

		// Re-arm before any consumer code runs.
		c.pending = false
		c.request()

		c.fps.Tick()
		deltaMs, known := c.watch.DeltaMs()
		c.frames++

		stats := FrameStats{
			Number:     c.frames,
			Rendered:   !c.paused,
			DeltaMs:    deltaMs,
			DeltaKnown: known,
		}
		stats.FPS, stats.FPSKnown = c.fps.Rate()
		c.observer.FrameFired(stats)

		if c.paused {
			return
		}
		c.renders++
		render(RenderContext{
			Surface:    c.surface,
			Caption:    c.caption,
			DeltaMs:    deltaMs,
			DeltaKnown: known,
		})
	}
}

// Easel owns a drawing surface and the frame loop that renders to it.
type Easel struct {
	id     string
	cell   *captive
	pause  *pause.Button
	closed bool
}

// New creates an Easel in the paused state. No frame is requested until the
// first transition to Play.
//
// New fails with ErrSurfaceUnavailable when the surface cannot be created,
// ErrHostServiceUnavailable when there is no scheduler, and
// ErrElementConstructionFailed when the caption, FPS label or pause button
// cannot be created. A missing clock is not an error: FPS and frame deltas
// are then reported as unknown.
func New(sys host.System, render RenderFunc, opts ...Option) (*Easel, error) {
	o := options{
		log:      zerolog.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	log := o.log.With().Str("easel_id", o.id).Logger()

	if render == nil {
		return nil, fmt.Errorf("failed to create easel: nil render func")
	}
	if sys.Scheduler == nil {
		return nil, fmt.Errorf("failed to create easel: %w: no frame scheduler", ErrHostServiceUnavailable)
	}
	if sys.Elements == nil {
		return nil, fmt.Errorf("failed to create easel: %w: no element factory", ErrSurfaceUnavailable)
	}

	surface, err := sys.Elements.NewSurface()
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w: %w", ErrSurfaceUnavailable, err)
	}
	if surface == nil {
		return nil, fmt.Errorf("failed to create surface: %w", ErrSurfaceUnavailable)
	}

	caption, err := sys.Elements.NewText(CaptionClass)
	if err != nil {
		return nil, fmt.Errorf("failed to create caption: %w: %w", ErrElementConstructionFailed, err)
	}

	var fps *perf.Meter
	if sys.Clock == nil {
		log.Warn().Msg("no clock available, fps and frame delta will be unknown")
	} else if fps, err = perf.NewMeter(sys.Clock, sys.Elements); err != nil {
		return nil, err
	}
	watch, _ := perf.NewStopwatch(sys.Clock)

	cell := &captive{
		scheduler: sys.Scheduler,
		surface:   surface,
		caption:   caption,
		paused:    true,
		fps:       fps,
		watch:     watch,
		log:       log,
		observer:  o.observer,
	}

	ref := weak.Make(cell)
	button, err := pause.New(sys.Elements, func(state pause.State) {
		if c := ref.Value(); c != nil {
			c.handlePause(state)
		}
	})
	if err != nil {
		return nil, err
	}
	if button.IsPaused() != cell.paused {
		log.Error().Msg("pause button and frame loop disagree on initial state")
	}

	cell.callback = newFrameCallback(ref, render)

	log.Debug().Msg("easel created")
	return &Easel{id: o.id, cell: cell, pause: button}, nil
}

// Start creates an Easel and immediately begins playing.
func Start(sys host.System, render RenderFunc, opts ...Option) (*Easel, error) {
	e, err := New(sys, render, opts...)
	if err != nil {
		return nil, err
	}
	e.Play()
	return e, nil
}

// ID returns the identifier used in log lines and metrics.
func (e *Easel) ID() string {
	return e.id
}

// Play starts rendering if the Easel is paused.
func (e *Easel) Play() {
	if e.closed || !e.pause.IsPaused() {
		return
	}
	e.pause.Click()
}

// Pause stops rendering if the Easel is playing. Frames keep firing.
func (e *Easel) Pause() {
	if e.closed || e.pause.IsPaused() {
		return
	}
	e.pause.Click()
}

// Toggle switches between playing and paused, as a click on the pause
// button does.
func (e *Easel) Toggle() {
	if e.closed {
		return
	}
	e.pause.Click()
}

// IsPaused reports whether rendering is paused.
func (e *Easel) IsPaused() bool {
	return e.pause.IsPaused()
}

// PauseButton returns the play/pause indicator.
func (e *Easel) PauseButton() host.Button {
	return e.pause.Indicator()
}

// Caption returns the caption slot.
func (e *Easel) Caption() host.Text {
	return e.cell.caption
}

// FPSLabel returns the element the FPS readout is written to, or nil when
// the host has no clock.
func (e *Easel) FPSLabel() host.Text {
	return e.cell.fps.Label()
}

// WithSurface calls f with the drawing surface. It does nothing once the
// Easel is closed.
func (e *Easel) WithSurface(f func(host.Surface)) {
	if e.closed {
		return
	}
	f(e.cell.surface)
}

// ResizeSurface sets the surface size. Takes effect for the next frame.
func (e *Easel) ResizeSurface(size host.Size) {
	e.WithSurface(func(s host.Surface) {
		s.SetSize(size)
	})
}

// Stats is a snapshot of the frame loop.
type Stats struct {
	// Frames is the number of callbacks fired, paused or not.
	Frames uint64
	// Renders is the number of render calls.
	Renders uint64
	// Scheduled reports whether a frame request is outstanding.
	Scheduled bool
	Paused    bool
	FPS       float64
	FPSKnown  bool
}

// Stats returns a snapshot of the frame loop.
func (e *Easel) Stats() Stats {
	c := e.cell
	s := Stats{
		Frames:    c.frames,
		Renders:   c.renders,
		Scheduled: c.pending,
		Paused:    e.pause.IsPaused(),
	}
	s.FPS, s.FPSKnown = c.fps.Rate()
	return s
}

// Close cancels the outstanding frame request and stops the loop for good.
// Close is idempotent and always returns nil.
func (e *Easel) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	token, pending := e.cell.token, e.cell.pending
	e.cell.release()
	ev := e.cell.log.Debug()
	if pending {
		ev = ev.Int64("cancelled_token", int64(token))
	}
	ev.Msg("easel closed")
	return nil
}
