// Package hosttest provides deterministic fakes for the host capabilities: a
// scheduler that fires only when told to, a manually advanced clock and
// elements that record what was drawn and written.
package hosttest

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/agiangrant/easel/host"
)

// Epoch is the starting time of every new Clock.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// =============================================================================
// Scheduler
// =============================================================================

type request struct {
	token host.Token
	f     host.FrameFunc
}

// Scheduler is a host.Scheduler that queues requests until Fire is called.
// It is safe for concurrent use; callbacks run without the lock held.
type Scheduler struct {
	mu         sync.Mutex
	next       host.Token
	pending    []request
	requested  []host.Token
	cancelled  []host.Token
	fired      int
	maxPending int
	last       host.FrameFunc
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RequestFrame implements host.Scheduler.
func (s *Scheduler) RequestFrame(f host.FrameFunc) host.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending = append(s.pending, request{token: s.next, f: f})
	s.requested = append(s.requested, s.next)
	s.maxPending = max(s.maxPending, len(s.pending))
	s.last = f
	return s.next
}

// CancelFrame implements host.Scheduler.
func (s *Scheduler) CancelFrame(t host.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, t)
	for i, r := range s.pending {
		if r.token == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Fire runs every callback pending at the time of the call, the way a display
// refresh would. Requests made by those callbacks wait for the next Fire.
// It returns the number of callbacks run.
func (s *Scheduler) Fire() int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.fired += len(batch)
	s.mu.Unlock()

	for _, r := range batch {
		r.f()
	}
	return len(batch)
}

// Pending returns the tokens currently outstanding.
func (s *Scheduler) Pending() []host.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := make([]host.Token, len(s.pending))
	for i, r := range s.pending {
		tokens[i] = r.token
	}
	return tokens
}

// Requested returns every token ever handed out, in order.
func (s *Scheduler) Requested() []host.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]host.Token(nil), s.requested...)
}

// Cancelled returns every token passed to CancelFrame, in order.
func (s *Scheduler) Cancelled() []host.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]host.Token(nil), s.cancelled...)
}

// Fired returns the number of callbacks run so far.
func (s *Scheduler) Fired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// MaxPending returns the largest number of simultaneously outstanding tokens
// observed.
func (s *Scheduler) MaxPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxPending
}

// Last returns the most recently registered callback, so tests can invoke a
// stale callback directly.
func (s *Scheduler) Last() host.FrameFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// =============================================================================
// Clock
// =============================================================================

// Clock is a host.Clock that only moves when advanced.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock set to Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now implements host.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceMs moves the clock forward by ms fractional milliseconds.
func (c *Clock) AdvanceMs(ms float64) {
	c.Advance(time.Duration(ms * float64(time.Millisecond)))
}

// =============================================================================
// Elements
// =============================================================================

// ErrInjected is the cause reported by Elements when a failure is requested.
var ErrInjected = errors.New("injected failure")

// DefaultSurfaceSize is the size of surfaces created by Elements.
var DefaultSurfaceSize = host.Size{Width: 300, Height: 150}

// Elements is a host.Elements that records everything it creates. Set the
// Fail* fields to make the matching constructor fail.
type Elements struct {
	FailSurface bool
	FailText    bool
	FailButton  bool

	Surfaces []*Surface
	Texts    []*Text
	Buttons  []*Button
}

// NewSurface implements host.Elements.
func (e *Elements) NewSurface() (host.Surface, error) {
	if e.FailSurface {
		return nil, ErrInjected
	}
	s := &Surface{size: DefaultSurfaceSize}
	e.Surfaces = append(e.Surfaces, s)
	return s, nil
}

// NewText implements host.Elements.
func (e *Elements) NewText(class string) (host.Text, error) {
	if e.FailText {
		return nil, ErrInjected
	}
	t := &Text{Class: class}
	e.Texts = append(e.Texts, t)
	return t, nil
}

// NewButton implements host.Elements.
func (e *Elements) NewButton(class, title string) (host.Button, error) {
	if e.FailButton {
		return nil, ErrInjected
	}
	b := &Button{Class: class, Title: title}
	e.Buttons = append(e.Buttons, b)
	return b, nil
}

// TextByClass returns the first created text with the given class.
func (e *Elements) TextByClass(class string) *Text {
	for _, t := range e.Texts {
		if t.Class == class {
			return t
		}
	}
	return nil
}

// Op is one recorded drawing call.
type Op struct {
	Kind  string // "clear" or "fill"
	Rect  image.Rectangle
	Color color.Color
}

// Surface is a host.Painter that records drawing calls.
type Surface struct {
	size    host.Size
	Ops     []Op
	Resizes int
}

// Size implements host.Surface.
func (s *Surface) Size() host.Size { return s.size }

// SetSize implements host.Surface.
func (s *Surface) SetSize(size host.Size) {
	s.size = size
	s.Resizes++
}

// Clear implements host.Painter.
func (s *Surface) Clear(c color.Color) {
	s.Ops = append(s.Ops, Op{Kind: "clear", Rect: s.size.Rect(), Color: c})
}

// FillRect implements host.Painter.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	s.Ops = append(s.Ops, Op{Kind: "fill", Rect: r, Color: c})
}

// Reset discards recorded operations.
func (s *Surface) Reset() { s.Ops = nil }

// Text is a host.Text that remembers what was written.
type Text struct {
	Class   string
	Value   string
	Updates int
}

// SetText implements host.Text.
func (t *Text) SetText(text string) {
	t.Value = text
	t.Updates++
}

// Button is a host.Button whose clicks are simulated with Click.
type Button struct {
	Class   string
	Title   string
	Label   string
	onClick func()
}

// SetLabel implements host.Button.
func (b *Button) SetLabel(label string) { b.Label = label }

// OnClick implements host.Button.
func (b *Button) OnClick(f func()) { b.onClick = f }

// Click simulates a user click.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// =============================================================================
// Host
// =============================================================================

// Host wires a Scheduler, Clock and Elements together.
type Host struct {
	Scheduler *Scheduler
	Clock     *Clock
	Elements  *Elements
}

// New returns a Host with fresh fakes.
func New() *Host {
	return &Host{
		Scheduler: NewScheduler(),
		Clock:     NewClock(),
		Elements:  &Elements{},
	}
}

// System returns the capabilities as a host.System.
func (h *Host) System() host.System {
	return host.System{
		Scheduler: h.Scheduler,
		Clock:     h.Clock,
		Elements:  h.Elements,
	}
}

// Step advances the clock by d and fires one frame. It returns the number of
// callbacks run.
func (h *Host) Step(d time.Duration) int {
	h.Clock.Advance(d)
	return h.Scheduler.Fire()
}

// Run calls Step n times.
func (h *Host) Run(n int, d time.Duration) {
	for range n {
		h.Step(d)
	}
}
