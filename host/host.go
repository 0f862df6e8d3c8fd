// Package host defines the capabilities an easel borrows from the surrounding
// UI runtime: a frame-callback scheduler, a clock, a drawing surface and a few
// text and button slots.
//
// Every capability is injected explicitly through a System value. The web
// package implements them with syscall/js, the native package with a desktop
// window, and hosttest with deterministic fakes.
package host

import (
	"errors"
	"image"
	"image/color"
	"time"
)

var (
	// ErrSurfaceUnavailable is returned when a drawing surface or its 2-D
	// context cannot be obtained.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

	// ErrHostServiceUnavailable is returned when the clock or the frame
	// scheduler is missing.
	ErrHostServiceUnavailable = errors.New("host service unavailable")

	// ErrElementConstructionFailed is returned when a caption, label or button
	// cannot be created.
	ErrElementConstructionFailed = errors.New("element construction failed")
)

// Token identifies an outstanding frame request.
type Token int64

// FrameFunc is invoked by the scheduler once, before the next repaint.
type FrameFunc func()

// Scheduler is the "next frame please" primitive.
type Scheduler interface {
	// RequestFrame registers f to run once before the next repaint.
	RequestFrame(f FrameFunc) Token
	// CancelFrame withdraws a request. Cancelling a token that already fired
	// or was already cancelled does nothing.
	CancelFrame(t Token)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Size is a width and height in whole pixels.
type Size struct {
	Width  int
	Height int
}

// Rect returns the rectangle anchored at the origin with this size.
func (s Size) Rect() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Surface is an opaque 2-D paintable surface.
type Surface interface {
	Size() Size
	SetSize(size Size)
}

// Painter is a Surface that supports the few drawing primitives the demos
// need. Host-specific surfaces expose richer APIs on their concrete types.
type Painter interface {
	Surface
	Clear(c color.Color)
	FillRect(r image.Rectangle, c color.Color)
}

// Text is a text-settable UI element.
type Text interface {
	SetText(text string)
}

// Button is a clickable UI affordance.
type Button interface {
	SetLabel(label string)
	// OnClick replaces the click handler.
	OnClick(f func())
}

// Elements creates the UI parts an easel owns.
type Elements interface {
	NewSurface() (Surface, error)
	NewText(class string) (Text, error)
	NewButton(class, title string) (Button, error)
}

// System bundles the host capabilities handed to an easel. Clock may be nil,
// in which case timing is reported as unknown.
type System struct {
	Scheduler Scheduler
	Clock     Clock
	Elements  Elements
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
