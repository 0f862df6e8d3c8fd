// Package native hosts an easel in a desktop or mobile window using Gio.
//
// A Host is the frame scheduler, clock and element factory for one window.
// Frame callbacks, posted functions and click handlers all run on the
// goroutine that calls Run, so an easel driven by a Host needs no locking.
package native

import (
	"context"
	"image/color"
	"sync"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/rs/zerolog"

	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/raster"
)

// Options configures the window.
type Options struct {
	Title string
	// Width and Height are the initial window size in dp.
	Width  int
	Height int
	// Canvas is the initial surface size in pixels.
	Canvas host.Size
	Log    zerolog.Logger
}

type request struct {
	token host.Token
	f     host.FrameFunc
}

// Host is a Gio window implementing the host capabilities.
type Host struct {
	window *app.Window
	theme  *material.Theme
	canvas host.Size
	log    zerolog.Logger

	mu      sync.Mutex
	next    host.Token
	pending []request
	posted  []func()

	// Touched only before Run or on the Run goroutine.
	surfaces []*raster.Canvas
	texts    []*Text
	buttons  []*Button
}

// New creates the window. Nothing is shown until Run is called.
func New(opts Options) *Host {
	w := new(app.Window)
	var wopts []app.Option
	if opts.Title != "" {
		wopts = append(wopts, app.Title(opts.Title))
	}
	if opts.Width > 0 && opts.Height > 0 {
		wopts = append(wopts, app.Size(unit.Dp(opts.Width), unit.Dp(opts.Height)))
	}
	w.Option(wopts...)

	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = host.Size{Width: 300, Height: 150}
	}
	return &Host{
		window: w,
		theme:  material.NewTheme(),
		canvas: opts.Canvas,
		log:    opts.Log,
	}
}

// System returns the window's capabilities.
func (h *Host) System() host.System {
	return host.System{
		Scheduler: h,
		Clock:     host.SystemClock{},
		Elements:  h,
	}
}

// RequestFrame implements host.Scheduler. It is safe to call from any
// goroutine.
func (h *Host) RequestFrame(f host.FrameFunc) host.Token {
	h.mu.Lock()
	h.next++
	t := h.next
	h.pending = append(h.pending, request{token: t, f: f})
	h.mu.Unlock()
	h.window.Invalidate()
	return t
}

// CancelFrame implements host.Scheduler.
func (h *Host) CancelFrame(t host.Token) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, r := range h.pending {
		if r.token == t {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

// Post runs f on the Run goroutine before the next frame's callbacks. It is
// safe to call from any goroutine.
func (h *Host) Post(f func()) {
	h.mu.Lock()
	h.posted = append(h.posted, f)
	h.mu.Unlock()
	h.window.Invalidate()
}

func (h *Host) takePosted() []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	posted := h.posted
	h.posted = nil
	return posted
}

func (h *Host) takePending() []request {
	h.mu.Lock()
	defer h.mu.Unlock()
	batch := h.pending
	h.pending = nil
	return batch
}

// NewSurface implements host.Elements with a raster canvas.
func (h *Host) NewSurface() (host.Surface, error) {
	c := raster.New(h.canvas)
	h.surfaces = append(h.surfaces, c)
	return c, nil
}

// NewText implements host.Elements.
func (h *Host) NewText(class string) (host.Text, error) {
	t := &Text{Class: class}
	h.texts = append(h.texts, t)
	return t, nil
}

// NewButton implements host.Elements.
func (h *Host) NewButton(class, title string) (host.Button, error) {
	b := &Button{Class: class, Title: title}
	h.buttons = append(h.buttons, b)
	return b, nil
}

// Text is a label in the window's status row.
type Text struct {
	Class string
	value string
}

// SetText implements host.Text.
func (t *Text) SetText(text string) { t.value = text }

// Value returns the current text.
func (t *Text) Value() string { return t.value }

// Button is a material button in the window's control row.
type Button struct {
	Class   string
	Title   string
	label   string
	onClick func()
	click   widget.Clickable
}

// SetLabel implements host.Button.
func (b *Button) SetLabel(label string) { b.label = label }

// OnClick implements host.Button.
func (b *Button) OnClick(f func()) { b.onClick = f }

// Run shows the window and processes events until the window is closed or
// ctx is done. It must be called from a goroutine other than the one running
// app.Main.
func (h *Host) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		h.Post(func() {
			h.window.Perform(system.ActionClose)
		})
	})
	defer stop()

	var ops op.Ops
	for {
		switch e := h.window.Event().(type) {
		case app.DestroyEvent:
			if e.Err != nil {
				h.log.Error().Err(e.Err).Msg("window error")
			} else {
				h.log.Debug().Msg("window closed")
			}
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for _, f := range h.takePosted() {
				f()
			}
			for _, b := range h.buttons {
				for b.click.Clicked(gtx) {
					if b.onClick != nil {
						b.onClick()
					}
				}
			}
			for _, r := range h.takePending() {
				r.f()
			}

			h.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

var background = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}

func (h *Host) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, background)
	inset := layout.UniformInset(unit.Dp(8))

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return h.layoutSurfaces(gtx)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, h.layoutControls)
		}),
	)
}

func (h *Host) layoutSurfaces(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(h.surfaces))
	for _, c := range h.surfaces {
		img := c.Image()
		children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if img.Bounds().Empty() {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}
			return widget.Image{
				Src:      paint.NewImageOp(img),
				Fit:      widget.Contain,
				Position: layout.Center,
			}.Layout(gtx)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (h *Host) layoutControls(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(h.buttons)+len(h.texts))
	for _, b := range h.buttons {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(h.theme, &b.click, b.label).Layout(gtx)
		}))
	}
	for _, t := range h.texts {
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(12)}.Layout(gtx, material.Body1(h.theme, t.value).Layout)
		}))
	}
	return layout.Flex{
		Axis:      layout.Horizontal,
		Alignment: layout.Middle,
	}.Layout(gtx, children...)
}

var (
	_ host.Scheduler = (*Host)(nil)
	_ host.Elements  = (*Host)(nil)
)
