//go:build js && wasm

package web

import (
	"fmt"
	"image"
	"image/color"
	"syscall/js"
	"time"

	"github.com/agiangrant/easel/host"
)

const (
	rootClass     = "easel"
	controlsClass = "easel-controls"
	statusClass   = "easel-status"
)

// Options configures the page.
type Options struct {
	// Title, if set, replaces the document title.
	Title string
	// Parent is the element the easel is appended to. The default is the
	// document body.
	Parent js.Value
	// Canvas is the initial canvas size in pixels.
	Canvas host.Size
}

// Host implements the host capabilities over the browser DOM.
type Host struct {
	window   js.Value
	document js.Value
	canvas   host.Size

	root     js.Value
	controls js.Value
	status   js.Value

	frames    map[host.Token]js.Func
	listeners []js.Func
}

// New builds the easel's container elements.
func New(opts Options) (*Host, error) {
	window := js.Global()
	document := window.Get("document")
	if !document.Truthy() {
		return nil, fmt.Errorf("failed to create web host: %w: no document", host.ErrHostServiceUnavailable)
	}
	if opts.Title != "" {
		document.Set("title", opts.Title)
	}
	parent := opts.Parent
	if !parent.Truthy() {
		parent = document.Get("body")
	}
	if opts.Canvas.Width <= 0 || opts.Canvas.Height <= 0 {
		opts.Canvas = host.Size{Width: 300, Height: 150}
	}

	h := &Host{
		window:   window,
		document: document,
		canvas:   opts.Canvas,
		frames:   make(map[host.Token]js.Func),
	}
	h.root = h.element("div", rootClass)
	h.controls = h.element("div", controlsClass)
	h.status = h.element("div", statusClass)
	h.root.Call("append", h.controls, h.status)
	parent.Call("appendChild", h.root)
	return h, nil
}

func (h *Host) element(tag, class string) js.Value {
	el := h.document.Call("createElement", tag)
	if class != "" {
		el.Set("className", class)
	}
	return el
}

// System returns the page's capabilities. Clock is nil when the browser has
// no performance timer.
func (h *Host) System() host.System {
	sys := host.System{Scheduler: h, Elements: h}
	if perf := h.window.Get("performance"); perf.Truthy() && perf.Get("now").Truthy() {
		sys.Clock = &performanceClock{perf: perf, origin: time.Now()}
	}
	return sys
}

// RequestFrame implements host.Scheduler. The token is the browser's
// request id.
func (h *Host) RequestFrame(f host.FrameFunc) host.Token {
	var token host.Token
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		delete(h.frames, token)
		fn.Release()
		f()
		return nil
	})
	token = host.Token(h.window.Call("requestAnimationFrame", fn).Int())
	h.frames[token] = fn
	return token
}

// CancelFrame implements host.Scheduler.
func (h *Host) CancelFrame(t host.Token) {
	fn, ok := h.frames[t]
	if !ok {
		return
	}
	h.window.Call("cancelAnimationFrame", int(t))
	delete(h.frames, t)
	fn.Release()
}

// NewSurface implements host.Elements.
func (h *Host) NewSurface() (host.Surface, error) {
	el := h.document.Call("createElement", "canvas")
	ctx := el.Call("getContext", "2d", map[string]any{"alpha": false})
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, fmt.Errorf("%w: no 2d context", host.ErrSurfaceUnavailable)
	}
	c := &Canvas{el: el, ctx: ctx}
	c.SetSize(h.canvas)
	h.root.Call("insertBefore", el, h.controls)
	return c, nil
}

// NewText implements host.Elements.
func (h *Host) NewText(class string) (host.Text, error) {
	el := h.element("div", class)
	h.status.Call("appendChild", el)
	return &Text{el: el}, nil
}

// NewButton implements host.Elements.
func (h *Host) NewButton(class, title string) (host.Button, error) {
	el := h.element("button", class)
	el.Set("title", title)
	b := &Button{el: el}
	listener := js.FuncOf(func(this js.Value, args []js.Value) any {
		if b.onClick != nil {
			b.onClick()
		}
		return nil
	})
	el.Call("addEventListener", "click", listener)
	h.listeners = append(h.listeners, listener)
	h.controls.Call("appendChild", el)
	return b, nil
}

// Close cancels outstanding frames, releases listeners and removes the
// elements from the page.
func (h *Host) Close() {
	for t := range h.frames {
		h.CancelFrame(t)
	}
	for _, l := range h.listeners {
		l.Release()
	}
	h.listeners = nil
	h.root.Call("remove")
}

type performanceClock struct {
	perf   js.Value
	origin time.Time
	start  float64
	set    bool
}

// Now implements host.Clock with millisecond precision relative to the
// first reading.
func (c *performanceClock) Now() time.Time {
	ms := c.perf.Call("now").Float()
	if !c.set {
		c.start, c.set = ms, true
	}
	return c.origin.Add(time.Duration((ms - c.start) * float64(time.Millisecond)))
}

// Canvas is a host.Painter over a <canvas> 2-D context.
type Canvas struct {
	el  js.Value
	ctx js.Value
}

// Size implements host.Surface.
func (c *Canvas) Size() host.Size {
	return host.Size{Width: c.el.Get("width").Int(), Height: c.el.Get("height").Int()}
}

// SetSize implements host.Surface.
func (c *Canvas) SetSize(size host.Size) {
	c.el.Set("width", max(size.Width, 0))
	c.el.Set("height", max(size.Height, 0))
}

// Clear implements host.Painter.
func (c *Canvas) Clear(col color.Color) {
	c.FillRect(c.Size().Rect(), col)
}

// FillRect implements host.Painter.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	c.ctx.Set("fillStyle", cssColor(col))
	c.ctx.Call("fillRect", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Context returns the 2-D rendering context for drawing beyond the Painter
// primitives.
func (c *Canvas) Context() js.Value {
	return c.ctx
}

func cssColor(col color.Color) string {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", n.R, n.G, n.B, float64(n.A)/0xff)
}

// Text is a <div> in the status area.
type Text struct {
	el js.Value
}

// SetText implements host.Text.
func (t *Text) SetText(text string) {
	t.el.Set("textContent", text)
}

// Button is a <button> in the controls area.
type Button struct {
	el      js.Value
	onClick func()
}

// SetLabel implements host.Button.
func (b *Button) SetLabel(label string) {
	b.el.Set("textContent", label)
}

// OnClick implements host.Button.
func (b *Button) OnClick(f func()) {
	b.onClick = f
}

var (
	_ host.Scheduler = (*Host)(nil)
	_ host.Elements  = (*Host)(nil)
	_ host.Painter   = (*Canvas)(nil)
)
