// Package demo holds the render functions the easel command can run.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/agiangrant/easel"
	"github.com/agiangrant/easel/host"
)

// Demo is a named render function factory. New returns a fresh render
// function with its own state.
type Demo struct {
	Name        string
	Description string
	New         func() easel.RenderFunc
}

var registry = map[string]Demo{
	"count": {
		Name:        "count",
		Description: "Writes the number of rendered frames to the caption",
		New:         Counter,
	},
	"sweep": {
		Name:        "sweep",
		Description: "Bounces a bar across the canvas at a fixed speed",
		New:         func() easel.RenderFunc { return Sweep(SweepSpeed) },
	},
}

// Default is the demo run when none is configured.
const Default = "count"

// All returns every demo sorted by name.
func All() []Demo {
	demos := make([]Demo, 0, len(registry))
	for _, d := range registry {
		demos = append(demos, d)
	}
	sort.Slice(demos, func(i, j int) bool { return demos[i].Name < demos[j].Name })
	return demos
}

// Lookup returns the demo with the given name.
func Lookup(name string) (Demo, bool) {
	d, ok := registry[name]
	return d, ok
}

// Counter returns a render function that writes "count=N" to the caption.
func Counter() easel.RenderFunc {
	count := 0
	return func(ctx easel.RenderContext) {
		count++
		ctx.Caption.SetText(fmt.Sprintf("count=%d", count))
	}
}

// SweepSpeed is the default bar speed in pixels per second.
const SweepSpeed = 120.0

// BarWidth is the width of the sweep bar in pixels.
const BarWidth = 10

var (
	Background = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	Foreground = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

// Sweep returns a render function that moves a vertical bar horizontally at
// speed pixels per second, reversing at the edges. The first frame, which has
// no delta, draws the bar at its starting position.
func Sweep(speed float64) easel.RenderFunc {
	x, dir := 0.0, 1.0
	return func(ctx easel.RenderContext) {
		size := ctx.Surface.Size()
		maxX := float64(max(size.Width-BarWidth, 0))

		if dt, ok := ctx.Delta(); ok {
			x += dir * speed * dt / 1000
		}
		for x < 0 || x > maxX {
			if maxX == 0 {
				x = 0
				break
			}
			if x > maxX {
				x, dir = 2*maxX-x, -1
			} else {
				x, dir = -x, 1
			}
		}

		ctx.Caption.SetText(fmt.Sprintf("x=%.0f", x))

		p, ok := ctx.Surface.(host.Painter)
		if !ok {
			return
		}
		left := int(math.Round(x))
		p.Clear(Background)
		p.FillRect(image.Rect(left, 0, left+BarWidth, size.Height), Foreground)
	}
}
