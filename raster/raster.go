// Package raster is an in-memory host.Painter backed by an RGBA image.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/agiangrant/easel/host"
)

// Canvas is a host.Painter that draws into an *image.RGBA.
type Canvas struct {
	img *image.RGBA
}

// New returns a Canvas of the given size, cleared to transparent black.
func New(size host.Size) *Canvas {
	return &Canvas{img: image.NewRGBA(clamp(size).Rect())}
}

func clamp(size host.Size) host.Size {
	return host.Size{Width: max(size.Width, 0), Height: max(size.Height, 0)}
}

// Size implements host.Surface.
func (c *Canvas) Size() host.Size {
	b := c.img.Bounds()
	return host.Size{Width: b.Dx(), Height: b.Dy()}
}

// SetSize implements host.Surface. Like an HTML canvas, resizing discards
// the contents.
func (c *Canvas) SetSize(size host.Size) {
	if c.Size() == clamp(size) {
		return
	}
	c.img = image.NewRGBA(clamp(size).Rect())
}

// Clear implements host.Painter.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect implements host.Painter. The rectangle is clipped to the canvas.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// Image returns the backing image. It is replaced by SetSize.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

var _ host.Painter = (*Canvas)(nil)
