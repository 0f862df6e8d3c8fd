package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agiangrant/easel/host"
)

func TestCanvas_Size(t *testing.T) {
	c := New(host.Size{Width: 30, Height: 20})
	assert.Equal(t, host.Size{Width: 30, Height: 20}, c.Size())

	c.SetSize(host.Size{Width: 8, Height: 4})
	assert.Equal(t, host.Size{Width: 8, Height: 4}, c.Size())
	assert.Equal(t, image.Rect(0, 0, 8, 4), c.Image().Bounds())

	c.SetSize(host.Size{Width: -1, Height: 3})
	assert.Equal(t, host.Size{Width: 0, Height: 3}, c.Size())
}

func TestCanvas_ClearAndFill(t *testing.T) {
	black := color.RGBA{A: 0xff}
	red := color.RGBA{R: 0xff, A: 0xff}

	c := New(host.Size{Width: 10, Height: 10})
	c.Clear(black)
	c.FillRect(image.Rect(2, 2, 4, 4), red)

	assert.Equal(t, black, c.Image().RGBAAt(0, 0))
	assert.Equal(t, red, c.Image().RGBAAt(2, 3))
	assert.Equal(t, black, c.Image().RGBAAt(4, 4))
}

func TestCanvas_FillClipsToBounds(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	c := New(host.Size{Width: 4, Height: 4})
	c.FillRect(image.Rect(-10, -10, 100, 2), white)

	assert.Equal(t, white, c.Image().RGBAAt(3, 1))
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(3, 2))
}

func TestCanvas_ResizeDiscardsContents(t *testing.T) {
	c := New(host.Size{Width: 4, Height: 4})
	c.Clear(color.White)
	img := c.Image()

	c.SetSize(host.Size{Width: 4, Height: 4})
	assert.Same(t, img, c.Image(), "same size keeps the image")

	c.SetSize(host.Size{Width: 5, Height: 4})
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(0, 0))
}
