package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/mfortier/go-whitted-raytracer/pkg/core"
)

// Canvas is the render target: a dense grid of unclamped colors. Workers
// write disjoint pixels, so no locking is needed during rendering.
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

// WritePixel sets the color at (x, y)
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	c.pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y)
func (c *Canvas) PixelAt(x, y int) core.Color {
	return c.pixels[y*c.Width+x]
}

// ToImage converts the canvas to an 8-bit RGBA image, clamping each channel
// to the displayable range
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: clampChannel(p.R),
				G: clampChannel(p.G),
				B: clampChannel(p.B),
				A: 255,
			})
		}
	}
	return img
}

func clampChannel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
