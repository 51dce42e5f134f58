// Package render rasterizes frames and presents them on a terminal or as images
package render

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/lixenwraith/fabviz/palette"
)

// ErrBackendUnavailable is returned when a display backend cannot be initialized
var ErrBackendUnavailable = errors.New("render: backend unavailable")

// Canvas is a color buffer with a depth buffer; smaller depth is closer
type Canvas struct {
	width  int
	height int
	color  []palette.RGB
	depth  []float64
}

// NewCanvas creates a cleared canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize adjusts dimensions, reallocating only when capacity is insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.color) < size {
		c.color = make([]palette.RGB, size)
		c.depth = make([]float64, size)
	} else {
		c.color = c.color[:size]
		c.depth = c.depth[:size]
	}
	c.width = width
	c.height = height
	c.Clear(palette.Black)
}

// Clear fills with bg and resets depth using exponential copy
func (c *Canvas) Clear(bg palette.RGB) {
	if len(c.color) == 0 {
		return
	}
	c.color[0] = bg
	c.depth[0] = math.Inf(1)
	for filled := 1; filled < len(c.color); filled *= 2 {
		copy(c.color[filled:], c.color[:filled])
		copy(c.depth[filled:], c.depth[:filled])
	}
}

// Size returns the pixel dimensions
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// At returns the color at x, y; out of bounds is black
func (c *Canvas) At(x, y int) palette.RGB {
	if !c.inBounds(x, y) {
		return palette.Black
	}
	return c.color[y*c.width+x]
}

// Depth returns the depth at x, y; out of bounds is +Inf
func (c *Canvas) Depth(x, y int) float64 {
	if !c.inBounds(x, y) {
		return math.Inf(1)
	}
	return c.depth[y*c.width+x]
}

// Plot composites col at x, y if z passes the depth test
// Opaque writes update depth; translucent writes blend without occluding
func (c *Canvas) Plot(x, y int, z float64, col palette.RGB, alpha float64) bool {
	if !c.inBounds(x, y) || alpha <= 0 {
		return false
	}
	idx := y*c.width + x
	if z >= c.depth[idx] {
		return false
	}
	if alpha >= 1 {
		c.color[idx] = col
		c.depth[idx] = z
		return true
	}
	c.color[idx] = c.color[idx].Blend(col, alpha)
	return true
}

// Image copies the canvas into an RGBA image
func (c *Canvas) Image(dst *image.RGBA) *image.RGBA {
	if dst == nil || dst.Bounds().Dx() != c.width || dst.Bounds().Dy() != c.height {
		dst = image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	}
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.color[y*c.width+x]
			dst.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
		}
	}
	return dst
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}
