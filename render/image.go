package render

import (
	"image"
	"sync"

	"github.com/lixenwraith/fabviz/engine"
)

// ImagePresenter rasterizes frames into an RGBA image of fixed size
// The latest image and HUD lines may be read from another goroutine
type ImagePresenter struct {
	canvas *Canvas
	raster *Rasterizer

	mu    sync.Mutex
	img   *image.RGBA
	lines []string
	cols  int
}

// NewImagePresenter creates a presenter of width x height pixels; hudCols wraps HUD prose
func NewImagePresenter(width, height, hudCols int) *ImagePresenter {
	return &ImagePresenter{
		canvas: NewCanvas(width, height),
		raster: NewRasterizer(),
		cols:   hudCols,
	}
}

// Resize changes the pixel size for subsequent frames
func (p *ImagePresenter) Resize(width, height int) {
	if w, h := p.canvas.Size(); w != width || h != height {
		p.canvas.Resize(width, height)
	}
}

// Present implements engine.Presenter
func (p *ImagePresenter) Present(f *engine.Frame) error {
	p.raster.Draw(p.canvas, f.Camera, f.Graph, f.Particles)
	lines := HUDLines(f, p.cols)

	p.mu.Lock()
	p.img = p.canvas.Image(p.img)
	p.lines = lines
	p.mu.Unlock()
	return nil
}

// Snapshot returns the last presented image and HUD lines; nil before the first frame
// The image is reused by the next Present
func (p *ImagePresenter) Snapshot() (*image.RGBA, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.img, p.lines
}

// Canvas exposes the pixel buffer for inspection
func (p *ImagePresenter) Canvas() *Canvas {
	return p.canvas
}
