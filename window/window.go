//go:build cgo

// Package window hosts the loop in a desktop window; ebiten drives the frame schedule
package window

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/render"
)

const (
	hudCols    = 44
	lineHeight = 16
	hudPadding = 6
)

var hudBackdrop = color.RGBA{R: 10, G: 12, B: 18, A: 190}

// The debug font is ASCII only
var asciiHUD = strings.NewReplacer(
	"█", "#",
	"░", "-",
	"▶", ">",
	"■", "[]",
	"❚❚", "||",
	"←", "<-",
	"→", "->",
	"↑↓", "up/down",
)

// Options sizes the window
type Options struct {
	Width  int
	Height int
	Title  string
}

// Host is the ebiten.Game running one loop
// Update and Draw run on the same goroutine, so the loop stays single-threaded
type Host struct {
	loop      *engine.Loop
	presenter *render.ImagePresenter
	opts      Options

	frame   *ebiten.Image
	started bool
}

// New attaches an image presenter of the window size to loop
func New(loop *engine.Loop, opts Options) *Host {
	if opts.Width <= 0 {
		opts.Width = 960
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	p := render.NewImagePresenter(opts.Width, opts.Height, hudCols)
	loop.SetPresenter(p)
	return &Host{loop: loop, presenter: p, opts: opts}
}

// Available reports whether a display server is reachable
func Available() bool {
	if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Run blocks until the window closes or a quit action arrives
// A failure before the first frame wraps render.ErrBackendUnavailable
func (h *Host) Run() error {
	if !Available() {
		return fmt.Errorf("%w: window: no display", render.ErrBackendUnavailable)
	}
	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(time.Second / h.loop.Interval()))

	err := ebiten.RunGame(h)
	switch {
	case err == nil, errors.Is(err, ebiten.Termination):
		return nil
	case !h.started:
		return fmt.Errorf("%w: window: %v", render.ErrBackendUnavailable, err)
	default:
		return err
	}
}

// Update implements ebiten.Game
func (h *Host) Update() error {
	h.started = true
	for _, a := range Actions(pressedNow) {
		if h.loop.Apply(a) {
			return ebiten.Termination
		}
	}
	return h.loop.Tick()
}

// Draw implements ebiten.Game
func (h *Host) Draw(screen *ebiten.Image) {
	img, lines := h.presenter.Snapshot()
	if img == nil {
		return
	}
	b := img.Bounds()
	if h.frame == nil || h.frame.Bounds().Dx() != b.Dx() || h.frame.Bounds().Dy() != b.Dy() {
		if h.frame != nil {
			h.frame.Deallocate()
		}
		h.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	h.frame.WritePixels(img.Pix)
	screen.DrawImage(h.frame, nil)

	hudW := float32(hudCols*6 + 2*hudPadding)
	hudH := float32(len(lines)*lineHeight + 2*hudPadding)
	vector.DrawFilledRect(screen, 0, 0, hudW, hudH, hudBackdrop, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, asciiHUD.Replace(line), hudPadding, hudPadding+i*lineHeight)
	}
	ebitenutil.DebugPrintAt(screen, asciiHUD.Replace(render.Legend), hudPadding, b.Dy()-lineHeight-hudPadding)
}

// Layout implements ebiten.Game; the logical size follows the window so the rasterizer resizes with it
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		h.presenter.Resize(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return h.opts.Width, h.opts.Height
}
