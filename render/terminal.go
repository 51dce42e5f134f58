package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/palette"
)

// Color modes accepted by TerminalOptions
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

const (
	minSidebarCols = 60 // below this the HUD overlays the viewport
	maxSidebar     = 42
)

var (
	hudText   = palette.RGB{R: 210, G: 214, B: 222}
	hudAccent = palette.RGB{R: 120, G: 200, B: 255}
	hudDim    = palette.RGB{R: 120, G: 124, B: 132}
	hudPanel  = palette.RGB{R: 22, G: 24, B: 32}
)

// TerminalOptions configures the terminal presenter
type TerminalOptions struct {
	ColorMode string
	Screen    tcell.Screen // nil creates the real terminal screen
}

// Terminal presents frames on a tcell screen using half-block pixels
// Each cell shows two vertically stacked pixels: fg is the upper, bg the lower
type Terminal struct {
	screen tcell.Screen
	canvas *Canvas
	raster *Rasterizer

	finiOnce sync.Once
}

// NewTerminal initializes the screen; failures wrap ErrBackendUnavailable
// The terminal is restored on crash through engine.OnCrash
func NewTerminal(opts TerminalOptions) (*Terminal, error) {
	switch opts.ColorMode {
	case ColorTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	case Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}

	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("%w: terminal: %v", ErrBackendUnavailable, err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: terminal: %v", ErrBackendUnavailable, err)
	}
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	t := &Terminal{
		screen: screen,
		canvas: NewCanvas(0, 0),
		raster: NewRasterizer(),
	}
	engine.OnCrash(t.Fini)
	return t, nil
}

// Screen exposes the tcell screen for input polling
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Fini restores the terminal; safe to call more than once
func (t *Terminal) Fini() {
	t.finiOnce.Do(func() {
		t.screen.Fini()
	})
}

// Layout returns the viewport cell size and sidebar width for a screen size
func Layout(w, h int) (viewW, viewH, sideW int) {
	if w >= minSidebarCols {
		sideW = min(maxSidebar, w/3)
	}
	viewW = max(w-sideW, 0)
	viewH = max(h-1, 0) // legend row
	return viewW, viewH, sideW
}

// Present implements engine.Presenter
func (t *Terminal) Present(f *engine.Frame) error {
	w, h := t.screen.Size()
	viewW, viewH, sideW := Layout(w, h)

	if cw, ch := t.canvas.Size(); cw != viewW || ch != viewH*2 {
		t.canvas.Resize(viewW, viewH*2)
	}
	t.raster.Draw(t.canvas, f.Camera, f.Graph, f.Particles)

	for y := 0; y < viewH; y++ {
		for x := 0; x < viewW; x++ {
			top := t.canvas.At(x, 2*y)
			bottom := t.canvas.At(x, 2*y+1)
			t.screen.SetContent(x, y, '▀', nil, tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom)))
		}
	}

	if sideW > 0 {
		t.drawSidebar(f, viewW, sideW, viewH)
	} else {
		t.drawOverlay(f, viewW, viewH)
	}
	if h > 0 {
		t.drawText(0, h-1, w, Legend, styleOn(hudDim, palette.Black))
	}

	t.screen.Show()
	return nil
}

func (t *Terminal) drawSidebar(f *engine.Frame, x0, width, rows int) {
	bg := styleOn(hudText, hudPanel)
	for y := 0; y < rows; y++ {
		for x := x0; x < x0+width; x++ {
			t.screen.SetContent(x, y, ' ', nil, bg)
		}
	}
	for i, line := range HUDLines(f, width-2) {
		if i >= rows {
			break
		}
		t.drawText(x0+1, i, width-2, line, lineStyle(i, hudPanel))
	}
}

// drawOverlay prints the title, progress and step title over the top of the viewport
func (t *Terminal) drawOverlay(f *engine.Frame, width, rows int) {
	lines := HUDLines(f, width)
	for i := 0; i < min(5, len(lines), rows); i++ {
		t.drawText(0, i, width, lines[i], lineStyle(i, palette.Black))
	}
}

// drawText writes s from x, y, clipped to maxW cells; returns cells written
func (t *Terminal) drawText(x, y, maxW int, s string, style tcell.Style) int {
	n := 0
	for _, r := range s {
		if n >= maxW {
			break
		}
		t.screen.SetContent(x+n, y, r, nil, style)
		n++
	}
	return n
}

func lineStyle(i int, bg palette.RGB) tcell.Style {
	switch i {
	case 0:
		return styleOn(hudAccent, bg).Bold(true)
	case 1, 2:
		return styleOn(hudAccent, bg)
	case 4:
		return styleOn(hudText, bg).Bold(true)
	default:
		return styleOn(hudText, bg)
	}
}

func styleOn(fg, bg palette.RGB) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
}

func tcellColor(c palette.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
