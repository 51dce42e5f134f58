package render

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fabviz/camera"
	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/palette"
	"github.com/lixenwraith/fabviz/scene"
	"github.com/lixenwraith/fabviz/vmath"
)

func TestCanvasDepthTest(t *testing.T) {
	c := NewCanvas(4, 4)
	red := palette.RGB{R: 255}
	blue := palette.RGB{B: 255}

	if !c.Plot(1, 1, 0.5, red, 1) {
		t.Fatal("first opaque plot rejected")
	}
	if c.Plot(1, 1, 0.7, blue, 1) {
		t.Error("farther plot passed depth test")
	}
	if got := c.At(1, 1); got != red {
		t.Errorf("At = %v, want red", got)
	}
	if !c.Plot(1, 1, 0.2, blue, 1) {
		t.Error("nearer plot rejected")
	}
	if got := c.Depth(1, 1); got != 0.2 {
		t.Errorf("Depth = %v, want 0.2", got)
	}
}

func TestCanvasTranslucentDoesNotOcclude(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Plot(0, 0, 0.3, palette.White, 0.5)
	if !math.IsInf(c.Depth(0, 0), 1) {
		t.Errorf("translucent plot wrote depth %v", c.Depth(0, 0))
	}
	if got := c.At(0, 0); got.R < 120 || got.R > 135 {
		t.Errorf("blended R = %d, want about half", got.R)
	}
	if !c.Plot(0, 0, 0.9, palette.RGB{G: 255}, 1) {
		t.Error("opaque plot behind translucent one rejected")
	}
}

func TestCanvasBoundsAndResize(t *testing.T) {
	c := NewCanvas(3, 2)
	if c.Plot(-1, 0, 0, palette.White, 1) || c.Plot(3, 0, 0, palette.White, 1) {
		t.Error("out of bounds plot accepted")
	}
	if got := c.At(10, 10); got != palette.Black {
		t.Errorf("At out of bounds = %v, want black", got)
	}

	c.Plot(0, 0, 0, palette.White, 1)
	c.Resize(5, 5)
	if w, h := c.Size(); w != 5 || h != 5 {
		t.Errorf("Size = %dx%d, want 5x5", w, h)
	}
	if got := c.At(0, 0); got != palette.Black {
		t.Errorf("Resize did not clear: %v", got)
	}

	img := c.Image(nil)
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
		t.Errorf("Image bounds = %v", b)
	}
}

// cubeGraph builds a composed single-cube scene at the origin
func cubeGraph(opacity float64) *scene.Graph {
	g := scene.NewGraph([]catalog.ElementSpec{{
		Name:    "cube",
		Size:    vmath.V3F(3, 3, 3),
		Color:   "#ff0000",
		Opacity: opacity,
	}})
	scene.NewComposer(g, nil, nil).Reconcile(-1, &catalog.Step{
		Scene: catalog.SceneConfig{Elements: []catalog.ElementState{{Element: "cube"}}},
	})
	return g
}

func TestRasterizerDrawsBox(t *testing.T) {
	c := NewCanvas(64, 64)
	r := NewRasterizer()
	r.Draw(c, camera.NewRig(0, nil).Pose(), cubeGraph(1), nil)

	center := c.At(32, 32)
	if center.R == 0 || center.G != 0 || center.B != 0 {
		t.Errorf("center pixel = %v, want shaded red", center)
	}
	if math.IsInf(c.Depth(32, 32), 1) {
		t.Error("opaque box left no depth")
	}
	if got := c.At(0, 0); got != r.Background {
		t.Errorf("corner = %v, want background %v", got, r.Background)
	}
}

func TestRasterizerTranslucentBox(t *testing.T) {
	c := NewCanvas(64, 64)
	r := NewRasterizer()
	r.Draw(c, camera.NewRig(0, nil).Pose(), cubeGraph(0.4), nil)

	center := c.At(32, 32)
	if center == r.Background {
		t.Error("translucent box not drawn")
	}
	if !math.IsInf(c.Depth(32, 32), 1) {
		t.Error("translucent box wrote depth")
	}
}

func TestRasterizerHiddenNodeSkipped(t *testing.T) {
	g := cubeGraph(1)
	scene.NewComposer(g, nil, nil).Reconcile(-1, &catalog.Step{Index: 3})

	c := NewCanvas(32, 32)
	r := NewRasterizer()
	r.Draw(c, camera.NewRig(0, nil).Pose(), g, nil)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if c.At(x, y) != r.Background {
				t.Fatalf("pixel %d,%d drawn for hidden node", x, y)
			}
		}
	}
}

func TestProjectTargetToCenter(t *testing.T) {
	c := NewCanvas(80, 40)
	r := NewRasterizer()
	pose := camera.NewRig(0, nil).Pose()
	r.Draw(c, pose, nil, nil)

	x, y, _, ok := r.Project(pose.Target)
	if !ok {
		t.Fatal("target not projectable")
	}
	if math.Abs(x-40) > 1e-6 || math.Abs(y-20) > 1e-6 {
		t.Errorf("target projects to %.3f,%.3f want 40,20", x, y)
	}
	if _, _, _, ok := r.Project(vmath.V3FScale(pose.Eye, 2)); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		width int
		ratio float64
		full  int
	}{
		{10, 0, 0},
		{10, 0.5, 5},
		{10, 1, 10},
		{10, 2, 10},
		{8, -1, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.width, tt.ratio)
		if got := strings.Count(bar, "█"); got != tt.full {
			t.Errorf("ProgressBar(%d, %v) full = %d, want %d", tt.width, tt.ratio, got, tt.full)
		}
		if got := len([]rune(bar)); got != tt.width {
			t.Errorf("ProgressBar(%d, %v) width = %d", tt.width, tt.ratio, got)
		}
	}
	if ProgressBar(0, 0.5) != "" {
		t.Error("zero width bar should be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"a  b\tc", 10, []string{"a b c"}},
	}
	for _, tt := range tests {
		got := Wrap(tt.in, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		w, h              int
		viewW, viewH, sid int
	}{
		{120, 40, 80, 39, 40},
		{200, 50, 158, 49, 42},
		{50, 20, 50, 19, 0},
		{0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		vw, vh, sw := Layout(tt.w, tt.h)
		if vw != tt.viewW || vh != tt.viewH || sw != tt.sid {
			t.Errorf("Layout(%d,%d) = %d,%d,%d want %d,%d,%d", tt.w, tt.h, vw, vh, sw, tt.viewW, tt.viewH, tt.sid)
		}
	}
}

// newFrameLoop returns a CMP loop after its first tick
func newFrameLoop(t *testing.T) *engine.Loop {
	t.Helper()
	cat, err := catalog.Builtin("cmp")
	if err != nil {
		t.Fatal(err)
	}
	l := engine.New(cat, engine.Options{Clock: engine.NewMockTimeProvider(time.Unix(0, 0))})
	l.Tick()
	return l
}

func rowText(s tcell.SimulationScreen, y, x0, width int) string {
	var sb strings.Builder
	for x := x0; x < x0+width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestTerminalPresent(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(TerminalOptions{Screen: sim})
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	defer term.Fini()
	sim.SetSize(120, 40)

	l := newFrameLoop(t)
	f := l.Frame()
	if err := term.Present(&f); err != nil {
		t.Fatalf("Present: %v", err)
	}

	viewW, _, sideW := Layout(120, 40)
	if got := rowText(sim, 0, viewW+1, sideW-2); !strings.HasPrefix(got, f.Title) {
		t.Errorf("sidebar title row = %q, want prefix %q", got, f.Title)
	}
	if got := rowText(sim, 1, viewW+1, sideW-2); !strings.HasPrefix(got, "Step 1 of 8") {
		t.Errorf("sidebar label row = %q", got)
	}
	if r, _, _, _ := sim.GetContent(0, 0); r != '▀' {
		t.Errorf("viewport cell = %q, want half block", r)
	}
	if got := rowText(sim, 39, 0, 10); !strings.HasPrefix(Legend, strings.TrimSpace(got)) {
		t.Errorf("legend row = %q", got)
	}

	l.Apply(engine.Action{Kind: engine.ActionNext})
	l.Tick()
	f = l.Frame()
	term.Present(&f)
	if got := rowText(sim, 1, viewW+1, sideW-2); !strings.HasPrefix(got, "Step 2 of 8") {
		t.Errorf("label after next = %q", got)
	}
}

func TestTerminalNarrowOverlay(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(TerminalOptions{Screen: sim})
	if err != nil {
		t.Fatal(err)
	}
	defer term.Fini()
	sim.SetSize(50, 20)

	l := newFrameLoop(t)
	f := l.Frame()
	term.Present(&f)
	if got := rowText(sim, 1, 0, 11); got != "Step 1 of 8" {
		t.Errorf("overlay label = %q", got)
	}
}

type failingScreen struct {
	tcell.Screen
}

func (failingScreen) Init() error { return errors.New("no tty") }

func TestTerminalInitFailure(t *testing.T) {
	_, err := NewTerminal(TerminalOptions{Screen: failingScreen{}})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestImagePresenter(t *testing.T) {
	p := NewImagePresenter(96, 64, 30)
	if img, _ := p.Snapshot(); img != nil {
		t.Error("Snapshot before first frame should be nil")
	}
	l := newFrameLoop(t)
	l.SetPresenter(p)
	if err := l.Tick(); err != nil {
		t.Fatal(err)
	}
	img, lines := p.Snapshot()
	if img == nil || img.Bounds().Dx() != 96 || img.Bounds().Dy() != 64 {
		t.Fatalf("image = %v", img)
	}
	if len(lines) == 0 || lines[0] != l.Catalog().Title() {
		t.Errorf("HUD lines = %q", lines)
	}
}
