package engine

import (
	"time"

	"github.com/lixenwraith/fabviz/camera"
	"github.com/lixenwraith/fabviz/panel"
	"github.com/lixenwraith/fabviz/particle"
	"github.com/lixenwraith/fabviz/scene"
	"github.com/lixenwraith/fabviz/status"
)

// Frame is everything a presenter needs for one display refresh
// Graph and Particles are live views; presenters must not retain them past Present
type Frame struct {
	Number    int64
	Time      time.Time
	Delta     time.Duration
	Title     string // process title
	Graph     *scene.Graph
	Particles *particle.Field
	Camera    camera.Pose
	HUD       panel.View
	Stats     []status.Entry // nil unless the stats overlay is on
}

// Presenter displays frames
// Implementations: terminal (tcell), window (ebiten), headless
type Presenter interface {
	Present(f *Frame) error
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(f *Frame) error

func (fn PresenterFunc) Present(f *Frame) error { return fn(f) }
