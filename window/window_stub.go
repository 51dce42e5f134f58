//go:build !cgo

package window

import (
	"fmt"

	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/render"
)

// Options sizes the window
type Options struct {
	Width  int
	Height int
	Title  string
}

// Host is unavailable without cgo
type Host struct{}

func New(*engine.Loop, Options) *Host { return &Host{} }

func Available() bool { return false }

func (h *Host) Run() error {
	return fmt.Errorf("%w: window: built without cgo", render.ErrBackendUnavailable)
}
