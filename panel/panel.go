// Package panel derives the textual readout for the active step
package panel

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
)

// Render returns the step's parameter readout in authored order
func Render(step *catalog.Step) []catalog.Parameter {
	if step == nil {
		return nil
	}
	return step.Parameters
}

// ProgressLabel formats the 1-based position, e.g. "Step 1 of 8"
func ProgressLabel(index, count int) string {
	return fmt.Sprintf("Step %d of %d", index+1, count)
}

// View is the passive display model rebuilt on every step or mode event
type View struct {
	Process     string
	Title       string
	Description string
	Parameters  []catalog.Parameter
	Index       int
	Count       int
	Progress    float64 // Index/(Count-1)
	Label       string  // "Step i of N"
	Playing     bool
	Finished    bool
}

// Panel keeps the latest View; it never polls playback
// View may be read from another goroutine (window backend draw)
type Panel struct {
	process string

	mu   sync.RWMutex
	view View
}

func New(process string) *Panel {
	return &Panel{
		process: process,
		view:    View{Process: process},
	}
}

// View returns the current display model
func (p *Panel) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// HandleEvent implements event.Handler
func (p *Panel) HandleEvent(ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Type {
	case event.EventStepChanged:
		pl, ok := ev.Payload.(*event.StepChangedPayload)
		if !ok || pl.Step == nil {
			return
		}
		p.view.Title = pl.Step.Title
		p.view.Description = pl.Step.Description
		p.view.Parameters = Render(pl.Step)
		p.view.Index = pl.Step.Index
		p.view.Count = pl.Count
		p.view.Label = ProgressLabel(pl.Step.Index, pl.Count)
		p.view.Progress = 0
		if pl.Count > 1 {
			p.view.Progress = float64(pl.Step.Index) / float64(pl.Count-1)
		}
		p.view.Finished = false

	case event.EventModeChanged:
		if pl, ok := ev.Payload.(*event.ModeChangedPayload); ok {
			p.view.Playing = pl.Playing
			if pl.Playing {
				p.view.Finished = false
			}
		}

	case event.EventPlaybackFinished:
		p.view.Finished = true
	}
}

// EventTypes implements event.Handler
func (p *Panel) EventTypes() []event.EventType {
	return []event.EventType{event.EventStepChanged, event.EventModeChanged, event.EventPlaybackFinished}
}
