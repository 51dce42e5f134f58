// Package playback owns the step index and auto-play timer of one process session
package playback

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/vmath"
)

// Controller is the only writer of playback State
// Not safe for concurrent use; owned by the loop goroutine
// Every index or mode change is published on the event queue
type Controller struct {
	catalog *catalog.Catalog
	queue   *event.Queue
	log     *slog.Logger
	state   State

	frame int64
	now   time.Time

	// Cached metric pointers
	statTransitions *atomic.Int64
	statMode        *status.AtomicString
}

// NewController starts Idle at index 0
// reg and logger may be nil
func NewController(cat *catalog.Catalog, queue *event.Queue, reg *status.Registry, logger *slog.Logger) *Controller {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		catalog:         cat,
		queue:           queue,
		log:             logger.With("component", "playback", "process", cat.Name()),
		statTransitions: reg.Ints.Get(status.KeyTransitions),
		statMode:        reg.Strings.Get(status.KeyPlaybackMode),
	}
	c.statMode.Store(ModeIdle.String())
	return c
}

// Stamp sets the frame number and time attached to subsequently published events
func (c *Controller) Stamp(frame int64, now time.Time) {
	c.frame = frame
	c.now = now
}

// State returns a snapshot
func (c *Controller) State() State {
	return c.state
}

// Step returns the active step
func (c *Controller) Step() *catalog.Step {
	return c.catalog.Step(c.state.Index)
}

// Catalog returns the catalog being played
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Progress returns Index/(N-1) in [0, 1]
func (c *Controller) Progress() float64 {
	return float64(c.state.Index) / float64(c.catalog.Last())
}

// Announce publishes the current step so observers compose the initial scene
func (c *Controller) Announce() {
	c.publishStep(-1)
	c.publishMode()
}

// Next advances one step; no-op at the last step
// Valid in either mode; the timer restarts on the new step
func (c *Controller) Next() {
	c.moveTo(c.state.Index + 1)
}

// Previous steps back; no-op at index 0
func (c *Controller) Previous() {
	c.moveTo(c.state.Index - 1)
}

// Seek jumps to i, clamped to the catalog range
func (c *Controller) Seek(i int) {
	c.moveTo(i)
}

// Play starts auto-advance from the current step; no-op while Playing
// The elapsed time of the current step is kept so Pause/Play resumes mid-step
func (c *Controller) Play() {
	if c.state.Mode == ModePlaying {
		return
	}
	c.setMode(ModePlaying)
}

// Pause stops auto-advance synchronously; no-op while Idle
func (c *Controller) Pause() {
	if c.state.Mode == ModeIdle {
		return
	}
	c.setMode(ModeIdle)
}

// TogglePlay is the Play/Pause input
func (c *Controller) TogglePlay() {
	if c.state.Mode == ModePlaying {
		c.Pause()
		return
	}
	c.Play()
}

// Reset returns to (0, Idle) from any state
func (c *Controller) Reset() {
	prev := c.state.Index
	c.state.Elapsed = 0
	if c.state.Mode != ModeIdle {
		c.setMode(ModeIdle)
	}
	if prev != 0 {
		c.state.Index = 0
		c.publishStep(prev)
	}
	c.push(event.EventPlaybackReset, nil)
	c.log.Debug("reset", "from", prev)
}

// Advance is the auto-play timer tick, active only while Playing
// At most one transition happens per call; time left over after a transition is discarded
func (c *Controller) Advance(dt time.Duration) {
	if c.state.Mode != ModePlaying || dt <= 0 {
		return
	}

	c.state.Elapsed += dt
	step := c.catalog.Step(c.state.Index)
	if c.state.Elapsed < step.Dwell {
		return
	}

	if c.state.Index == c.catalog.Last() {
		// Halt at the end rather than wrapping
		c.state.Elapsed = 0
		c.setMode(ModeIdle)
		c.push(event.EventPlaybackFinished, &event.StepChangedPayload{
			Previous: c.state.Index,
			Step:     step,
			Count:    c.catalog.Len(),
		})
		c.log.Debug("playback finished", "index", c.state.Index)
		return
	}

	c.moveTo(c.state.Index + 1)
}

func (c *Controller) moveTo(i int) {
	i = vmath.ClampInt(i, 0, c.catalog.Last())
	if i == c.state.Index {
		return
	}
	prev := c.state.Index
	c.state.Index = i
	c.state.Elapsed = 0
	c.publishStep(prev)
}

func (c *Controller) setMode(m Mode) {
	c.state.Mode = m
	c.statMode.Store(m.String())
	c.publishMode()
	c.log.Debug("mode changed", "mode", m.String(), "index", c.state.Index)
}

func (c *Controller) publishStep(prev int) {
	c.statTransitions.Add(1)
	c.push(event.EventStepChanged, &event.StepChangedPayload{
		Previous: prev,
		Step:     c.catalog.Step(c.state.Index),
		Count:    c.catalog.Len(),
	})
	c.log.Debug("step changed", "from", prev, "to", c.state.Index)
}

func (c *Controller) publishMode() {
	c.push(event.EventModeChanged, &event.ModeChangedPayload{Playing: c.state.Mode == ModePlaying})
}

func (c *Controller) push(t event.EventType, payload any) {
	c.queue.Push(event.Event{
		Type:      t,
		Payload:   payload,
		Frame:     c.frame,
		Timestamp: c.now,
	})
}
