package scene

import (
	"log/slog"
	"sync/atomic"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/palette"
	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/vmath"
)

// Diff lists what a Reconcile call changed
type Diff struct {
	Shown   []string // hidden → visible
	Hidden  []string // visible → hidden
	Changed []string // visible, target pose changed
	Skipped []string // referenced by the step but absent from the asset set
	Snap    bool     // transition applied without easing
}

// Empty reports whether the call changed the target scene
// Skipped references alone do not count as a change
func (d Diff) Empty() bool {
	return len(d.Shown) == 0 && len(d.Hidden) == 0 && len(d.Changed) == 0
}

// Composer maps a step's SceneConfig onto the graph
// Holds no time-dependent state; the result depends only on the graph and the step
type Composer struct {
	graph *Graph
	log   *slog.Logger

	statReconciles *atomic.Int64
	statSkipped    *atomic.Int64
}

func NewComposer(g *Graph, reg *status.Registry, logger *slog.Logger) *Composer {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Composer{
		graph:          g,
		log:            logger.With("component", "scene"),
		statReconciles: reg.Ints.Get(status.KeySceneReconciles),
		statSkipped:    reg.Ints.Get(status.KeySceneSkipped),
	}
}

// Graph returns the composed graph
func (c *Composer) Graph() *Graph {
	return c.graph
}

// Reconcile updates node targets to match step
// Elements listed in the step's scene are shown, all others hidden
// Unknown element names are skipped and logged; the rest of the step still applies
// Adjacent transitions ease; the first compose, resets and jumps snap
func (c *Composer) Reconcile(previousIndex int, step *catalog.Step) Diff {
	var d Diff
	if step == nil {
		return d
	}
	c.statReconciles.Add(1)

	listed := make(map[string]catalog.ElementState, len(step.Scene.Elements))
	for _, es := range step.Scene.Elements {
		if c.graph.Node(es.Element) == nil {
			d.Skipped = append(d.Skipped, es.Element)
			continue
		}
		listed[es.Element] = es // last entry wins on duplicates
	}

	for _, n := range c.graph.nodes {
		es, show := listed[n.Name()]
		var target Pose
		if show {
			target = c.targetPose(n, es)
		} else {
			target = n.Target
			target.Opacity = 0
		}

		switch {
		case show && !n.Visible:
			d.Shown = append(d.Shown, n.Name())
		case !show && n.Visible:
			d.Hidden = append(d.Hidden, n.Name())
		case show && target != n.Target:
			d.Changed = append(d.Changed, n.Name())
		}
		n.Visible = show
		n.Target = target
	}

	if len(d.Skipped) > 0 {
		c.statSkipped.Add(int64(len(d.Skipped)))
		c.log.Warn("scene elements missing from asset set", "step", step.Index, "elements", d.Skipped)
	}

	d.Snap = previousIndex < 0 || abs(step.Index-previousIndex) != 1
	if d.Snap {
		c.graph.Snap()
	}
	return d
}

func (c *Composer) targetPose(n *Node, es catalog.ElementState) Pose {
	p := Pose{
		Offset:  es.Offset,
		Scale:   es.Scale,
		Color:   n.Base,
		Opacity: es.Opacity,
		Glow:    vmath.Clamp01(es.Glow),
	}
	if p.Scale.X == 0 {
		p.Scale.X = 1
	}
	if p.Scale.Y == 0 {
		p.Scale.Y = 1
	}
	if p.Scale.Z == 0 {
		p.Scale.Z = 1
	}
	if es.Color != "" {
		if col, err := palette.ParseHex(es.Color); err == nil {
			p.Color = col
		}
	}
	if p.Opacity == 0 {
		p.Opacity = n.Spec.Opacity
	}
	if p.Opacity == 0 {
		p.Opacity = 1
	}
	p.Opacity = vmath.Clamp01(p.Opacity)
	return p
}

// HandleEvent implements event.Handler
func (c *Composer) HandleEvent(ev event.Event) {
	if p, ok := ev.Payload.(*event.StepChangedPayload); ok {
		c.Reconcile(p.Previous, p.Step)
	}
}

// EventTypes implements event.Handler
func (c *Composer) EventTypes() []event.EventType {
	return []event.EventType{event.EventStepChanged}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
