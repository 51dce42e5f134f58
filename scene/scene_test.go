package scene

import (
	"testing"
	"time"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/vmath"
)

func newComposer(t *testing.T, process string) (*Composer, *catalog.Catalog, *status.Registry) {
	t.Helper()
	cat, err := catalog.Builtin(process)
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	reg := status.NewRegistry()
	return NewComposer(NewGraph(cat.Elements()), reg, nil), cat, reg
}

func visible(g *Graph) map[string]bool {
	out := make(map[string]bool)
	for _, n := range g.Nodes() {
		if n.Visible {
			out[n.Name()] = true
		}
	}
	return out
}

func TestGraphStartsHidden(t *testing.T) {
	c, cat, _ := newComposer(t, "cmp")
	if c.Graph().Len() != len(cat.Elements()) {
		t.Fatalf("Len = %d, want %d", c.Graph().Len(), len(cat.Elements()))
	}
	for _, n := range c.Graph().Nodes() {
		if n.Visible || n.Drawn() {
			t.Errorf("node %s visible before first reconcile", n.Name())
		}
	}
}

func TestReconcileShowsListedOnly(t *testing.T) {
	c, cat, _ := newComposer(t, "mosfet")

	for i := 0; i < cat.Len(); i++ {
		step := cat.Step(i)
		c.Reconcile(i-1, step)

		got := visible(c.Graph())
		if len(got) != len(step.Scene.Elements) {
			t.Errorf("step %d: %d visible, want %d", i, len(got), len(step.Scene.Elements))
		}
		for _, es := range step.Scene.Elements {
			if !got[es.Element] {
				t.Errorf("step %d: %s not visible", i, es.Element)
			}
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	c, cat, _ := newComposer(t, "drie")

	for i := 0; i < cat.Len(); i++ {
		first := c.Reconcile(i-1, cat.Step(i))
		if i == 0 && first.Empty() {
			t.Error("first compose should show elements")
		}
		targets := make(map[string]Pose)
		for _, n := range c.Graph().Nodes() {
			targets[n.Name()] = n.Target
		}

		second := c.Reconcile(i-1, cat.Step(i))
		if !second.Empty() {
			t.Errorf("step %d: second reconcile diff = %+v", i, second)
		}
		for _, n := range c.Graph().Nodes() {
			if n.Target != targets[n.Name()] {
				t.Errorf("step %d: %s target changed on repeat", i, n.Name())
			}
		}
	}
}

func TestReconcileSkipsMissingElements(t *testing.T) {
	c, cat, reg := newComposer(t, "cmp")

	step := *cat.Step(0)
	step.Scene.Elements = append([]catalog.ElementState{{Element: "ghost"}}, step.Scene.Elements...)

	d := c.Reconcile(-1, &step)
	if len(d.Skipped) != 1 || d.Skipped[0] != "ghost" {
		t.Errorf("Skipped = %v, want [ghost]", d.Skipped)
	}
	// Every known element of the step still applies
	got := visible(c.Graph())
	for _, es := range cat.Step(0).Scene.Elements {
		if !got[es.Element] {
			t.Errorf("%s not visible after partial composition", es.Element)
		}
	}
	if n := reg.Ints.Get(status.KeySceneSkipped).Load(); n != 1 {
		t.Errorf("skipped metric = %d, want 1", n)
	}
}

func TestReconcileSnapPolicy(t *testing.T) {
	tests := []struct {
		name     string
		prev     int
		next     int
		wantSnap bool
	}{
		{"first compose", -1, 0, true},
		{"adjacent forward", 2, 3, false},
		{"adjacent back", 3, 2, false},
		{"jump", 1, 6, true},
		{"reset", 7, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, cat, _ := newComposer(t, "cmp")
			if tt.prev >= 0 {
				c.Reconcile(-1, cat.Step(tt.prev))
			}
			d := c.Reconcile(tt.prev, cat.Step(tt.next))
			if d.Snap != tt.wantSnap {
				t.Errorf("Snap = %v, want %v", d.Snap, tt.wantSnap)
			}
			if tt.wantSnap && !c.Graph().Settled() {
				t.Error("snapped graph not settled")
			}
		})
	}
}

func TestEaseConverges(t *testing.T) {
	c, cat, _ := newComposer(t, "cmp")
	c.Reconcile(-1, cat.Step(2))
	c.Reconcile(2, cat.Step(3)) // film squashes

	film := c.Graph().Node("film")
	if film.Current == film.Target {
		t.Fatal("adjacent transition should ease, not snap")
	}

	for i := 0; i < 240; i++ {
		c.Graph().Ease(16 * time.Millisecond)
	}
	if !c.Graph().Settled() {
		t.Error("graph not settled after ~4s of easing")
	}
	if film.Current.Scale.Y != 0.3 {
		t.Errorf("film scale = %v, want 0.3", film.Current.Scale.Y)
	}
}

func TestEaseDoesNotChangeTargets(t *testing.T) {
	c, cat, _ := newComposer(t, "bonding")
	c.Reconcile(-1, cat.Step(0))
	c.Reconcile(0, cat.Step(1))

	before := make(map[string]Pose)
	for _, n := range c.Graph().Nodes() {
		before[n.Name()] = n.Target
	}
	c.Graph().Ease(time.Second)
	for _, n := range c.Graph().Nodes() {
		if n.Target != before[n.Name()] {
			t.Errorf("Ease changed target of %s", n.Name())
		}
	}
}

func TestTargetPoseDefaults(t *testing.T) {
	g := NewGraph([]catalog.ElementSpec{
		{Name: "a", Size: vmath.V3F(1, 1, 1), Color: "#102030", Opacity: 0.4},
	})
	c := NewComposer(g, nil, nil)
	step := &catalog.Step{Scene: catalog.SceneConfig{Elements: []catalog.ElementState{
		{Element: "a", Scale: vmath.V3F(0, 2, 0)},
	}}}
	c.Reconcile(-1, step)

	n := g.Node("a")
	if n.Target.Scale != vmath.V3F(1, 2, 1) {
		t.Errorf("Scale = %+v, want (1,2,1)", n.Target.Scale)
	}
	if n.Target.Opacity != 0.4 {
		t.Errorf("Opacity = %v, want spec 0.4", n.Target.Opacity)
	}
	if n.Target.Color != n.Base {
		t.Errorf("Color = %+v, want base", n.Target.Color)
	}

	b := n.Bounds()
	if !vmath.V3FNear(b.Size(), vmath.V3F(1, 2, 1), 1e-12) {
		t.Errorf("Bounds size = %+v", b.Size())
	}
}

func TestComposerHandlesStepEvents(t *testing.T) {
	c, cat, _ := newComposer(t, "lithography")
	q := event.NewQueue()
	r := event.NewRouter(q)
	r.Register(c)

	q.Push(event.Event{Type: event.EventStepChanged, Payload: &event.StepChangedPayload{Previous: -1, Step: cat.Step(1), Count: cat.Len()}})
	r.DispatchAll()

	if !c.Graph().Node("resist").Visible {
		t.Error("spin coat step should show resist")
	}
}
