// Package scene holds the element graph of a process and reconciles it against steps
package scene

import (
	"math"
	"time"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/palette"
	"github.com/lixenwraith/fabviz/vmath"
)

// EaseRate is the exponential approach rate of eased transitions, per second
const EaseRate = 6.0

// easeEpsilon is the distance below which an eased value snaps to its target
const easeEpsilon = 1e-3

// Pose is the presentable state of a node
type Pose struct {
	Offset  vmath.Vec3F
	Scale   vmath.Vec3F
	Color   palette.RGB
	Opacity float64
	Glow    float64
}

func (p Pose) near(o Pose) bool {
	return vmath.V3FNear(p.Offset, o.Offset, easeEpsilon) &&
		vmath.V3FNear(p.Scale, o.Scale, easeEpsilon) &&
		colorNear(p.Color, o.Color) &&
		math.Abs(p.Opacity-o.Opacity) <= easeEpsilon &&
		math.Abs(p.Glow-o.Glow) <= easeEpsilon
}

// colorNear tolerates the truncation of 8-bit blending
func colorNear(a, b palette.RGB) bool {
	return absDiff(a.R, b.R) <= 2 && absDiff(a.G, b.G) <= 2 && absDiff(a.B, b.B) <= 2
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func lerpPose(a, b Pose, t float64) Pose {
	color := b.Color
	if a.Color != b.Color {
		color = palette.Lerp(a.Color, b.Color, t)
	}
	return Pose{
		Offset:  vmath.V3FLerp(a.Offset, b.Offset, t),
		Scale:   vmath.V3FLerp(a.Scale, b.Scale, t),
		Color:   color,
		Opacity: vmath.Lerp(a.Opacity, b.Opacity, t),
		Glow:    vmath.Lerp(a.Glow, b.Glow, t),
	}
}

// Node is one element of the asset set
// Target is set by the Composer; Current chases it through Graph.Ease
type Node struct {
	Spec    catalog.ElementSpec
	Base    palette.RGB
	Visible bool
	Target  Pose
	Current Pose
}

// Name returns the element name
func (n *Node) Name() string {
	return n.Spec.Name
}

// Bounds returns the world-space box of the current pose
func (n *Node) Bounds() vmath.Box3F {
	center := vmath.V3FAdd(n.Spec.Position, n.Current.Offset)
	half := vmath.V3FScale(vmath.V3FMul(n.Spec.Size, n.Current.Scale), 0.5)
	return vmath.Box3F{Min: vmath.V3FSub(center, half), Max: vmath.V3FAdd(center, half)}
}

// Drawn reports whether the node contributes to a frame
func (n *Node) Drawn() bool {
	return n.Current.Opacity > easeEpsilon
}

// hiddenPose is the starting pose of every node: spec transform, fully transparent
func (n *Node) hiddenPose() Pose {
	return Pose{Scale: vmath.One, Color: n.Base}
}

// Graph is the scene graph built once from a catalog's asset set
type Graph struct {
	nodes []*Node
	index map[string]*Node
}

// NewGraph creates one hidden node per element, in asset order
func NewGraph(elements []catalog.ElementSpec) *Graph {
	g := &Graph{
		nodes: make([]*Node, 0, len(elements)),
		index: make(map[string]*Node, len(elements)),
	}
	for _, e := range elements {
		base, err := palette.ParseHex(e.Color)
		if err != nil {
			base = palette.White
		}
		n := &Node{Spec: e, Base: base}
		n.Target = n.hiddenPose()
		n.Current = n.Target
		g.nodes = append(g.nodes, n)
		g.index[e.Name] = n
	}
	return g
}

// Node returns the named node or nil
func (g *Graph) Node(name string) *Node {
	return g.index[name]
}

// Nodes returns all nodes in asset order
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the node count
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Ease moves every node's current pose toward its target
// Purely cosmetic; the target scene is fully determined by the last Reconcile
func (g *Graph) Ease(dt time.Duration) {
	if dt <= 0 {
		return
	}
	t := 1 - math.Exp(-EaseRate*dt.Seconds())
	for _, n := range g.nodes {
		if n.Current == n.Target {
			continue
		}
		next := lerpPose(n.Current, n.Target, t)
		if next.near(n.Target) {
			next = n.Target
		}
		n.Current = next
	}
}

// Snap sets every current pose to its target
func (g *Graph) Snap() {
	for _, n := range g.nodes {
		n.Current = n.Target
	}
}

// Settled reports whether no node is mid-transition
func (g *Graph) Settled() bool {
	for _, n := range g.nodes {
		if n.Current != n.Target {
			return false
		}
	}
	return true
}
