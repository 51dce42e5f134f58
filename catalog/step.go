package catalog

import (
	"strings"
	"time"

	"github.com/lixenwraith/fabviz/vmath"
)

// Step is one discrete stage of a fabrication process
type Step struct {
	Index       int
	Title       string
	Description string
	Scene       SceneConfig
	Particles   *ParticleConfig // nil: no effect during this step
	Parameters  []Parameter
	Dwell       time.Duration // auto-play time spent on this step
}

// Parameter is one line of the technical readout
type Parameter struct {
	Label string `toml:"label" yaml:"label"`
	Value string `toml:"value" yaml:"value"`
	Unit  string `toml:"unit,omitempty" yaml:"unit,omitempty"`
}

// String formats "Label: Value Unit"
func (p Parameter) String() string {
	var sb strings.Builder
	sb.WriteString(p.Label)
	sb.WriteString(": ")
	sb.WriteString(p.Value)
	if p.Unit != "" {
		sb.WriteByte(' ')
		sb.WriteString(p.Unit)
	}
	return sb.String()
}

// ElementSpec describes a scene element in the process asset set
// Elements are axis-aligned boxes; Position is the box center
type ElementSpec struct {
	Name     string      `toml:"name" yaml:"name"`
	Position vmath.Vec3F `toml:"position,inline" yaml:"position,flow"`
	Size     vmath.Vec3F `toml:"size,inline" yaml:"size,flow"`
	Color    string      `toml:"color" yaml:"color"`
	Opacity  float64     `toml:"opacity,omitempty" yaml:"opacity,omitempty"` // 0 means opaque
}

// ElementState is the per-step presentation of one element
// Zero fields fall back to the element's spec values
type ElementState struct {
	Element string      `toml:"element" yaml:"element"`
	Offset  vmath.Vec3F `toml:"offset,omitempty,inline" yaml:"offset,omitempty,flow"`
	Scale   vmath.Vec3F `toml:"scale,omitempty,inline" yaml:"scale,omitempty,flow"`
	Color   string      `toml:"color,omitempty" yaml:"color,omitempty"`
	Opacity float64     `toml:"opacity,omitempty" yaml:"opacity,omitempty"`
	Glow    float64     `toml:"glow,omitempty" yaml:"glow,omitempty"`
}

// SceneConfig lists the elements visible during a step
// Elements of the asset set not listed here are hidden
type SceneConfig struct {
	Elements []ElementState `toml:"elements" yaml:"elements"`
}

// Shows reports whether the config lists the named element
func (s SceneConfig) Shows(name string) bool {
	for i := range s.Elements {
		if s.Elements[i].Element == name {
			return true
		}
	}
	return false
}

// ParticleConfig drives the particle field while a step is active
type ParticleConfig struct {
	Kind         string        // plasma, slurry, bondwave, ...
	Rate         float64       // spawns per second
	Velocity     vmath.Vec3F   // base velocity, units/s
	Jitter       float64       // random velocity magnitude added at spawn
	Radial       float64       // outward speed from the emitter center in the XZ plane
	Swirl        float64       // angular velocity around the Y axis, rad/s
	Acceleration vmath.Vec3F   // constant acceleration, units/s²
	Color        string        // hex
	LifetimeMin  time.Duration // lifetime drawn uniformly from [min, max]
	LifetimeMax  time.Duration
	Emitter      vmath.Box3F // spawn volume
	Bounds       vmath.Box3F // particles leaving this volume are recycled
}

// clone returns a deep copy so callers cannot reach catalog storage
func (s Step) clone() Step {
	out := s
	out.Scene.Elements = append([]ElementState(nil), s.Scene.Elements...)
	out.Parameters = append([]Parameter(nil), s.Parameters...)
	if s.Particles != nil {
		p := *s.Particles
		out.Particles = &p
	}
	return out
}
