package catalog

import (
	"fmt"
	"slices"
	"time"

	"github.com/lixenwraith/fabviz/vmath"
)

// builtins maps process names to their authored definitions
var builtins = map[string]func() Definition{
	"lithography": lithography,
	"drie":        drie,
	"bonding":     bonding,
	"cmp":         cmp,
	"mosfet":      mosfet,
}

// Names returns the built-in process names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin constructs the named built-in catalog
func Builtin(name string) (*Catalog, error) {
	def, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownProcess, name, Names())
	}
	return New(def())
}

// --- Authoring helpers ---

// span builds an element from corner coordinates
func span(name string, x0, x1, y0, y1, z0, z1 float64, color string, opacity float64) ElementSpec {
	lo := vmath.V3F(x0, y0, z0)
	hi := vmath.V3F(x1, y1, z1)
	return ElementSpec{
		Name:     name,
		Position: vmath.Box3F{Min: lo, Max: hi}.Center(),
		Size:     vmath.V3FSub(hi, lo),
		Color:    color,
		Opacity:  opacity,
	}
}

// show lists elements at their spec presentation
func show(names ...string) []ElementState {
	out := make([]ElementState, len(names))
	for i, n := range names {
		out[i] = ElementState{Element: n}
	}
	return out
}

// scene joins element state groups into one config
func scene(groups ...[]ElementState) SceneConfig {
	var out []ElementState
	for _, g := range groups {
		out = append(out, g...)
	}
	return SceneConfig{Elements: out}
}

// glowing shows an element with emissive highlight
func glowing(name string, glow float64) []ElementState {
	return []ElementState{{Element: name, Glow: glow}}
}

// shifted shows elements moved vertically by dy
func shifted(dy float64, names ...string) []ElementState {
	out := make([]ElementState, len(names))
	for i, n := range names {
		out[i] = ElementState{Element: n, Offset: vmath.V3F(0, dy, 0)}
	}
	return out
}

// squashed scales an element vertically keeping its bottom face in place
// height is the element's full Y extent
func squashed(name string, height, factor float64) []ElementState {
	return []ElementState{{
		Element: name,
		Scale:   vmath.V3F(1, factor, 1),
		Offset:  vmath.V3F(0, -height*(1-factor)/2, 0),
	}}
}

func param(label, value, unit string) Parameter {
	return Parameter{Label: label, Value: value, Unit: unit}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// box is shorthand for the bounds of particle configs
func box(x0, y0, z0, x1, y1, z1 float64) vmath.Box3F {
	return vmath.Box3F{Min: vmath.V3F(x0, y0, z0), Max: vmath.V3F(x1, y1, z1)}
}
