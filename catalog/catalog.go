// Package catalog holds the immutable step sequences of fabrication processes
package catalog

import (
	"fmt"
	"time"

	"github.com/lixenwraith/fabviz/palette"
)

// Definition is the authoring form of a catalog, consumed once by New
type Definition struct {
	Name     string
	Title    string
	Elements []ElementSpec
	Steps    []Step
}

// Catalog is an immutable ordered sequence of steps for one process
// Safe for concurrent reads; there are no mutators
type Catalog struct {
	name     string
	title    string
	elements []ElementSpec
	steps    []Step
	total    time.Duration
}

// New validates a definition and freezes it into a Catalog
// Step indices are assigned densely from 0 in slice order
func New(def Definition) (*Catalog, error) {
	if len(def.Steps) < 2 {
		return nil, fmt.Errorf("%w: %q has %d", ErrTooFewSteps, def.Name, len(def.Steps))
	}

	if errs := validate(def); len(errs) > 0 {
		return nil, errs
	}

	c := &Catalog{
		name:     def.Name,
		title:    def.Title,
		elements: append([]ElementSpec(nil), def.Elements...),
		steps:    make([]Step, len(def.Steps)),
	}
	if c.title == "" {
		c.title = def.Name
	}

	for i, s := range def.Steps {
		st := s.clone()
		st.Index = i
		c.steps[i] = st
		c.total += st.Dwell
	}

	return c, nil
}

func validate(def Definition) ValidationErrors {
	var errs ValidationErrors

	if def.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Value: def.Name, Message: "must not be empty"})
	}

	names := make(map[string]bool, len(def.Elements))
	for i, e := range def.Elements {
		field := fmt.Sprintf("elements[%d]", i)
		if e.Name == "" {
			errs = append(errs, ValidationError{Field: field + ".name", Value: e.Name, Message: "must not be empty"})
		} else if names[e.Name] {
			errs = append(errs, ValidationError{Field: field + ".name", Value: e.Name, Message: "duplicate element name"})
		}
		names[e.Name] = true

		if e.Size.X <= 0 || e.Size.Y <= 0 || e.Size.Z <= 0 {
			errs = append(errs, ValidationError{Field: field + ".size", Value: e.Size, Message: "all extents must be positive"})
		}
		if _, err := palette.ParseHex(e.Color); err != nil {
			errs = append(errs, ValidationError{Field: field + ".color", Value: e.Color, Message: "must be a hex color"})
		}
		if e.Opacity < 0 || e.Opacity > 1 {
			errs = append(errs, ValidationError{Field: field + ".opacity", Value: e.Opacity, Message: "must be between 0 and 1"})
		}
	}

	for i, s := range def.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		if s.Title == "" {
			errs = append(errs, ValidationError{Field: field + ".title", Value: s.Title, Message: "must not be empty"})
		}
		if s.Dwell <= 0 {
			errs = append(errs, ValidationError{Field: field + ".dwell", Value: s.Dwell, Message: "must be positive"})
		}
		for j, es := range s.Scene.Elements {
			if es.Color == "" {
				continue
			}
			if _, err := palette.ParseHex(es.Color); err != nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.scene.elements[%d].color", field, j),
					Value:   es.Color,
					Message: "must be a hex color",
				})
			}
		}
		if p := s.Particles; p != nil {
			errs = append(errs, validateParticles(field+".particles", p)...)
		}
	}

	return errs
}

func validateParticles(field string, p *ParticleConfig) ValidationErrors {
	var errs ValidationErrors
	if p.Rate < 0 {
		errs = append(errs, ValidationError{Field: field + ".rate", Value: p.Rate, Message: "must not be negative"})
	}
	if p.LifetimeMin <= 0 || p.LifetimeMax < p.LifetimeMin {
		errs = append(errs, ValidationError{
			Field:   field + ".lifetime",
			Value:   [2]time.Duration{p.LifetimeMin, p.LifetimeMax},
			Message: "requires 0 < min <= max",
		})
	}
	if p.Bounds.Empty() {
		errs = append(errs, ValidationError{Field: field + ".bounds", Value: p.Bounds, Message: "must have positive volume"})
	}
	if _, err := palette.ParseHex(p.Color); err != nil {
		errs = append(errs, ValidationError{Field: field + ".color", Value: p.Color, Message: "must be a hex color"})
	}
	return errs
}

// Name returns the process identifier, e.g. "cmp"
func (c *Catalog) Name() string { return c.name }

// Title returns the human-readable process name
func (c *Catalog) Title() string { return c.title }

// Len returns the step count N
func (c *Catalog) Len() int { return len(c.steps) }

// Last returns N-1
func (c *Catalog) Last() int { return len(c.steps) - 1 }

// Total returns the sum of all dwell times
func (c *Catalog) Total() time.Duration { return c.total }

// Step returns a pointer to the step at index i, nil when out of range
// The returned step must be treated as read-only
func (c *Catalog) Step(i int) *Step {
	if i < 0 || i >= len(c.steps) {
		return nil
	}
	return &c.steps[i]
}

// Steps returns deep copies of all steps
func (c *Catalog) Steps() []Step {
	out := make([]Step, len(c.steps))
	for i := range c.steps {
		out[i] = c.steps[i].clone()
	}
	return out
}

// Elements returns a copy of the asset set
func (c *Catalog) Elements() []ElementSpec {
	return append([]ElementSpec(nil), c.elements...)
}

// Definition returns an editable copy of the authoring form
func (c *Catalog) Definition() Definition {
	return Definition{
		Name:     c.name,
		Title:    c.title,
		Elements: c.Elements(),
		Steps:    c.Steps(),
	}
}
