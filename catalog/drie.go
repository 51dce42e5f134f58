package catalog

import (
	"github.com/lixenwraith/fabviz/vmath"
)

// trenchDepth is the Y extent of silicon removed over the full Bosch sequence
const trenchDepth = 2.4

// drie is deep reactive ion etching with alternating Bosch etch and passivation cycles
func drie() Definition {
	ions := func(rate float64) *ParticleConfig {
		return &ParticleConfig{
			Kind:        "ion",
			Rate:        rate,
			Velocity:    vmath.V3F(0, -7, 0),
			Jitter:      0.4,
			Color:       "#ea80fc",
			LifetimeMin: ms(400),
			LifetimeMax: ms(900),
			Emitter:     box(-4.5, 2.6, -2.5, 4.5, 3.4, 2.5),
			Bounds:      box(-5, -trenchDepth, -3, 5, 3.5, 3),
		}
	}
	polymer := &ParticleConfig{
		Kind:        "polymer",
		Rate:        70,
		Velocity:    vmath.V3F(0, -2.5, 0),
		Jitter:      1.2,
		Color:       "#ffcc80",
		LifetimeMin: ms(800),
		LifetimeMax: ms(1600),
		Emitter:     box(-4.5, 2.6, -2.5, 4.5, 3.4, 2.5),
		Bounds:      box(-5, -trenchDepth, -3, 5, 3.5, 3),
	}
	stack := []string{"electrode", "si_left", "si_right", "si_base"}
	masks := []string{"mask_left", "mask_right"}
	liners := []string{"liner_left", "liner_right"}

	return Definition{
		Name:  "drie",
		Title: "Deep Reactive Ion Etching (Bosch)",
		Elements: []ElementSpec{
			span("electrode", -5.5, 5.5, -3.6, -3, -3.5, 3.5, "#78909c", 0),
			span("si_left", -5, -1, -3, 0, -3, 3, "#8b7355", 0),
			span("si_right", 1, 5, -3, 0, -3, 3, "#8b7355", 0),
			span("si_base", -1, 1, -3, -trenchDepth, -3, 3, "#8b7355", 0),
			span("trench_core", -1, 1, -trenchDepth, 0, -3, 3, "#a1887f", 0),
			span("liner_left", -1, -0.9, -trenchDepth, 0, -3, 3, "#ffcc80", 0.7),
			span("liner_right", 0.9, 1, -trenchDepth, 0, -3, 3, "#ffcc80", 0.7),
			span("mask_left", -5, -1, 0, 0.3, -3, 3, "#ec407a", 0),
			span("mask_right", 1, 5, 0, 0.3, -3, 3, "#ec407a", 0),
			span("plasma", -5, 5, 2.5, 3.5, -3, 3, "#ce93d8", 0.35),
		},
		Steps: []Step{
			{
				Title:       "Masked Wafer Load",
				Description: "A patterned resist mask defines the trench opening",
				Scene: scene(
					show(stack...), show(masks...), show("trench_core"),
				),
				Parameters: []Parameter{
					param("Mask", "photoresist 8", "µm"),
					param("Opening", "20", "µm"),
					param("Chuck temperature", "10", "°C"),
				},
				Dwell: ms(3000),
			},
			{
				Title:       "Plasma Ignition",
				Description: "Inductively coupled RF power strikes a high density plasma",
				Scene: scene(
					show(stack...), show(masks...), show("trench_core"),
					glowing("plasma", 0.8),
				),
				Particles: &ParticleConfig{
					Kind:        "plasma",
					Rate:        90,
					Jitter:      1.5,
					Swirl:       0.5,
					Color:       "#ce93d8",
					LifetimeMin: ms(600),
					LifetimeMax: ms(1200),
					Emitter:     box(-4.5, 2.6, -2.5, 4.5, 3.4, 2.5),
					Bounds:      box(-5, 2.4, -3, 5, 3.6, 3),
				},
				Parameters: []Parameter{
					param("Coil power", "2500", "W"),
					param("Pressure", "30", "mTorr"),
					param("Frequency", "13.56", "MHz"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Etch Cycle (SF₆)",
				Description: "Fluorine radicals etch silicon isotropically at the trench floor",
				Scene: scene(
					show(stack...), show(masks...),
					squashed("trench_core", trenchDepth, 0.8),
					glowing("plasma", 1),
				),
				Particles: ions(180),
				Parameters: []Parameter{
					param("Gas", "SF₆ 400", "sccm"),
					param("Platen bias", "20", "W"),
					param("Etch time", "7", "s"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Passivation (C₄F₈)",
				Description: "A fluorocarbon polymer coats the sidewalls and floor",
				Scene: scene(
					show(stack...), show(masks...), show(liners...),
					squashed("trench_core", trenchDepth, 0.8),
					glowing("plasma", 0.6),
				),
				Particles: polymer,
				Parameters: []Parameter{
					param("Gas", "C₄F₈ 200", "sccm"),
					param("Deposition time", "2", "s"),
					param("Polymer thickness", "~50", "nm"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Etch Cycle 2",
				Description: "Ion bombardment clears the floor polymer while sidewalls stay protected",
				Scene: scene(
					show(stack...), show(masks...), show(liners...),
					squashed("trench_core", trenchDepth, 0.55),
					glowing("plasma", 1),
				),
				Particles: ions(180),
				Parameters: []Parameter{
					param("Gas", "SF₆ 400", "sccm"),
					param("Etch rate", "8", "µm/min"),
					param("Selectivity to resist", "75:1", ""),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Passivation 2",
				Description: "The liner is rebuilt on the freshly exposed sidewall",
				Scene: scene(
					show(stack...), show(masks...), show(liners...),
					squashed("trench_core", trenchDepth, 0.55),
					glowing("plasma", 0.6),
				),
				Particles: polymer,
				Parameters: []Parameter{
					param("Gas", "C₄F₈ 200", "sccm"),
					param("Scallop depth", "~100", "nm"),
					param("Cycle period", "9", "s"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Deep Trench",
				Description: "Repeated cycles drive a vertical, high aspect ratio trench",
				Scene: scene(
					show(stack...), show(masks...), show(liners...),
					squashed("trench_core", trenchDepth, 0.1),
					glowing("plasma", 1),
				),
				Particles: ions(220),
				Parameters: []Parameter{
					param("Depth", "300", "µm"),
					param("Aspect ratio", "15:1", ""),
					param("Sidewall angle", "90 ± 1", "°"),
				},
				Dwell: ms(4500),
			},
			{
				Title:       "Mask and Polymer Strip",
				Description: "Oxygen plasma ashes the resist and residual fluorocarbon",
				Scene: scene(
					show(stack...),
					glowing("plasma", 0.4),
				),
				Particles: &ParticleConfig{
					Kind:        "ash",
					Rate:        50,
					Velocity:    vmath.V3F(0, 1.5, 0),
					Jitter:      0.8,
					Color:       "#b0bec5",
					LifetimeMin: ms(800),
					LifetimeMax: ms(1500),
					Emitter:     box(-5, 0, -3, 5, 0.2, 3),
					Bounds:      box(-5.5, -0.5, -3.5, 5.5, 3.5, 3.5),
				},
				Parameters: []Parameter{
					param("Gas", "O₂ 500", "sccm"),
					param("Power", "800", "W"),
					param("Ash time", "5", "min"),
				},
				Dwell: ms(3000),
			},
		},
	}
}
