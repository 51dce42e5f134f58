package catalog

import (
	"github.com/lixenwraith/fabviz/vmath"
)

// lithography is positive-tone optical patterning of an oxide-coated wafer
func lithography() Definition {
	return Definition{
		Name:  "lithography",
		Title: "Photolithography",
		Elements: []ElementSpec{
			span("hotplate", -5.5, 5.5, -1.6, -1, -3.5, 3.5, "#e57373", 0),
			span("substrate", -5, 5, -1, 0, -3, 3, "#8b7355", 0),
			span("oxide", -5, 5, 0, 0.2, -3, 3, "#4fc3f7", 0),
			span("resist", -5, 5, 0.2, 0.6, -3, 3, "#ec407a", 0.8),
			span("resist_left", -5, -1.5, 0.2, 0.6, -3, 3, "#ec407a", 0.8),
			span("resist_right", 1.5, 5, 0.2, 0.6, -3, 3, "#ec407a", 0.8),
			span("exposed", -1.5, 1.5, 0.2, 0.6, -3, 3, "#f8bbd0", 0.8),
			span("nozzle", -0.3, 0.3, 2, 3, -0.3, 0.3, "#b0bec5", 0),
			span("mask_left", -5, -1.5, 2.5, 2.6, -3, 3, "#37474f", 0),
			span("mask_right", 1.5, 5, 2.5, 2.6, -3, 3, "#37474f", 0),
			span("lamp", -3, 3, 4.5, 5, -2, 2, "#fff59d", 0),
		},
		Steps: []Step{
			{
				Title:       "Dehydration Bake and Prime",
				Description: "Moisture is driven off and HMDS vapor promotes resist adhesion",
				Scene: scene(
					show("substrate", "oxide"),
					glowing("hotplate", 0.4),
				),
				Particles: &ParticleConfig{
					Kind:        "vapor",
					Rate:        40,
					Velocity:    vmath.V3F(0, 0.8, 0),
					Jitter:      0.3,
					Color:       "#cfd8dc",
					LifetimeMin: ms(1500),
					LifetimeMax: ms(3000),
					Emitter:     box(-5, 0.2, -3, 5, 0.3, 3),
					Bounds:      box(-6, 0, -4, 6, 4, 4),
				},
				Parameters: []Parameter{
					param("Bake temperature", "150", "°C"),
					param("Primer", "HMDS vapor", ""),
					param("Prime time", "30", "s"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Spin Coat",
				Description: "Resist dispensed at the center spreads to a uniform film",
				Scene: scene(
					show("substrate", "oxide", "resist", "nozzle"),
				),
				Particles: &ParticleConfig{
					Kind:        "resist",
					Rate:        120,
					Velocity:    vmath.V3F(0, -0.5, 0),
					Jitter:      0.2,
					Radial:      2.5,
					Swirl:       6,
					Color:       "#f06292",
					LifetimeMin: ms(600),
					LifetimeMax: ms(1400),
					Emitter:     box(-0.2, 0.6, -0.2, 0.2, 0.8, 0.2),
					Bounds:      box(-5.5, 0.2, -3.5, 5.5, 2, 3.5),
				},
				Parameters: []Parameter{
					param("Spin speed", "3000", "rpm"),
					param("Resist", "positive, novolac", ""),
					param("Thickness", "1.2", "µm"),
				},
				Dwell: ms(5000),
			},
			{
				Title:       "Soft Bake",
				Description: "Solvent evaporates and the resist film stabilizes",
				Scene: scene(
					show("substrate", "oxide", "resist"),
					glowing("hotplate", 0.7),
				),
				Parameters: []Parameter{
					param("Temperature", "95", "°C"),
					param("Time", "60", "s"),
					param("Solvent loss", "~90", "%"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Exposure",
				Description: "UV light through the mask opening breaks down the exposed resist",
				Scene: scene(
					show("substrate", "oxide", "resist_left", "resist_right", "mask_left", "mask_right"),
					glowing("exposed", 0.5),
					glowing("lamp", 1),
				),
				Particles: &ParticleConfig{
					Kind:        "uv",
					Rate:        200,
					Velocity:    vmath.V3F(0, -6, 0),
					Jitter:      0.05,
					Color:       "#b388ff",
					LifetimeMin: ms(500),
					LifetimeMax: ms(800),
					Emitter:     box(-1.4, 4.3, -2.8, 1.4, 4.4, 2.8),
					Bounds:      box(-1.5, 0.6, -3, 1.5, 4.5, 3),
				},
				Parameters: []Parameter{
					param("Wavelength", "365 (i-line)", "nm"),
					param("Dose", "150", "mJ/cm²"),
					param("Numerical aperture", "0.6", ""),
				},
				Dwell: ms(5000),
			},
			{
				Title:       "Develop",
				Description: "Developer dissolves the exposed resist and opens the pattern",
				Scene: scene(
					show("substrate", "oxide", "resist_left", "resist_right", "nozzle"),
				),
				Particles: &ParticleConfig{
					Kind:        "developer",
					Rate:        100,
					Velocity:    vmath.V3F(0, -2, 0),
					Jitter:      0.6,
					Radial:      1.5,
					Color:       "#80deea",
					LifetimeMin: ms(700),
					LifetimeMax: ms(1300),
					Emitter:     box(-0.2, 1.9, -0.2, 0.2, 2, 0.2),
					Bounds:      box(-5, 0.2, -3, 5, 2.2, 3),
				},
				Parameters: []Parameter{
					param("Developer", "TMAH 2.38", "%"),
					param("Puddle time", "60", "s"),
					param("Critical dimension", "3.0", "µm"),
				},
				Dwell: ms(4500),
			},
			{
				Title:       "Hard Bake and Inspect",
				Description: "The patterned resist is hardened and checked for overlay and CD",
				Scene: scene(
					show("substrate", "oxide", "resist_left", "resist_right"),
					glowing("hotplate", 0.3),
				),
				Parameters: []Parameter{
					param("Temperature", "120", "°C"),
					param("Overlay error", "< 50", "nm"),
					param("CD uniformity", "± 3", "%"),
				},
				Dwell: ms(3000),
			},
		},
	}
}
