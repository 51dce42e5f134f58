package catalog

import (
	"github.com/lixenwraith/fabviz/vmath"
)

// cmp is chemical mechanical planarization of a copper damascene wafer
// 8 steps, 28 s of auto-play
func cmp() Definition {
	slurry := func(rate, swirl, radial float64) *ParticleConfig {
		return &ParticleConfig{
			Kind:         "slurry",
			Rate:         rate,
			Velocity:     vmath.V3F(-0.6, -1.5, 0),
			Jitter:       0.3,
			Radial:       radial,
			Swirl:        swirl,
			Acceleration: vmath.V3F(0, -2, 0),
			Color:        "#e0f7fa",
			LifetimeMin:  ms(1200),
			LifetimeMax:  ms(2400),
			Emitter:      box(3.4, 1.4, -0.2, 3.8, 1.6, 0.2),
			Bounds:       box(-6, 0, -4, 6, 3, 4),
		}
	}

	return Definition{
		Name:  "cmp",
		Title: "Chemical Mechanical Planarization",
		Elements: []ElementSpec{
			span("platen", -6, 6, -1.2, -0.4, -4, 4, "#546e7a", 0),
			span("pad", -6, 6, -0.4, 0, -4, 4, "#d7ccc8", 0),
			span("slurry_pool", -5, 5, 0, 0.05, -3.5, 3.5, "#b2ebf2", 0.5),
			span("film", -2, 2, 0.05, 0.35, -2, 2, "#ff8a50", 0),
			span("wafer", -2, 2, 0.35, 0.75, -2, 2, "#8b7355", 0),
			span("carrier", -2.4, 2.4, 0.75, 1.5, -2.4, 2.4, "#90a4ae", 0),
			span("slurry_arm", 3, 5.5, 1.6, 1.9, -0.2, 0.2, "#b0bec5", 0),
			span("endpoint_sensor", -0.3, 0.3, -1.6, -1.2, -0.3, 0.3, "#ef5350", 0),
			span("brush", -2.5, 2.5, 1.0, 1.5, -0.5, 0.5, "#80cbc4", 0),
		},
		Steps: []Step{
			{
				Title:       "Wafer Load",
				Description: "Carrier picks up the wafer face down above the rotating pad",
				Scene: scene(
					show("platen", "pad", "slurry_arm"),
					shifted(1.2, "film", "wafer", "carrier"),
				),
				Parameters: []Parameter{
					param("Wafer", "300", "mm"),
					param("Film", "Cu overburden 1.2", "µm"),
					param("Carrier pressure", "0", "psi"),
				},
				Dwell: ms(3000),
			},
			{
				Title:       "Slurry Dispense",
				Description: "Abrasive slurry wets the pad ahead of contact",
				Scene: scene(
					show("platen", "pad", "slurry_pool"),
					glowing("slurry_arm", 0.3),
					shifted(1.2, "film", "wafer", "carrier"),
				),
				Particles: slurry(140, 0.6, 0),
				Parameters: []Parameter{
					param("Slurry flow", "200", "mL/min"),
					param("Abrasive", "colloidal silica", ""),
					param("Solids", "12", "wt%"),
					param("pH", "10.5", ""),
					param("Particle size", "50", "nm"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Pad Contact",
				Description: "Carrier lowers and applies down force against the pad",
				Scene: scene(
					show("platen", "pad", "slurry_pool", "slurry_arm", "film", "wafer", "carrier"),
				),
				Particles: slurry(80, 1.2, 0.4),
				Parameters: []Parameter{
					param("Down force", "3", "psi"),
					param("Platen speed", "93", "rpm"),
					param("Carrier speed", "87", "rpm"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Bulk Removal",
				Description: "Chemical softening and abrasion remove most of the copper overburden",
				Scene: scene(
					show("platen", "pad", "slurry_pool", "slurry_arm", "wafer", "carrier"),
					squashed("film", 0.3, 0.3),
				),
				Particles: slurry(160, 2.4, 1.2),
				Parameters: []Parameter{
					param("Removal rate", "600", "nm/min"),
					param("Down force", "3", "psi"),
					param("Pad temperature", "45", "°C"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Endpoint Detection",
				Description: "Optical reflectance shifts as the barrier layer is exposed",
				Scene: scene(
					show("platen", "pad", "slurry_pool", "slurry_arm", "wafer", "carrier"),
					squashed("film", 0.3, 0.08),
					glowing("endpoint_sensor", 0.9),
				),
				Particles: slurry(100, 2.4, 1.2),
				Parameters: []Parameter{
					param("Method", "in-situ optical", ""),
					param("Reflectance change", "35", "%"),
					param("Remaining film", "< 50", "nm"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Over-polish",
				Description: "A short timed over-polish clears residual copper from the field",
				Scene: scene(
					show("platen", "pad", "slurry_pool", "slurry_arm", "wafer", "carrier"),
				),
				Particles: slurry(60, 2.4, 1.2),
				Parameters: []Parameter{
					param("Over-polish", "15", "%"),
					param("Dishing", "< 30", "nm"),
					param("Erosion", "< 20", "nm"),
					param("WIWNU", "< 3", "%"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Post-CMP Clean",
				Description: "PVA brush scrub and dilute chemistry remove slurry residue",
				Scene: scene(
					show("platen", "pad"),
					shifted(1.2, "wafer", "carrier"),
					glowing("brush", 0.4),
				),
				Particles: &ParticleConfig{
					Kind:        "rinse",
					Rate:        90,
					Velocity:    vmath.V3F(0, 2.5, 0),
					Jitter:      0.8,
					Radial:      0.8,
					Color:       "#e3f2fd",
					LifetimeMin: ms(400),
					LifetimeMax: ms(900),
					Emitter:     box(-2.2, 1.45, -0.3, 2.2, 1.5, 0.3),
					Bounds:      box(-4, 0, -3, 4, 3, 3),
				},
				Parameters: []Parameter{
					param("Brush", "PVA", ""),
					param("Chemistry", "dilute NH₄OH", ""),
					param("Megasonic", "1", "MHz"),
				},
				Dwell: ms(3000),
			},
			{
				Title:       "Dry and Unload",
				Description: "Spin rinse dry leaves a planar, defect-free surface",
				Scene: scene(
					show("platen", "pad"),
					shifted(1.8, "wafer", "carrier"),
				),
				Parameters: []Parameter{
					param("Spin dry", "2000", "rpm"),
					param("Step height", "< 10", "nm"),
					param("Defects", "< 0.1", "/cm²"),
				},
				Dwell: ms(3500),
			},
		},
	}
}
