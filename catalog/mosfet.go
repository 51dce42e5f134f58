package catalog

import (
	"github.com/lixenwraith/fabviz/vmath"
)

// Material colors of the layer-by-layer MOSFET build
const (
	colorSilicon     = "#8b7355"
	colorOxide       = "#4fc3f7"
	colorPoly        = "#b0bec5"
	colorNPlus       = "#ff5252"
	colorMetal       = "#ffd54f"
	colorPhotoresist = "#ec407a"
)

// layer maps a device cross-section (x in [0,10], depth in [0,5], height z) to scene space
func layer(name string, x0, x1, z0, z1 float64, color string, opacity float64) ElementSpec {
	return span(name, x0-5, x1-5, z0-2, z1-2, -2.5, 2.5, color, opacity)
}

// mosfet is an n-channel MOSFET built layer by layer
func mosfet() Definition {
	above := func(kind, color string, rate, vy float64, lifeMs int) *ParticleConfig {
		return &ParticleConfig{
			Kind:        kind,
			Rate:        rate,
			Velocity:    vmath.V3F(0, vy, 0),
			Jitter:      0.3,
			Color:       color,
			LifetimeMin: ms(lifeMs / 2),
			LifetimeMax: ms(lifeMs),
			Emitter:     box(-5, 2.8, -2.5, 5, 3, 2.5),
			Bounds:      box(-5.5, 0, -3, 5.5, 3.2, 3),
		}
	}
	base := []string{"substrate"}
	field := []string{"oxide_left", "oxide_right"}
	junctions := []string{"n_source", "n_drain"}
	gate := []string{"gate_oxide", "poly_gate"}

	return Definition{
		Name:  "mosfet",
		Title: "MOSFET Fabrication",
		Elements: []ElementSpec{
			layer("substrate", 0, 10, 0, 2, colorSilicon, 0),
			layer("oxide", 0, 10, 2, 2.2, colorOxide, 0),
			layer("photoresist", 0, 10, 2.2, 2.6, colorPhotoresist, 0.6),
			layer("pr_left", 0, 3, 2.2, 2.6, colorPhotoresist, 0.6),
			layer("pr_right", 7, 10, 2.2, 2.6, colorPhotoresist, 0.6),
			layer("oxide_left", 0, 3, 2, 2.2, colorOxide, 0),
			layer("oxide_right", 7, 10, 2, 2.2, colorOxide, 0),
			layer("n_source", 3, 4.5, 1.7, 2, colorNPlus, 0.7),
			layer("n_drain", 5.5, 7, 1.7, 2, colorNPlus, 0.7),
			layer("gate_oxide", 4.5, 5.5, 2, 2.05, colorOxide, 0),
			layer("poly_gate", 4.5, 5.5, 2.05, 2.35, colorPoly, 0),
			layer("ild", 0, 10, 2.35, 2.7, colorOxide, 0.3),
			layer("metal_source", 3.5, 4, 2.7, 3.1, colorMetal, 0),
			layer("metal_gate", 4.75, 5.25, 2.7, 3.1, colorMetal, 0),
			layer("metal_drain", 6, 6.5, 2.7, 3.1, colorMetal, 0),
		},
		Steps: []Step{
			{
				Title:       "Silicon Substrate",
				Description: "A lightly doped p-type wafer is the starting material",
				Scene:       scene(show(base...)),
				Parameters: []Parameter{
					param("Orientation", "(100)", ""),
					param("Doping", "p-type 1e15", "cm⁻³"),
					param("Resistivity", "10", "Ω·cm"),
				},
				Dwell: ms(3000),
			},
			{
				Title:       "Thermal Oxidation",
				Description: "Dry oxygen grows a uniform SiO₂ layer on the surface",
				Scene:       scene(show(base...), show("oxide")),
				Particles:   above("oxygen", colorOxide, 60, -1.2, 2400),
				Parameters: []Parameter{
					param("Temperature", "1000", "°C"),
					param("Ambient", "dry O₂", ""),
					param("Oxide thickness", "200", "nm"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Photoresist Coating",
				Description: "Resist is spun onto the oxide",
				Scene:       scene(show(base...), show("oxide", "photoresist")),
				Parameters: []Parameter{
					param("Spin speed", "4000", "rpm"),
					param("Thickness", "400", "nm"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Lithography",
				Description: "Exposure and develop open the active area in the resist",
				Scene:       scene(show(base...), show("oxide", "pr_left", "pr_right")),
				Particles:   above("uv", "#b388ff", 150, -6, 800),
				Parameters: []Parameter{
					param("Wavelength", "248", "nm"),
					param("Opening", "4", "µm"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Oxide Etching",
				Description: "The exposed oxide is etched down to silicon",
				Scene:       scene(show(base...), show(field...), show("pr_left", "pr_right")),
				Particles:   above("etchant", "#ce93d8", 100, -3, 1200),
				Parameters: []Parameter{
					param("Etchant", "buffered HF", ""),
					param("Etch rate", "100", "nm/min"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Ion Implantation",
				Description: "Phosphorus ions form the n⁺ source and drain",
				Scene:       scene(show(base...), show(field...), glowing("n_source", 0.6), glowing("n_drain", 0.6)),
				Particles: &ParticleConfig{
					Kind:        "ion",
					Rate:        220,
					Velocity:    vmath.V3F(0, -8, 0),
					Jitter:      0.1,
					Color:       colorNPlus,
					LifetimeMin: ms(300),
					LifetimeMax: ms(600),
					Emitter:     box(-2, 2.8, -2.5, 2, 3, 2.5),
					Bounds:      box(-2, -0.3, -2.5, 2, 3.2, 2.5),
				},
				Parameters: []Parameter{
					param("Species", "P⁺", ""),
					param("Energy", "40", "keV"),
					param("Dose", "5e15", "cm⁻²"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Polysilicon Gate",
				Description: "Gate oxide and a doped polysilicon gate are formed over the channel",
				Scene:       scene(show(base...), show(field...), show(junctions...), show(gate...)),
				Particles:   above("silane", colorPoly, 70, -1, 2400),
				Parameters: []Parameter{
					param("Gate oxide", "5", "nm"),
					param("Poly deposition", "LPCVD 620", "°C"),
					param("Gate length", "1", "µm"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Metallization",
				Description: "Contacts and interconnects are patterned through the interlayer dielectric",
				Scene: scene(
					show(base...), show(field...), show(junctions...), show(gate...),
					show("ild", "metal_source", "metal_gate", "metal_drain"),
				),
				Particles: above("sputter", colorMetal, 120, -3, 1000),
				Parameters: []Parameter{
					param("Metal", "Al/Cu", ""),
					param("Thickness", "400", "nm"),
					param("Contact resistance", "< 10", "Ω"),
				},
				Dwell: ms(4000),
			},
		},
	}
}
