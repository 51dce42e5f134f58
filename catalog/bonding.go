package catalog

import (
	"github.com/lixenwraith/fabviz/vmath"
)

// bonding is oxide fusion bonding of two wafers initiated by a center pin
func bonding() Definition {
	bottom := []string{"chuck_bottom", "bottom_wafer", "bottom_oxide"}
	top := []string{"top_oxide", "top_wafer"}

	return Definition{
		Name:  "bonding",
		Title: "Wafer Bonding",
		Elements: []ElementSpec{
			span("heater", -5, 5, -2, -1.5, -5, 5, "#ff7043", 0),
			span("chuck_bottom", -4.5, 4.5, -1.5, -1, -4.5, 4.5, "#78909c", 0),
			span("bottom_wafer", -4, 4, -1, 0, -4, 4, "#8b7355", 0),
			span("bottom_oxide", -4, 4, 0, 0.15, -4, 4, "#4fc3f7", 0),
			span("bond_front", -4, 4, 0.13, 0.17, -4, 4, "#fff176", 0.6),
			span("top_oxide", -4, 4, 0.15, 0.3, -4, 4, "#4fc3f7", 0),
			span("top_wafer", -4, 4, 0.3, 1.3, -4, 4, "#a1887f", 0),
			span("chuck_top", -4.5, 4.5, 1.3, 1.8, -4.5, 4.5, "#78909c", 0),
			span("pin", -0.15, 0.15, 1.8, 2.6, -0.15, 0.15, "#eceff1", 0),
			span("plasma", -4.5, 4.5, 0.3, 1.2, -4.5, 4.5, "#b39ddb", 0.3),
		},
		Steps: []Step{
			{
				Title:       "Surface Preparation",
				Description: "RCA clean leaves both oxide surfaces particle free and hydrophilic",
				Scene: scene(
					show(bottom...),
					shifted(2.5, top...),
				),
				Particles: &ParticleConfig{
					Kind:        "rinse",
					Rate:        80,
					Velocity:    vmath.V3F(0, -2, 0),
					Jitter:      0.5,
					Radial:      1,
					Color:       "#e3f2fd",
					LifetimeMin: ms(500),
					LifetimeMax: ms(1000),
					Emitter:     box(-3.5, 1.9, -3.5, 3.5, 2, 3.5),
					Bounds:      box(-4.5, 0.15, -4.5, 4.5, 2.2, 4.5),
				},
				Parameters: []Parameter{
					param("Clean", "SC1 + SC2", ""),
					param("Roughness", "< 0.5", "nm RMS"),
					param("Particles", "< 10", "per wafer"),
				},
				Dwell: ms(3500),
			},
			{
				Title:       "Plasma Activation",
				Description: "A low power O₂ plasma raises surface energy for room temperature bonding",
				Scene: scene(
					show(bottom...),
					glowing("plasma", 0.7),
					shifted(2.5, top...),
				),
				Particles: &ParticleConfig{
					Kind:        "plasma",
					Rate:        70,
					Jitter:      1.2,
					Swirl:       0.4,
					Color:       "#b39ddb",
					LifetimeMin: ms(500),
					LifetimeMax: ms(1100),
					Emitter:     box(-4, 0.3, -4, 4, 1.2, 4),
					Bounds:      box(-4.5, 0.15, -4.5, 4.5, 1.4, 4.5),
				},
				Parameters: []Parameter{
					param("Gas", "O₂", ""),
					param("Power", "50", "W"),
					param("Time", "30", "s"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Alignment",
				Description: "The top wafer is held on its chuck and aligned over the bottom wafer",
				Scene: scene(
					show(bottom...),
					shifted(0.8, "top_oxide", "top_wafer", "chuck_top", "pin"),
				),
				Parameters: []Parameter{
					param("Alignment accuracy", "± 1", "µm"),
					param("Gap", "50", "µm"),
					param("Chuck vacuum", "-80", "kPa"),
				},
				Dwell: ms(4000),
			},
			{
				Title:       "Contact and Bond Wave",
				Description: "The pin presses the centers together and a bond front sweeps outward",
				Scene: scene(
					show(bottom...), show(top...), show("chuck_top"),
					glowing("pin", 0.5),
					glowing("bond_front", 1),
				),
				Particles: &ParticleConfig{
					Kind:        "bondwave",
					Rate:        160,
					Radial:      3,
					Color:       "#fff59d",
					LifetimeMin: ms(900),
					LifetimeMax: ms(1400),
					Emitter:     box(-0.2, 0.14, -0.2, 0.2, 0.16, 0.2),
					Bounds:      box(-4, 0, -4, 4, 0.3, 4),
				},
				Parameters: []Parameter{
					param("Bond wave speed", "~20", "mm/s"),
					param("Pin force", "5", "N"),
					param("Surface energy", "0.1", "J/m²"),
				},
				Dwell: ms(5000),
			},
			{
				Title:       "Anneal",
				Description: "High temperature anneal converts hydrogen bonds to covalent Si-O-Si bonds",
				Scene: scene(
					show(bottom...), show(top...),
					glowing("bond_front", 0.4),
					glowing("heater", 0.8),
				),
				Parameters: []Parameter{
					param("Temperature", "1050", "°C"),
					param("Time", "2", "h"),
					param("Surface energy", "> 2", "J/m²"),
				},
				Dwell: ms(4500),
			},
			{
				Title:       "Inspection",
				Description: "Infrared imaging checks the bonded pair for voids",
				Scene: scene(
					show(bottom...), show(top...),
				),
				Parameters: []Parameter{
					param("Method", "IR transmission", ""),
					param("Voids", "0", ""),
					param("Bond strength", "> 2", "J/m²"),
				},
				Dwell: ms(3000),
			},
		},
	}
}
