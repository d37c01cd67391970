package config

import (
	"sort"

	"github.com/san-kum/qmlab/internal/quantum"
)

// Presets holds the worked textbook examples, keyed by topic then name.
// Inputs are in SI units.
var Presets = map[string]map[string]*Config{
	"debroglie": {
		"electron": {
			Topic: "debroglie", Target: quantum.TargetWavelength,
			Inputs: map[string]float64{"mass": quantum.ElectronMass, "velocity": 6e5},
		},
		"baseball": {
			Topic: "debroglie", Target: quantum.TargetWavelength,
			Inputs: map[string]float64{"mass": 0.145, "velocity": 40},
			Units:  map[string]string{"mass": "kg"},
		},
		"voltage": {
			Topic: "debroglie", Target: quantum.TargetVoltage,
			Inputs: map[string]float64{"wavelength": 1.227e-10, "mass": quantum.ElectronMass},
			Units:  map[string]string{"wavelength": "Å"},
		},
	},
	"electron": {
		"100V": {Topic: "electron", Inputs: map[string]float64{"voltage": 100}},
		"10kV": {Topic: "electron", Inputs: map[string]float64{"voltage": 1e4}, Units: map[string]string{"voltage": "kV"}},
	},
	"box": {
		"ex20.12": {
			Topic:  "box",
			Inputs: map[string]float64{"mass": quantum.ElectronMass, "length": 0.1e-9, "n": 1, "n_final": 4},
		},
		"ex20.13": {
			Topic:  "box",
			Inputs: map[string]float64{"mass": quantum.ElectronMass, "length": 1e-9, "n": 1, "n_final": 2},
		},
		"ex20.14": {
			Topic:  "box",
			Inputs: map[string]float64{"mass": quantum.ElectronMass, "length": 1e-10, "n": 1, "n_final": 0},
		},
		"dust": {
			Topic:  "box",
			Inputs: map[string]float64{"mass": 1e-9, "length": 1e-4, "n": 1, "n_final": 2},
			Units:  map[string]string{"mass": "μg", "length": "mm"},
		},
	},
	"tunnel": {
		"ex20.8": {
			Topic: "tunnel",
			Inputs: map[string]float64{
				"energy": 3 * quantum.ElementaryCharge,
				"height": 4 * quantum.ElementaryCharge,
				"width":  2e-9,
				"mass":   quantum.ElectronMass,
			},
		},
	},
	"uncertainty": {
		"ex20.4": {Topic: "uncertainty", Inputs: map[string]float64{"delta_t": 1e-8}},
		"ex20.5": {Topic: "uncertainty", Inputs: map[string]float64{"delta_x": 10e-9, "mass": quantum.ElectronMass}},
	},
	"qubit": {
		"zero": {Topic: "qubit", Inputs: map[string]float64{"alpha": 1}},
		"one":  {Topic: "qubit", Inputs: map[string]float64{"alpha": 0}},
		"plus": {Topic: "qubit", Inputs: map[string]float64{"alpha": 0.707}},
	},
}

func GetPreset(topic, preset string) *Config {
	topicPresets, ok := Presets[topic]
	if !ok {
		return nil
	}
	cfg, ok := topicPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names of topic in sorted order.
func ListPresets(topic string) []string {
	topicPresets, ok := Presets[topic]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(topicPresets))
	for name := range topicPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
