package config

import (
	"sort"

	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

var unitParams = physics.Params{M1: 1, M2: 1, K1: 1, K2: 1, B1: 1, B2: 1}

var Presets = map[string]*Config{
	"bump": {
		Method: "trapezoidal", Dt: 0.01, Duration: 20.0, ValidateState: true,
		Params:   physics.DefaultParams(),
		Waveform: "step", Amplitude: signal.DefaultAmplitude, Omega: signal.DefaultOmega,
	},
	"washboard": {
		Method: "trapezoidal", Dt: 0.01, Duration: 20.0, ValidateState: true,
		Params:   physics.DefaultParams(),
		Waveform: "sine", Amplitude: signal.DefaultAmplitude, Omega: signal.DefaultOmega,
	},
	"potholes": {
		Method: "trapezoidal", Dt: 0.01, Duration: 20.0, ValidateState: true,
		Params:   physics.DefaultParams(),
		Waveform: "square", Amplitude: signal.DefaultAmplitude, Omega: signal.DefaultOmega,
	},
	"unit": {
		Method: "trapezoidal", Dt: 0.1, Duration: 5.0, ValidateState: true,
		Params:   unitParams,
		Waveform: "step", Amplitude: 1, Omega: signal.DefaultOmega,
	},
	"transition": {
		Method: "expconv", Dt: 0.01, Duration: 2.0, ValidateState: true,
		Params:   unitParams,
		Waveform: "step", Amplitude: 1, Omega: signal.DefaultOmega,
	},
	"release": {
		Method: "trapezoidal", Dt: 0.01, Duration: 20.0, ValidateState: true,
		Params:    unitParams,
		InitState: physics.InitialConditions{X1: 0.5},
		Waveform:  "step", Amplitude: 0, Omega: signal.DefaultOmega,
	},
}

var PresetInfo = map[string]string{
	"bump":       "default car over a 800 N step",
	"washboard":  "default car, sinusoidal road",
	"potholes":   "default car, square-wave road",
	"unit":       "all-ones parameters, coarse grid",
	"transition": "unit model via matrix exponential",
	"release":    "body released from 0.5 m, no forcing",
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
