package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

const (
	DefaultMethod   = "trapezoidal"
	DefaultWaveform = "step"
	DefaultDt       = 0.01
	DefaultDuration = 20.0
)

type Config struct {
	Method        string                    `yaml:"method"`
	Dt            float64                   `yaml:"dt"`
	Duration      float64                   `yaml:"duration"`
	ValidateState bool                      `yaml:"validate_state"`
	Params        physics.Params            `yaml:"params"`
	InitState     physics.InitialConditions `yaml:"init_state"`
	Waveform      string                    `yaml:"waveform"`
	Amplitude     float64                   `yaml:"amplitude"`
	Omega         float64                   `yaml:"omega"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:        DefaultMethod,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		ValidateState: true,
		Params:        physics.DefaultParams(),
		Waveform:      DefaultWaveform,
		Amplitude:     signal.DefaultAmplitude,
		Omega:         signal.DefaultOmega,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults, so omitted keys keep their
// default values.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Forcing(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Forcing resolves the configured waveform.
func (c *Config) Forcing() (signal.Forcing, error) {
	kind, err := signal.ParseKind(c.Waveform)
	if err != nil {
		return signal.Forcing{}, err
	}
	return signal.Forcing{Kind: kind, Amplitude: c.Amplitude, Omega: c.Omega}, nil
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		ValidateState: c.ValidateState,
	}
}
