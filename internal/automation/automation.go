// Package automation runs batches of quarter-car simulations described in
// YAML: named variants over a shared base configuration, and single
// parameter sweeps.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/experiment"
	"github.com/san-kum/quartercar/internal/physics"
)

// Scenario is a base configuration plus the variants to run against it.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Base        config.Config `yaml:"base"`
	Variants    []Variant     `yaml:"variants"`
}

// Variant overrides parts of the base configuration. Unset fields keep the
// base value.
type Variant struct {
	Name      string                     `yaml:"name"`
	Method    string                     `yaml:"method"`
	Waveform  string                     `yaml:"waveform"`
	Amplitude *float64                   `yaml:"amplitude"`
	Params    map[string]float64         `yaml:"params"`
	InitState *physics.InitialConditions `yaml:"init_state"`
}

type Summary struct {
	Name    string
	Method  string
	Samples int
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{Base: *config.DefaultConfig()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Variants) == 0 {
		return nil, fmt.Errorf("scenario %q has no variants: %w", scenario.Name, dynamo.ErrInvalidConfig)
	}
	return &scenario, nil
}

// Apply returns the base configuration with the variant's overrides.
func (v Variant) Apply(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if v.Method != "" {
		cfg.Method = v.Method
	}
	if v.Waveform != "" {
		cfg.Waveform = v.Waveform
	}
	if v.Amplitude != nil {
		cfg.Amplitude = *v.Amplitude
	}
	if v.InitState != nil {
		cfg.InitState = *v.InitState
	}
	for name, value := range v.Params {
		p, err := cfg.Params.With(name, value)
		if err != nil {
			return nil, err
		}
		cfg.Params = p
	}
	return cfg, nil
}

// RunScenario executes the variants in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *zap.Logger) ([]Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	summaries := make([]Summary, 0, len(scenario.Variants))

	for i, v := range scenario.Variants {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		log.Info("running variant",
			zap.String("scenario", scenario.Name),
			zap.String("variant", v.Name),
			zap.Int("index", i+1),
			zap.Int("total", len(scenario.Variants)),
		)

		cfg, err := v.Apply(&scenario.Base)
		if err != nil {
			return summaries, fmt.Errorf("variant %d (%s): %w", i+1, v.Name, err)
		}

		exp := experiment.New(cfg, log)
		if err := exp.Setup(registry); err != nil {
			return summaries, fmt.Errorf("variant %d (%s) setup: %w", i+1, v.Name, err)
		}

		result, err := exp.Run()
		if err != nil {
			return summaries, fmt.Errorf("variant %d (%s) run: %w", i+1, v.Name, err)
		}

		summaries = append(summaries, Summary{
			Name:    v.Name,
			Method:  result.Method,
			Samples: result.Len(),
			Metrics: result.Metrics,
		})
	}

	return summaries, nil
}

// ParameterSweep varies one physical parameter linearly over [Min, Max].
type ParameterSweep struct {
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

// SweepResult holds one sweep point. Unstable runs are reported, not
// returned as errors.
type SweepResult struct {
	ParamValue float64
	Stable     bool
	PeakX1     float64
	PeakX2     float64
	FinalX1    float64
	FinalX2    float64
}

func RunSweep(ctx context.Context, base *config.Config, sweep ParameterSweep, registry *experiment.Registry, log *zap.Logger) ([]SweepResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps: %w", dynamo.ErrInvalidConfig)
	}
	if _, err := base.Params.Get(sweep.Param); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		value := sweep.Min + float64(i)*paramStep

		cfg := base.Clone()
		p, err := cfg.Params.With(sweep.Param, value)
		if err != nil {
			return results, err
		}
		cfg.Params = p

		exp := experiment.New(cfg, log)
		if err := exp.Setup(registry); err != nil {
			return results, err
		}

		point := SweepResult{ParamValue: value, Stable: true}
		result, err := exp.Run()
		switch {
		case errors.Is(err, dynamo.ErrUnstable):
			point.Stable = false
		case err != nil:
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, value, err)
		default:
			point.PeakX1 = result.Metrics["peak_x1"]
			point.PeakX2 = result.Metrics["peak_x2"]
			point.FinalX1 = result.Metrics["final_x1"]
			point.FinalX2 = result.Metrics["final_x2"]
		}
		results = append(results, point)

		log.Debug("sweep point",
			zap.String("param", sweep.Param),
			zap.Float64("value", value),
			zap.Bool("stable", point.Stable),
		)
	}

	return results, nil
}

// SweepStats counts stable and unstable sweep points.
func SweepStats(results []SweepResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
