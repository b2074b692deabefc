package experiment

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/integrators"
	"github.com/san-kum/quartercar/internal/metrics"
)

type Experiment struct {
	cfg     *config.Config
	method  integrators.Method
	metrics []metrics.Metric
	log     *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{cfg: cfg, log: log}
}

// Setup resolves the configured method from the registry.
func (e *Experiment) Setup(registry *Registry) error {
	method, err := registry.GetMethod(e.cfg.Method)
	if err != nil {
		return err
	}
	e.method = method
	e.metrics = registry.DefaultMetrics()
	return nil
}

// Run performs one blocking integration and attaches metrics to the result.
func (e *Experiment) Run() (*dynamo.Result, error) {
	if e.method == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	forcing, err := e.cfg.Forcing()
	if err != nil {
		return nil, err
	}

	log := e.log.With(
		zap.String("method", e.method.Name()),
		zap.Stringer("forcing", forcing),
		zap.Float64("dt", e.cfg.Dt),
		zap.Float64("duration", e.cfg.Duration),
	)
	log.Debug("integration started", zap.Any("params", e.cfg.Params))

	start := time.Now()
	result, err := e.method.Solve(e.cfg.Params, e.cfg.InitState, forcing, e.cfg.SimConfig())
	if err != nil {
		log.Warn("integration failed", zap.Error(err))
		return result, err
	}

	metrics.Apply(result, e.metrics...)
	log.Info("integration finished",
		zap.Int("samples", result.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Config returns the configuration the experiment was built from.
func (e *Experiment) Config() *config.Config {
	return e.cfg
}
