package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/integrators"
	"github.com/san-kum/quartercar/internal/metrics"
)

type Registry struct {
	methods map[string]func() integrators.Method
}

func NewRegistry() *Registry {
	r := &Registry{
		methods: make(map[string]func() integrators.Method),
	}

	r.methods[integrators.TrapezoidalName] = func() integrators.Method { return integrators.NewTrapezoidal() }
	r.methods[integrators.ExpConvName] = func() integrators.Method { return integrators.NewExpConv() }
	r.methods[integrators.RK4Name] = func() integrators.Method { return integrators.NewRK4() }

	return r
}

// GetMethod returns a fresh instance, so runs never share scratch buffers.
func (r *Registry) GetMethod(name string) (integrators.Method, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownMethod, name, r.ListMethods())
	}
	return fn(), nil
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewPeak(metrics.X1),
		metrics.NewPeak(metrics.X2),
		metrics.NewFinal(metrics.X1),
		metrics.NewFinal(metrics.X2),
		metrics.NewRMS(metrics.X1),
		metrics.NewRMS(metrics.X2),
	}
}
