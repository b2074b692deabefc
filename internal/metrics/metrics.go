// Package metrics summarizes a displacement history into scalar figures.
package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/quartercar/internal/dynamo"
)

type Metric interface {
	Name() string
	Observe(t, x1, x2, u float64)
	Value() float64
	Reset()
}

// Channel selects which sampled quantity a metric watches.
type Channel int

const (
	X1 Channel = iota
	X2
	Signal
)

func (c Channel) String() string {
	switch c {
	case X1:
		return "x1"
	case X2:
		return "x2"
	case Signal:
		return "u"
	}
	return fmt.Sprintf("ch%d", int(c))
}

func (c Channel) pick(x1, x2, u float64) float64 {
	switch c {
	case X2:
		return x2
	case Signal:
		return u
	}
	return x1
}

// Apply replays the result through each metric and stores the values in
// result.Metrics.
func Apply(result *dynamo.Result, ms ...Metric) {
	if result.Metrics == nil {
		result.Metrics = make(map[string]float64)
	}
	for _, m := range ms {
		m.Reset()
		for i := range result.Times {
			m.Observe(result.Times[i], result.X1[i], result.X2[i], result.Signal[i])
		}
		result.Metrics[m.Name()] = m.Value()
	}
}

// Peak is the largest absolute sample.
type Peak struct {
	ch  Channel
	max float64
}

func NewPeak(ch Channel) *Peak { return &Peak{ch: ch} }

func (p *Peak) Name() string { return "peak_" + p.ch.String() }

func (p *Peak) Observe(t, x1, x2, u float64) {
	p.max = math.Max(p.max, math.Abs(p.ch.pick(x1, x2, u)))
}

func (p *Peak) Value() float64 { return p.max }
func (p *Peak) Reset()         { p.max = 0 }

// Final is the last observed sample.
type Final struct {
	ch   Channel
	last float64
}

func NewFinal(ch Channel) *Final { return &Final{ch: ch} }

func (f *Final) Name() string { return "final_" + f.ch.String() }

func (f *Final) Observe(t, x1, x2, u float64) {
	f.last = f.ch.pick(x1, x2, u)
}

func (f *Final) Value() float64 { return f.last }
func (f *Final) Reset()         { f.last = 0 }

// RMS is the root mean square over all samples.
type RMS struct {
	ch      Channel
	sumSq   float64
	samples int
}

func NewRMS(ch Channel) *RMS { return &RMS{ch: ch} }

func (r *RMS) Name() string { return "rms_" + r.ch.String() }

func (r *RMS) Observe(t, x1, x2, u float64) {
	v := r.ch.pick(x1, x2, u)
	r.sumSq += v * v
	r.samples++
}

func (r *RMS) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMS) Reset() {
	r.sumSq = 0
	r.samples = 0
}
