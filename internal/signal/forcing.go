// Package signal generates the scalar forcing applied to the second mass.
//
// All periodic waveforms share one convention: they are DC-biased by the
// amplitude, so a sine swings between 0 and 2A and a square wave toggles
// between 0 and 2A at the sine's zero crossings.
package signal

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/quartercar/internal/dynamo"
)

// DefaultOmega is the angular frequency of the periodic waveforms (period 4).
const DefaultOmega = 0.5 * math.Pi

// DefaultAmplitude is the default road force amplitude [N].
const DefaultAmplitude = 800.0

type Kind int

const (
	Step Kind = iota
	Sine
	Square
)

var kindNames = map[Kind]string{
	Step:   "step",
	Sine:   "sine",
	Square: "square",
}

var kindAliases = map[string]Kind{
	"step":      Step,
	"unit step": Step,
	"unit_step": Step,
	"constant":  Step,
	"sine":      Sine,
	"sin":       Sine,
	"sinusoid":  Sine,
	"square":    Square,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists the supported waveforms in display order.
func Kinds() []Kind {
	return []Kind{Step, Sine, Square}
}

// ParseKind resolves a waveform name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", dynamo.ErrUnsupportedWaveform, name)
	}
	return k, nil
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrUnsupportedWaveform, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Forcing is the waveform selection plus amplitude. A zero Omega falls back
// to DefaultOmega.
type Forcing struct {
	Kind      Kind
	Amplitude float64
	Omega     float64
}

func Default() Forcing {
	return Forcing{Kind: Step, Amplitude: DefaultAmplitude, Omega: DefaultOmega}
}

func (f Forcing) Validate() error {
	if _, ok := kindNames[f.Kind]; !ok {
		return fmt.Errorf("%w: %s", dynamo.ErrUnsupportedWaveform, f.Kind)
	}
	return nil
}

func (f Forcing) omega() float64 {
	if f.Omega == 0 {
		return DefaultOmega
	}
	return f.Omega
}

// Value returns u(t). t may be negative; integrators look one step back.
// Callers validate the kind first; an unknown kind yields NaN.
func (f Forcing) Value(t float64) float64 {
	a := f.Amplitude
	switch f.Kind {
	case Step:
		return a
	case Sine:
		return a + a*math.Sin(f.omega()*t)
	case Square:
		return a + a*math.Copysign(1, math.Sin(f.omega()*t))
	default:
		return math.NaN()
	}
}

// Sample evaluates the forcing on a time grid.
func (f Forcing) Sample(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = f.Value(t)
	}
	return out
}

func (f Forcing) String() string {
	return fmt.Sprintf("%s(A=%g, w=%.4g)", f.Kind, f.Amplitude, f.omega())
}
