package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quartercar/internal/signal"
)

func TestPowerSpectrumLength(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 199} {
		ps := PowerSpectrum(make([]float64, n))
		if len(ps) != n/2+1 {
			t.Errorf("n=%d: expected %d bins, got %d", n, n/2+1, len(ps))
		}
	}
	if PowerSpectrum(nil) != nil {
		t.Error("empty input should give nil spectrum")
	}
}

func TestPowerSpectrumConstant(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = 3
	}
	ps := PowerSpectrum(data)

	if math.Abs(ps[0]-16*9) > 1e-9 {
		t.Errorf("expected DC power 144, got %f", ps[0])
	}
	for i := 1; i < len(ps); i++ {
		if ps[i] > 1e-9 {
			t.Errorf("bin %d should be empty, got %g", i, ps[i])
		}
	}
}

func TestDominantFrequencyOfSineForcing(t *testing.T) {
	f := signal.Forcing{Kind: signal.Sine, Amplitude: 800, Omega: signal.DefaultOmega}
	dt := 0.1
	times := make([]float64, 400)
	for i := range times {
		times[i] = float64(i) * dt
	}

	got, err := DominantFrequency(f.Sample(times), dt)
	if err != nil {
		t.Fatal(err)
	}
	want := signal.DefaultOmega / (2 * math.Pi)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f Hz, got %f Hz", want, got)
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantFrequency([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestFrequencies(t *testing.T) {
	freqs := Frequencies(10, 0.5)
	if len(freqs) != 6 {
		t.Fatalf("expected 6 bins, got %d", len(freqs))
	}
	if freqs[1] != 0.2 || freqs[5] != 1.0 {
		t.Errorf("unexpected bins %v", freqs)
	}
}
