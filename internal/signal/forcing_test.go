package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quartercar/internal/dynamo"
)

func TestStepIsConstant(t *testing.T) {
	f := Forcing{Kind: Step, Amplitude: 800}
	for _, tm := range []float64{-0.01, 0, 1, 3.7, 100} {
		if got := f.Value(tm); got != 800 {
			t.Errorf("step at t=%v = %v, want 800", tm, got)
		}
	}
}

func TestSineIsBiased(t *testing.T) {
	f := Forcing{Kind: Sine, Amplitude: 2, Omega: DefaultOmega}

	tests := []struct {
		t, expected float64
	}{
		{0, 2},
		{1, 4},
		{2, 2},
		{3, 0},
	}
	for _, tt := range tests {
		if got := f.Value(tt.t); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("sine at t=%v = %v, want %v", tt.t, got, tt.expected)
		}
	}
}

func TestSquareLevels(t *testing.T) {
	f := Forcing{Kind: Square, Amplitude: 800}

	if got := f.Value(0); got != 1600 {
		t.Errorf("sign(+0) must resolve to +1, got %v", got)
	}
	if got := f.Value(1); got != 1600 {
		t.Errorf("first half period = %v, want 1600", got)
	}
	if got := f.Value(3); got != 0 {
		t.Errorf("second half period = %v, want 0", got)
	}
	if got := f.Value(-1); got != 0 {
		t.Errorf("negative time = %v, want 0", got)
	}
}

func TestSquareAlternatesEveryTwoUnits(t *testing.T) {
	f := Forcing{Kind: Square, Amplitude: 800, Omega: DefaultOmega}
	times := dynamo.TimeGrid(0.1, 20)
	values := f.Sample(times)

	for i, tm := range times {
		phase := math.Mod(tm, 2)
		if phase < 1e-6 || 2-phase < 1e-6 {
			continue
		}
		want := 1600.0
		if int(math.Floor(tm/2))%2 == 1 {
			want = 0
		}
		if values[i] != want {
			t.Errorf("t=%.2f: got %v, want %v", tm, values[i], want)
		}
	}
}

func TestZeroOmegaFallsBack(t *testing.T) {
	a := Forcing{Kind: Sine, Amplitude: 1}
	b := Forcing{Kind: Sine, Amplitude: 1, Omega: DefaultOmega}
	if a.Value(0.7) != b.Value(0.7) {
		t.Error("zero omega must use DefaultOmega")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"unit step", Step},
		{"STEP", Step},
		{"constant", Step},
		{" sine ", Sine},
		{"square", Square},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := ParseKind("triangle"); !errors.Is(err, dynamo.ErrUnsupportedWaveform) {
		t.Errorf("expected ErrUnsupportedWaveform, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default forcing invalid: %v", err)
	}
	bad := Forcing{Kind: Kind(42), Amplitude: 1}
	if err := bad.Validate(); !errors.Is(err, dynamo.ErrUnsupportedWaveform) {
		t.Errorf("expected ErrUnsupportedWaveform, got %v", err)
	}
	if !math.IsNaN(bad.Value(1)) {
		t.Error("unknown kind must not produce a number")
	}
}

func TestKindText(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("square")); err != nil {
		t.Fatal(err)
	}
	text, err := k.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "square" {
		t.Errorf("MarshalText = %q", text)
	}
}
