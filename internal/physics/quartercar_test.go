package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quartercar/internal/dynamo"
)

func unitParams() Params {
	return Params{M1: 1, M2: 1, K1: 1, K2: 1, B1: 1, B2: 1}
}

func TestQuarterCarDerive_Equilibrium(t *testing.T) {
	qc := NewQuarterCar(DefaultParams())
	dx := qc.Derive(make(dynamo.State, StateDim), dynamo.Control{0}, 0)

	for i, v := range dx {
		if v != 0 {
			t.Errorf("derivative[%d] at rest should be 0, got %f", i, v)
		}
	}
}

func TestQuarterCarDerive_ForceOnSecondMass(t *testing.T) {
	p := DefaultParams()
	qc := NewQuarterCar(p)
	dx := qc.Derive(make(dynamo.State, StateDim), dynamo.Control{800}, 0)

	if dx[IdxV1] != 0 {
		t.Errorf("force must not act on mass 1 directly, got %f", dx[IdxV1])
	}
	if expected := 800 / p.M2; math.Abs(dx[IdxV2]-expected) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expected, dx[IdxV2])
	}
}

func TestStateMatrixMatchesDerive(t *testing.T) {
	p := Params{M1: 2, M2: 3, K1: 5, K2: 7, B1: 11, B2: 13}
	qc := NewQuarterCar(p)
	a := p.StateMatrix()
	b := p.InputGain()

	x := dynamo.State{0.3, -0.2, 1.5, -0.7}
	u := 4.0
	dx := qc.Derive(x, dynamo.Control{u}, 0)

	for i := 0; i < StateDim; i++ {
		sum := b[i] * u
		for j := 0; j < StateDim; j++ {
			sum += a[i][j] * x[j]
		}
		if math.Abs(sum-dx[i]) > 1e-12 {
			t.Errorf("row %d: A*x+B*u = %f, Derive = %f", i, sum, dx[i])
		}
	}
}

func TestValidateZeroMass(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"default", DefaultParams(), true},
		{"negative mass tolerated", Params{M1: -1, M2: 1}, true},
		{"zero m1", Params{M1: 0, M2: 1}, false},
		{"zero m2", Params{M1: 1, M2: 0}, false},
		{"tiny m2", Params{M1: 1, M2: 1e-15}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, dynamo.ErrDivisionByZero) {
				t.Errorf("expected ErrDivisionByZero, got %v", err)
			}
		})
	}
}

func TestWithReturnsNewSnapshot(t *testing.T) {
	p := unitParams()
	q, err := p.With("k2", 42)
	if err != nil {
		t.Fatal(err)
	}
	if p.K2 != 1 {
		t.Error("With mutated the receiver")
	}
	if got, _ := q.Get("k2"); got != 42 {
		t.Errorf("expected k2=42, got %f", got)
	}

	if _, err := p.With("mass", 1); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if _, err := p.Get("mass"); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestParamNamesRoundTrip(t *testing.T) {
	p := DefaultParams()
	m := p.Map()
	if len(m) != len(ParamNames) {
		t.Fatalf("expected %d params, got %d", len(ParamNames), len(m))
	}
	for _, name := range ParamNames {
		v, err := p.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if m[name] != v {
			t.Errorf("%s: Map=%f Get=%f", name, m[name], v)
		}
	}
}

func TestInitialConditionsState(t *testing.T) {
	x := InitialConditions{X1: 0.5, X2: -0.25}.State()
	if x[IdxX1] != 0.5 || x[IdxX2] != -0.25 || x[IdxV1] != 0 || x[IdxV2] != 0 {
		t.Errorf("unexpected initial state %v", x)
	}
}
