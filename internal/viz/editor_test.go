package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/experiment"
)

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	e := NewEditor(config.GetPreset("unit"), experiment.NewRegistry(), nil)
	if e.Err() != nil {
		t.Fatalf("initial run failed: %v", e.Err())
	}
	return e
}

func press(e *Editor, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		e.Update(msg)
	}
}

func typeText(e *Editor, text string) {
	for _, r := range text {
		press(e, string(r))
	}
}

func clearBuf(e *Editor) {
	for i := 0; i < 32; i++ {
		press(e, "backspace")
	}
}

func TestEditorInitialRun(t *testing.T) {
	e := newTestEditor(t)
	if e.Result() == nil || e.Result().Len() != 49 {
		t.Fatalf("expected 49 samples, got %+v", e.Result())
	}
}

func TestEditorAcceptsNumber(t *testing.T) {
	e := newTestEditor(t)
	before := e.Result().X1[len(e.Result().X1)-1]

	press(e, "enter")
	clearBuf(e)
	typeText(e, "2.5")
	press(e, "enter")

	if e.Config().Params.M1 != 2.5 {
		t.Errorf("expected m1=2.5, got %f", e.Config().Params.M1)
	}
	if e.InputErr() != nil {
		t.Errorf("unexpected input error %v", e.InputErr())
	}
	if e.Result().X1[len(e.Result().X1)-1] == before {
		t.Error("result should be recomputed after an edit")
	}
}

func TestEditorRejectsExpression(t *testing.T) {
	e := newTestEditor(t)

	press(e, "j")
	press(e, "enter")
	clearBuf(e)
	typeText(e, "2*1000")
	press(e, "enter")

	if !errors.Is(e.InputErr(), dynamo.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", e.InputErr())
	}
	if e.Config().Params.M2 != 1 {
		t.Errorf("m2 should be unchanged, got %f", e.Config().Params.M2)
	}
	if !strings.Contains(e.View(), "is not a finite number") {
		t.Error("input error should be shown inline")
	}

	press(e, "esc")
	if e.InputErr() != nil {
		t.Error("esc should clear the input error")
	}
}

func TestEditorZeroMassReportsError(t *testing.T) {
	e := newTestEditor(t)
	good := e.Result()

	press(e, "enter")
	clearBuf(e)
	typeText(e, "0")
	press(e, "enter")

	if !errors.Is(e.Err(), dynamo.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", e.Err())
	}
	if e.Result() != good {
		t.Error("last good result should be kept")
	}

	press(e, "r")
	if e.Err() != nil || e.Config().Params.M1 != 1 {
		t.Errorf("reset should restore the starting config, got %+v (%v)", e.Config().Params, e.Err())
	}
}

func TestEditorCyclesWaveformAndMethod(t *testing.T) {
	e := newTestEditor(t)

	for i := 0; i < 7; i++ {
		press(e, "j")
	}
	press(e, "enter")
	if e.Config().Waveform != "sine" {
		t.Errorf("expected sine, got %s", e.Config().Waveform)
	}

	press(e, "j", "l")
	if e.Config().Method == "trapezoidal" {
		t.Error("method should have changed")
	}
	if e.Result().Method != e.Config().Method {
		t.Errorf("result from %s, config says %s", e.Result().Method, e.Config().Method)
	}
}

func TestEditorAdjust(t *testing.T) {
	e := newTestEditor(t)
	press(e, "l")
	if got := e.Config().Params.M1; got < 1.09 || got > 1.11 {
		t.Errorf("expected m1 about 1.1, got %f", got)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
	if SparklineChart([]float64{1, 2, 3}, 3) == "" {
		t.Error("expected sparkline output")
	}
}
