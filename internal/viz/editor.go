package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/experiment"
	"github.com/san-kum/quartercar/internal/input"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

const (
	rowAmplitude = "amplitude"
	rowWaveform  = "waveform"
	rowMethod    = "method"
)

// Editor is the interactive parameter editor. Every accepted change builds
// a fresh configuration and reruns the integration before the next redraw.
type Editor struct {
	start    *config.Config
	cfg      *config.Config
	registry *experiment.Registry
	log      *zap.Logger

	rows    []string
	cursor  int
	editing bool
	editBuf string

	result   *dynamo.Result
	inputErr error
	runErr   error

	width, height int
}

func NewEditor(cfg *config.Config, registry *experiment.Registry, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	rows := append([]string{}, physics.ParamNames...)
	rows = append(rows, rowAmplitude, rowWaveform, rowMethod)

	e := &Editor{
		start:    cfg.Clone(),
		cfg:      cfg.Clone(),
		registry: registry,
		log:      log,
		rows:     rows,
		width:    80,
		height:   24,
	}
	e.rerun()
	return e
}

func (e *Editor) Config() *config.Config { return e.cfg }

func (e *Editor) Result() *dynamo.Result { return e.result }

// Err is the error of the last integration, if it failed.
func (e *Editor) Err() error { return e.runErr }

// InputErr is the error of the last rejected edit.
func (e *Editor) InputErr() error { return e.inputErr }

func (e *Editor) rerun() {
	exp := experiment.New(e.cfg, e.log)
	if err := exp.Setup(e.registry); err != nil {
		e.runErr = err
		return
	}
	result, err := exp.Run()
	if err != nil {
		e.runErr = err
		return
	}
	e.result, e.runErr = result, nil
}

func (e *Editor) Init() tea.Cmd { return nil }

func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if e.editing {
			return e, e.editKey(msg)
		}
		return e, e.navKey(msg)
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	}
	return e, nil
}

func (e *Editor) editKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		name := e.rows[e.cursor]
		v, err := input.ParseFloat(name, e.editBuf)
		if err != nil {
			e.inputErr = err
			return nil
		}
		e.editing, e.editBuf, e.inputErr = false, "", nil
		e.setValue(name, v)
	case "esc":
		e.editing, e.editBuf, e.inputErr = false, "", nil
	case "backspace":
		if len(e.editBuf) > 0 {
			e.editBuf = e.editBuf[:len(e.editBuf)-1]
		}
	case "ctrl+c":
		return tea.Quit
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			e.editBuf += string(msg.Runes)
		}
	}
	return nil
}

func (e *Editor) navKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.rows)-1 {
			e.cursor++
		}
	case "enter", " ":
		switch name := e.rows[e.cursor]; name {
		case rowWaveform, rowMethod:
			e.cycle(name, 1)
		default:
			e.editing, e.editBuf = true, fmt.Sprintf("%g", e.value(name))
		}
	case "left", "h":
		e.adjust(-1)
	case "right", "l":
		e.adjust(1)
	case "r":
		e.cfg = e.start.Clone()
		e.inputErr = nil
		e.rerun()
	}
	return nil
}

func (e *Editor) adjust(dir int) {
	switch name := e.rows[e.cursor]; name {
	case rowWaveform, rowMethod:
		e.cycle(name, dir)
	default:
		factor := 1.1
		if dir < 0 {
			factor = 1 / 1.1
		}
		e.setValue(name, e.value(name)*factor)
	}
}

func (e *Editor) cycle(name string, dir int) {
	var choices []string
	var current string
	if name == rowMethod {
		choices, current = e.registry.ListMethods(), e.cfg.Method
	} else {
		for _, k := range signal.Kinds() {
			choices = append(choices, k.String())
		}
		current = e.cfg.Waveform
	}

	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
		}
	}
	next := choices[(idx+dir+len(choices))%len(choices)]

	cfg := e.cfg.Clone()
	if name == rowMethod {
		cfg.Method = next
	} else {
		cfg.Waveform = next
	}
	e.cfg = cfg
	e.rerun()
}

func (e *Editor) value(name string) float64 {
	if name == rowAmplitude {
		return e.cfg.Amplitude
	}
	v, _ := e.cfg.Params.Get(name)
	return v
}

// setValue swaps in a new configuration snapshot and reruns.
func (e *Editor) setValue(name string, v float64) {
	cfg := e.cfg.Clone()
	if name == rowAmplitude {
		cfg.Amplitude = v
	} else {
		p, err := cfg.Params.With(name, v)
		if err != nil {
			e.inputErr = err
			return
		}
		cfg.Params = p
	}
	e.cfg = cfg
	e.rerun()
}

func (e *Editor) View() string {
	var b strings.Builder
	b.WriteString("\n  " + Title.Render("QUARTERCAR") + "  " + Subtle.Render("two-mass suspension") + "\n")
	b.WriteString("  " + Separator(40) + "\n\n")

	for i, name := range e.rows {
		val := e.display(name)
		if e.editing && i == e.cursor {
			val = Editing.Render(fmt.Sprintf("%12s", e.editBuf+"_"))
		}
		if i == e.cursor {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", Cursor.Render("▸"), Selected.Render(fmt.Sprintf("%-10s", name)), val))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", Unselected.Render(fmt.Sprintf("%-10s", name)), val))
		}
	}

	if e.inputErr != nil {
		b.WriteString("\n  " + ErrorText.Render(e.inputErr.Error()) + "\n")
	}
	if e.runErr != nil {
		b.WriteString("\n  " + ErrorText.Render(e.runErr.Error()) + "\n")
	}

	if e.result != nil && e.result.Len() > 0 {
		plotW := max(e.width-12, 20)
		plotH := max((e.height-len(e.rows)-14)/2, 4)
		b.WriteString("\n" + PlotSignal(e.result, plotW, plotH) + "\n\n")
		b.WriteString(PlotPositions(e.result, plotW, plotH) + "\n\n")
		b.WriteString("  " + e.metricsLine() + "\n")
	}

	b.WriteString("\n  " + keyHelp("j/k", "select", "enter", "edit", "h/l", "adjust", "r", "reset", "q", "quit") + "\n")
	return b.String()
}

func (e *Editor) display(name string) string {
	switch name {
	case rowWaveform:
		return Selected.Render(fmt.Sprintf("%12s", e.cfg.Waveform))
	case rowMethod:
		return Selected.Render(fmt.Sprintf("%12s", e.cfg.Method))
	}
	return MetricValue.Render(fmt.Sprintf("%12.4g", e.value(name)))
}

func (e *Editor) metricsLine() string {
	var parts []string
	for _, key := range []string{"peak_x1", "peak_x2", "final_x1", "final_x2"} {
		if v, ok := e.result.Metrics[key]; ok {
			parts = append(parts, MetricLabel.Render(key+" ")+MetricValue.Render(fmt.Sprintf("%.4g", v)))
		}
	}
	return strings.Join(parts, "  ")
}

func RunEditor(cfg *config.Config, registry *experiment.Registry, log *zap.Logger) error {
	_, err := tea.NewProgram(NewEditor(cfg, registry, log), tea.WithAltScreen()).Run()
	return err
}
