// Package export writes simulation results as CSV, JSON, PNG and SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/physics"
)

var csvHeader = []string{"t", "u", "x1", "x2"}

// WriteCSV writes one row per sample after a t,u,x1,x2 header.
func WriteCSV(w io.Writer, r *dynamo.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for i := range r.Times {
		row[0] = strconv.FormatFloat(r.Times[i], 'g', -1, 64)
		row[1] = strconv.FormatFloat(r.Signal[i], 'g', -1, 64)
		row[2] = strconv.FormatFloat(r.X1[i], 'g', -1, 64)
		row[3] = strconv.FormatFloat(r.X2[i], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type Document struct {
	Method    string                    `json:"method"`
	Waveform  string                    `json:"waveform"`
	Amplitude float64                   `json:"amplitude"`
	Dt        float64                   `json:"dt"`
	Duration  float64                   `json:"duration"`
	Params    physics.Params            `json:"params"`
	InitState physics.InitialConditions `json:"init_state"`
	Steps     int                       `json:"steps"`
	Times     []float64                 `json:"times"`
	Signal    []float64                 `json:"signal"`
	X1        []float64                 `json:"x1"`
	X2        []float64                 `json:"x2"`
	Metrics   map[string]float64        `json:"metrics,omitempty"`
}

func NewDocument(cfg *config.Config, r *dynamo.Result) Document {
	return Document{
		Method:    r.Method,
		Waveform:  cfg.Waveform,
		Amplitude: cfg.Amplitude,
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Params:    cfg.Params,
		InitState: cfg.InitState,
		Steps:     r.Len(),
		Times:     r.Times,
		Signal:    r.Signal,
		X1:        r.X1,
		X2:        r.X2,
		Metrics:   r.Metrics,
	}
}

func WriteJSON(w io.Writer, cfg *config.Config, r *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(cfg, r))
}
