package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/quartercar/internal/analysis"
	"github.com/san-kum/quartercar/internal/automation"
	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/dynamo"
	"github.com/san-kum/quartercar/internal/experiment"
	"github.com/san-kum/quartercar/internal/export"
	"github.com/san-kum/quartercar/internal/input"
	"github.com/san-kum/quartercar/internal/optim"
	"github.com/san-kum/quartercar/internal/viz"
)

func simulate(cmd *cobra.Command) (*config.Config, *dynamo.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, nil, err
	}
	result, err := exp.Run()
	if err != nil {
		return nil, nil, err
	}
	return cfg, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, result, err := simulate(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("%s, %s forcing A=%g, dt=%g, duration=%gs\n", result.Method, cfg.Waveform, cfg.Amplitude, cfg.Dt, cfg.Duration)
	fmt.Printf("samples: %d\n\n", result.Len())
	return printMetrics(result.Metrics)
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, m[name])
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, result, err := simulate(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotSignal(result, 80, 10))
	fmt.Println()
	fmt.Println(viz.PlotPositions(result, 80, 15))
	fmt.Println()

	if pngFile != "" {
		f, err := os.Create(pngFile)
		if err != nil {
			return err
		}
		opts := export.DefaultPNGOptions()
		opts.Title = fmt.Sprintf("%s, %s", result.Method, cfg.Waveform)
		if err := export.WritePNG(f, result, opts); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}

	if svgFile != "" {
		svg := export.TraceSVG(result.Times, result.X1, 800, 400, "#00ff88")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	methods := args
	if len(methods) == 0 {
		methods = registry.ListMethods()
	}

	fmt.Printf("comparing methods (dt=%.4f, duration=%.1fs, %s forcing)\n\n", cfg.Dt, cfg.Duration, cfg.Waveform)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-10s\n", "method", "final_x1", "final_x2", "max|dx1|", "time_ms")
	fmt.Println(strings.Repeat("-", 66))

	var ref []float64
	for _, name := range methods {
		run := cfg.Clone()
		run.Method = name

		exp := experiment.New(run, logger)
		if err := exp.Setup(registry); err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run()
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		diff := 0.0
		if ref == nil {
			ref = result.X1
		} else if len(ref) == len(result.X1) {
			diff = floats.Distance(ref, result.X1, math.Inf(1))
		}

		fmt.Printf("%-12s  %12.6g  %12.6g  %12.3e  %10.2f\n", name,
			result.Metrics["final_x1"], result.Metrics["final_x2"], diff,
			float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, result, err := simulate(cmd)
	if err != nil {
		return err
	}

	for _, series := range []struct {
		name string
		data []float64
	}{{"x1", result.X1}, {"x2", result.X2}} {
		f, err := analysis.DominantFrequency(series.data, cfg.Dt)
		if err != nil {
			return fmt.Errorf("%s: %w", series.name, err)
		}
		fmt.Printf("%s dominant frequency: %.4f Hz (%.4f rad/s)\n", series.name, f, 2*math.Pi*f)
	}
	fmt.Println()

	ps := analysis.PowerSpectrum(result.X1)
	if len(ps) < 8 {
		return nil
	}
	plotData := ps[1 : len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x1)"),
	)
	fmt.Println(graph)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, result, err := simulate(cmd)
	if err != nil {
		return err
	}

	w := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		err = export.WriteCSV(w, result)
	case "json":
		err = export.WriteJSON(w, cfg, result)
	default:
		return fmt.Errorf("unknown format: %s (available: csv, json)", format)
	}
	if err != nil {
		return err
	}
	if outFile != "" {
		logger.Info("exported run", zap.String("path", outFile), zap.String("format", format))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tMETHOD\tWAVEFORM\tDT\tDURATION\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%s\n", name, p.Method, p.Waveform, p.Dt, p.Duration, config.PresetInfo[name])
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n\n", scenario.Name, scenario.Description)
	summaries, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry(), logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tMETHOD\tSAMPLES\tPEAK_X1\tPEAK_X2\tFINAL_X1\tFINAL_X2")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\n", s.Name, s.Method, s.Samples,
			s.Metrics["peak_x1"], s.Metrics["peak_x2"], s.Metrics["final_x1"], s.Metrics["final_x2"])
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := automation.ParameterSweep{Param: args[0], Min: sweepMin, Max: sweepMax, NumSteps: sweepSteps}
	results, err := automation.RunSweep(cmd.Context(), cfg, sweep, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTABLE\tPEAK_X1\tPEAK_X2\tFINAL_X1\tFINAL_X2\n", strings.ToUpper(sweep.Param))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%t\t%.4g\t%.4g\t%.4g\t%.4g\n", r.ParamValue, r.Stable, r.PeakX1, r.PeakX2, r.FinalX1, r.FinalX2)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.SweepStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(grids))
	ranges := make([][]float64, 0, len(grids))
	for _, spec := range grids {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	best, val, err := g.Search(cmd.Context(), cfg, experiment.NewRegistry(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6g\n", args[0], val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}

// parseGrid reads name=min:max:n.
func parseGrid(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	parts := strings.Split(rng, ":")
	if !ok || len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q: want name=min:max:n", spec)
	}
	lo, err := input.ParseFloat(name+" min", parts[0])
	if err != nil {
		return "", nil, err
	}
	hi, err := input.ParseFloat(name+" max", parts[1])
	if err != nil {
		return "", nil, err
	}
	n, err := input.ParseFloat(name+" n", parts[2])
	if err != nil {
		return "", nil, err
	}
	if n < 1 || n != math.Trunc(n) {
		return "", nil, fmt.Errorf("grid %q: n must be a positive integer", spec)
	}
	return name, optim.Linspace(lo, hi, int(n)), nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// the editor owns the terminal, so it never logs
	return viz.RunEditor(cfg, experiment.NewRegistry(), nil)
}
