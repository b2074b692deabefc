package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/quartercar/internal/config"
	"github.com/san-kum/quartercar/internal/physics"
	"github.com/san-kum/quartercar/internal/signal"
)

var (
	configFile string
	preset     string
	logLevel   string
	method     string
	dt         float64
	duration   float64
	waveform   string
	amplitude  float64
	omega      float64
	x1         float64
	x2         float64
	params     = physics.DefaultParams()
	// export
	format  string
	outFile string
	// plot
	pngFile string
	svgFile string
	// sweep
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// tune
	grids []string

	logger = zap.NewNop()
)

// main registers commands and flags, opens the parameter editor when no
// subcommand is given, and exits 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "quartercar",
		Short:         "two-mass suspension simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: runEditor,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&method, "method", config.DefaultMethod, "integration method")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	pf.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	pf.StringVar(&waveform, "waveform", config.DefaultWaveform, "forcing waveform (step, sine, square)")
	pf.Float64Var(&amplitude, "amplitude", signal.DefaultAmplitude, "forcing amplitude")
	pf.Float64Var(&omega, "omega", signal.DefaultOmega, "forcing angular frequency (rad/s)")
	pf.Float64Var(&x1, "x1", 0, "initial body displacement")
	pf.Float64Var(&x2, "x2", 0, "initial wheel displacement")
	pf.Float64Var(&params.M1, "m1", params.M1, "body mass")
	pf.Float64Var(&params.M2, "m2", params.M2, "wheel mass")
	pf.Float64Var(&params.K1, "k1", params.K1, "tyre stiffness")
	pf.Float64Var(&params.K2, "k2", params.K2, "suspension stiffness")
	pf.Float64Var(&params.B1, "b1", params.B1, "tyre damping")
	pf.Float64Var(&params.B2, "b2", params.B2, "suspension damping")

	viper.SetEnvPrefix("QUARTERCAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"config", "preset", "log-level", "method"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one simulation and print its metrics",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot forcing and displacements",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngFile, "png", "", "also write a PNG figure to this path")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write an SVG trace of x1 to this path")

	compareCmd := &cobra.Command{
		Use:   "compare [method1] [method2] ...",
		Short: "compare integration methods on the same configuration",
		RunE:  compareMethods,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "frequency analysis of the displacements",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export a run as csv or json",
		Args:  cobra.NoArgs,
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format (csv, json)")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the variants of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one physical parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of points")
	_ = sweepCmd.MarkFlagRequired("min")
	_ = sweepCmd.MarkFlagRequired("max")

	tuneCmd := &cobra.Command{
		Use:   "tune [metric]",
		Short: "grid-search parameters minimizing a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&grids, "grid", nil, "parameter grid as name=min:max:n (repeatable)")
	_ = tuneCmd.MarkFlagRequired("grid")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive parameter editor",
		Args:  cobra.NoArgs,
		RunE:  runEditor,
	}

	rootCmd.AddCommand(runCmd, plotCmd, compareCmd, analyzeCmd, exportCmd,
		presetsCmd, initCmd, scenarioCmd, sweepCmd, tuneCmd, tuiCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves viper-backed settings and builds the logger.
func setup() error {
	configFile = viper.GetString("config")
	preset = viper.GetString("preset")
	logLevel = viper.GetString("log-level")
	method = viper.GetString("method")

	l, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if viper.IsSet("method") {
		cfg.Method = method
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("waveform") {
		cfg.Waveform = waveform
	}
	if flags.Changed("amplitude") {
		cfg.Amplitude = amplitude
	}
	if flags.Changed("omega") {
		cfg.Omega = omega
	}
	if flags.Changed("x1") {
		cfg.InitState.X1 = x1
	}
	if flags.Changed("x2") {
		cfg.InitState.X2 = x2
	}
	for _, name := range physics.ParamNames {
		if !flags.Changed(name) {
			continue
		}
		v, _ := params.Get(name)
		p, err := cfg.Params.With(name, v)
		if err != nil {
			return nil, err
		}
		cfg.Params = p
	}

	if _, err := cfg.Forcing(); err != nil {
		return nil, err
	}
	return cfg, nil
}
