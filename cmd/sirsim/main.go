package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/sirsim/internal/config"
	"github.com/san-kum/sirsim/internal/experiment"
	"github.com/san-kum/sirsim/internal/viz"
)

var (
	configFile string
	preset     string
	integrator string
	view       string
	beta       float64
	i0         float64
	s0         float64
	samples    int
	horizon    float64
	debugFile  string
	theme      string
	// Output options
	outFile    string
	svgFile    string
	benchRuns  int
	plotHeight int
	// Sweep and fit
	sweepParamName string
	sweepFrom      float64
	sweepTo        float64
	sweepSteps     int
	sweepHeight    int
	fitMetric      string
	fitTarget      float64
	fitSteps       int
	fitI0          bool
)

// runProgram drives the interactive app until the user quits.
var runProgram = func(app *viz.App) error { return viz.Run(app) }

// main runs the interactive session when no subcommand is given. It exits with
// status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sirsim",
		Short:        "interactive SIR epidemic simulator",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, rk4, rk45)")
	pf.StringVar(&view, "view", config.DefaultView, "view (series, phase)")
	pf.Float64Var(&beta, "beta", 0.25, "transmission rate β")
	pf.Float64Var(&i0, "i0", 10, "initially infected [%]")
	pf.Float64Var(&s0, "s0", 90, "initially susceptible [%]")
	pf.IntVar(&samples, "samples", 0, "output samples (0 = integrator default)")
	pf.Float64Var(&horizon, "horizon", config.DefaultHorizon, "time horizon [day]")
	pf.StringVar(&debugFile, "debug", "", "write debug log to file")
	pf.StringVar(&theme, "theme", viz.ThemeClassic.Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute one trajectory and plot it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&plotHeight, "height", 20, "plot height in rows")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "draw the (S, I, R) phase portrait",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&svgFile, "svg", "", "write the portrait as SVG instead")

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "render the time series to a PNG or SVG file",
		Args:  cobra.NoArgs,
		RunE:  renderChart,
	}
	chartCmd.Flags().StringVarP(&outFile, "output", "o", "sir.png", "output file (.png or .svg)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export the trajectory to CSV on stdout",
		Args:  cobra.NoArgs,
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export the trajectory and metrics to JSON on stdout",
		Args:  cobra.NoArgs,
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare unit-step Euler with adaptive RK45",
		Args:  cobra.NoArgs,
		RunE:  compareIntegrators,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrators",
		Args:  cobra.NoArgs,
		RunE:  benchIntegrators,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 100, "runs per integrator")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and plot peak and final size",
		Args:  cobra.NoArgs,
		RunE:  sweepParam,
	}
	sweepCmd.Flags().StringVar(&sweepParamName, "param", "beta", "parameter to sweep (beta, i0, s0)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 21, "number of values")
	sweepCmd.Flags().IntVar(&sweepHeight, "height", 15, "plot height in rows")

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "grid-search β (and optionally I0) for a target metric",
		Args:  cobra.NoArgs,
		RunE:  fitParams,
	}
	fitCmd.Flags().StringVar(&fitMetric, "metric", "peak_infected", "metric to match (peak_infected, peak_day, final_recovered, final_susceptible)")
	fitCmd.Flags().Float64Var(&fitTarget, "target", 20, "target value")
	fitCmd.Flags().IntVar(&fitSteps, "steps", 101, "grid points per parameter")
	fitCmd.Flags().BoolVar(&fitI0, "i0-search", false, "also search I0")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "replay scripted parameter changes through a session",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(runCmd, phaseCmd, chartCmd, exportCSVCmd, exportJSONCmd, compareCmd, benchCmd, sweepCmd, fitCmd, scriptCmd, presetsCmd, initCmd)

	return rootCmd
}

// resolveConfig layers preset, config file and flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	base := config.DefaultConfig()
	if preset != "" {
		base = config.GetPreset(preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadOver(configFile, base)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg, err = config.LoadDefaultOver(base)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	viz.CurrentTheme = viz.GetTheme(theme)

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("view") {
		cfg.View = view
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = beta
	}
	if flags.Changed("i0") {
		cfg.Params.I0 = i0
	}
	if flags.Changed("s0") {
		cfg.Params.S0 = s0
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	return cfg, nil
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg)
}

// openLog routes the standard logger to the debug file. With no debug file
// the returned logger is nil and sessions stay silent.
func openLog() (*log.Logger, func(), error) {
	if debugFile == "" {
		return nil, func() {}, nil
	}
	f, err := tea.LogToFile(debugFile, "sirsim")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := exp.Config()
	mode, err := viz.ParseViewMode(cfg.View)
	if err != nil {
		return err
	}
	app := viz.NewApp(viz.Options{
		View:        mode,
		BetaStep:    cfg.Steps.Beta,
		PercentStep: cfg.Steps.Percent,
		Logger:      logger,
	})

	sess, err := exp.NewSession(app.Display(), logger)
	if err != nil {
		return err
	}
	app.Attach(sess)

	// app.Err is the status line of the last edit, not a failure of the program.
	return runProgram(app)
}
