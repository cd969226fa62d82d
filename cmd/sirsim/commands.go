package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/sirsim/internal/analysis"
	"github.com/san-kum/sirsim/internal/automation"
	"github.com/san-kum/sirsim/internal/chart"
	"github.com/san-kum/sirsim/internal/config"
	"github.com/san-kum/sirsim/internal/epidemic"
	"github.com/san-kum/sirsim/internal/experiment"
	"github.com/san-kum/sirsim/internal/export"
	"github.com/san-kum/sirsim/internal/metrics"
	"github.com/san-kum/sirsim/internal/optim"
	"github.com/san-kum/sirsim/internal/session"
	"github.com/san-kum/sirsim/internal/viz"
)

// printer renders a trajectory once to a writer using the terminal
// collaborators.
type printer struct {
	w             io.Writer
	width, height int
}

func newPrinter(w io.Writer, height int) *printer {
	width := 80
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 20 {
		width = tw
	}
	return &printer{w: w, width: width, height: height}
}

func (p *printer) DisplaySeries(xs []float64, series []session.Series) error {
	_, err := fmt.Fprintln(p.w, viz.PlotSeries(xs, series, p.width-12, p.height))
	return err
}

func (p *printer) DisplayCurve3D(points []session.Point3, markers []session.Marker) error {
	out := viz.RenderPhase(points, markers, viz.NewCamera(), min(p.width, 100), p.height)
	_, err := fmt.Fprintln(p.w, out)
	return err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	c, err := exp.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := (session.SeriesView{Target: newPrinter(os.Stdout, plotHeight)}).Show(c); err != nil {
		return err
	}

	fmt.Printf("\n%s with %s, %d samples, computed in %v\n\n", c.Params, c.Strategy, c.Len(), elapsed)
	return printSummary(os.Stdout, metrics.Summarize(c))
}

func printSummary(out io.Writer, s metrics.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, l := range s.Lines() {
		fmt.Fprintf(w, "  %s\t%s\n", l[0], l[1])
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	c, err := exp.Run()
	if err != nil {
		return err
	}

	if svgFile == "" {
		return (session.PhaseView{Target: newPrinter(os.Stdout, 24)}).Show(c)
	}

	return writeFile(svgFile, func(w io.Writer) error {
		return (session.PhaseView{Target: export.NewSVG(w)}).Show(c)
	})
}

func renderChart(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	c, err := exp.Run()
	if err != nil {
		return err
	}

	err = writeFile(outFile, func(w io.Writer) error {
		var target session.SeriesDisplay
		if strings.EqualFold(filepath.Ext(outFile), ".svg") {
			target = export.NewSVG(w)
		} else {
			target = chart.NewPNG(w, fmt.Sprintf("SIR model, %s", c.Params))
		}
		return session.SeriesView{Target: target}.Show(c)
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	c, err := exp.Run()
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, c)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	c, err := exp.Run()
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, c)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cmp, err := exp.Compare()
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s\n\n", exp.Params())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tREJECTED\tEVALS\tPEAK I\tPEAK DAY\tFINAL R")
	for _, c := range []*epidemic.Compartments{cmp.Fixed, cmp.Adaptive} {
		s := metrics.Summarize(c)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.3f\t%.1f\t%.3f\n",
			c.Strategy, s.Steps, s.Rejected, s.Evaluations,
			s.PeakInfected, s.PeakDay, s.FinalRecovered)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	d := cmp.Deviation
	fmt.Printf("\nmax deviation over %d shared samples: S %.2e  I %.2e  R %.2e\n", d.Shared, d.S, d.I, d.R)
	return nil
}

func benchIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if benchRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", benchRuns)
	}

	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tKIND\tSAMPLES\tRUNS\tPER RUN\tSTEPS\tEVALS")

	for _, name := range registry.ListStrategies() {
		run := cfg.Clone()
		run.Integrator = name
		exp, err := experiment.New(run)
		if err != nil {
			return err
		}

		var c *epidemic.Compartments
		start := time.Now()
		for range benchRuns {
			c, err = exp.Run()
			if err != nil {
				return err
			}
		}
		per := time.Since(start) / time.Duration(benchRuns)
		kind := "fixed"
		if registry.IsAdaptive(name) {
			kind = "adaptive"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\t%d\t%d\n", name, kind, c.Len(), benchRuns, per, c.Steps, c.Evaluations)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tINTEGRATOR\tPARAMS\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Config.Integrator, p.Config.Params, p.Description)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Params = cfg.Params.Normalize()

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	id, err := epidemic.ParseParamID(sweepParamName)
	if err != nil {
		return err
	}

	pts, err := analysis.Sweep(exp.Strategy(), exp.Grid(), exp.Params(), id, sweepFrom, sweepTo, sweepSteps)
	if err != nil {
		return err
	}

	names := []string{"peak_infected", "final_recovered", "final_susceptible"}
	width := 80
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 32 {
		width = tw - 12
	}
	fmt.Println(analysis.SweepToASCII(pts, id, names, width, sweepHeight))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tR0\tPEAK I\tPEAK DAY\tFINAL R\n", strings.ToUpper(id.String()))
	for _, p := range pts {
		fmt.Fprintf(w, "%.3f\t%.2f\t%.2f\t%.0f\t%.2f\n",
			p.Param, p.Values["r0"], p.Values["peak_infected"], p.Values["peak_day"], p.Values["final_recovered"])
	}
	return w.Flush()
}

func fitParams(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}

	var m metrics.Metric
	switch fitMetric {
	case "peak_infected":
		m = metrics.NewPeakInfected()
	case "peak_day":
		m = metrics.NewPeakDay()
	case "final_recovered":
		m = metrics.NewFinalSize()
	case "final_susceptible":
		m = metrics.NewFinalSusceptible()
	default:
		return fmt.Errorf("unknown metric: %s", fitMetric)
	}

	ids := []epidemic.ParamID{epidemic.Beta}
	ranges := [][]float64{optim.Span(0, 1, fitSteps)}
	if fitI0 {
		ids = append(ids, epidemic.Infected0)
		ranges = append(ranges, optim.Span(0, 100-exp.Params().S0, fitSteps))
	}

	gs := optim.NewGridSearch(ids, ranges)
	res, err := gs.Search(exp.Strategy(), exp.Grid(), exp.Params(), optim.TargetMetric(m, fitTarget))
	if err != nil {
		return err
	}

	fmt.Printf("best of %d candidates for %s = %g:\n", res.Evaluated, fitMetric, fitTarget)
	fmt.Printf("  %s\n", res.Params)
	fmt.Printf("  R0 %.2f, |error| %.4g\n", res.Params.ReproductionNumber(), res.Score)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog()
	if err != nil {
		return err
	}
	defer closeLog()

	sess, err := exp.NewSession(session.DisplayFunc(func(*epidemic.Compartments) error { return nil }), logger)
	if err != nil {
		return err
	}

	if scenario.Name != "" {
		fmt.Printf("scenario %s", scenario.Name)
		if scenario.Description != "" {
			fmt.Printf(": %s", scenario.Description)
		}
		fmt.Println()
	}

	results, runErr := automation.RunScenario(sess, scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tCHANGE\tβ\tI0\tS0\tPEAK I\tPEAK DAY\tFINAL R")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.1f\t%.1f\t%.2f\t%.0f\t%.2f\n",
			i+1, r.Step, r.Params.Beta, r.Params.I0, r.Params.S0,
			r.Summary.PeakInfected, r.Summary.PeakDay, r.Summary.FinalRecovered)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}
