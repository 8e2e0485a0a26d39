package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/chart"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/ecosys"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/export"
	"github.com/san-kum/predprey/internal/lotka"
	"github.com/san-kum/predprey/internal/optim"
	"github.com/san-kum/predprey/internal/series"
	"github.com/san-kum/predprey/internal/storage"
	"github.com/san-kum/predprey/internal/stream"
	"github.com/san-kum/predprey/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string
	seed       int64
	// grid overrides
	predators  int
	prey       int
	obstacles  int
	width      int
	height     int
	iterations int

	svgPath  string
	noSave   bool
	steps    int
	addr     string
	interval time.Duration

	lvPrey      float64
	lvPredators float64
	lvSteps     int

	benchTicks int
	benchSeed  int64

	ensembleRuns int
	ensembleSeed int64
	sweepRuns    int
	sweepSeed    int64
	sweepHunger  []int
	sweepPreyOff []int
	sweepTop     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "predprey",
		Short:        "predator/prey ecosystem simulator",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunApp(time.Now().UnixNano(), quietLogger())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".predprey", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a grid simulation to completion",
		RunE:  runSimulation,
	}
	addGridFlags(runCmd)
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final grid as SVG")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a grid simulation with live visualization",
		RunE:  runLive,
	}
	addGridFlags(liveCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick and tune a preset, then watch it live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunApp(seedOrNow(seed), quietLogger())
		},
	}
	tuiCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run a grid simulation and stream counters over websocket",
		RunE:  serveSimulation,
	}
	addGridFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "delay between ticks")

	lvCmd := &cobra.Command{
		Use:   "lv",
		Short: "integrate the Lotka-Volterra equations",
		RunE:  runLotka,
	}
	lvCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml, or key=value .txt/.cfg)")
	lvCmd.Flags().Float64Var(&lvPrey, "prey", 0, "initial prey population")
	lvCmd.Flags().Float64Var(&lvPredators, "predators", 0, "initial predator population")
	lvCmd.Flags().IntVar(&lvSteps, "steps", 0, "integration steps")
	lvCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot population sizes over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "plot predators against prey",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&svgPath, "svg", "", "also write the phase portrait as SVG")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run populations to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and populations to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [out.svg]",
		Short: "render the grid after a number of ticks as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	addGridFlags(svgCmd)
	svgCmd.Flags().IntVar(&steps, "steps", 0, "ticks to run before rendering (0 = until finished)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the grid on every preset",
		RunE:  benchGrid,
	}
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 200, "ticks per preset")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "find population cycles in a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one configuration under many seeds",
		RunE:  runEnsemble,
	}
	addGridFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 16, "number of seeds")
	ensembleCmd.Flags().Int64Var(&ensembleSeed, "first-seed", 1, "first seed of the ensemble")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "search hunger limit and prey offspring interval for long-lived ecosystems",
		RunE:  runSweep,
	}
	addGridFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "seeds per combination")
	sweepCmd.Flags().Int64Var(&sweepSeed, "first-seed", 1, "first seed of each ensemble")
	sweepCmd.Flags().IntSliceVar(&sweepHunger, "hunger", []int{4, 6, 8, 10, 12}, "predator hunger limits to try")
	sweepCmd.Flags().IntSliceVar(&sweepPreyOff, "prey-offspring", []int{3, 5, 7}, "prey offspring intervals to try")
	sweepCmd.Flags().IntVar(&sweepTop, "top", 10, "rows to print")

	rootCmd.AddCommand(runCmd, liveCmd, tuiCmd, serveCmd, lvCmd, listCmd, plotCmd, phaseCmd, exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd, benchCmd, analyzeCmd, ensembleCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml, or key=value .txt/.cfg)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = config seed, then time based)")
	cmd.Flags().IntVar(&predators, "predators", 0, "initial predators")
	cmd.Flags().IntVar(&prey, "prey", 0, "initial prey")
	cmd.Flags().IntVar(&obstacles, "obstacles", 0, "obstacles")
	cmd.Flags().IntVar(&width, "width", 0, "grid width in cells")
	cmd.Flags().IntVar(&height, "height", 0, "grid height in cells")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "iteration limit")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	overrides := []struct {
		flag string
		dst  *int
		val  int
	}{
		{"predators", &cfg.Predators, predators},
		{"prey", &cfg.Prey, prey},
		{"obstacles", &cfg.Obstacles, obstacles},
		{"width", &cfg.Width, width},
		{"height", &cfg.Height, height},
		{"iterations", &cfg.Iterations, iterations},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dst = o.val
		}
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seedOrNow(seed)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func seedOrNow(s int64) int64 {
	if s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "predprey",
	})
	if lvl, err := log.ParseLevel(logLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", logLevel)
	}
	return logger
}

// quietLogger is used while a full-screen view owns the terminal.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	exp, err := experiment.New(experiment.Config{
		Params:   cfg.GridParams(),
		Seed:     cfg.Seed,
		LogEvery: 100,
	}, logger)
	if err != nil {
		return err
	}
	history := series.NewHistory()
	exp.AddObserver(history)

	ctx, cancel := signalContext()
	defer cancel()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Println(result.Status.String())
	fmt.Printf("steps: %d  predators: %d  prey: %d\n\n", result.Status.Step, result.Status.Predators, result.Status.Prey)
	fmt.Println(chart.Populations(history.Points(), 80, 12, "predators (red) / prey (green)"))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.KindGrid, *cfg, result.Status.Outcome.String(), history.Points())
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.GridSVG(exp.Grid(), cfg.CellWidth, cfg.CellHeight)), 0644); err != nil {
			return err
		}
		logger.Info("wrote grid snapshot", "path", svgPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(experiment.Config{Params: cfg.GridParams(), Seed: cfg.Seed}, quietLogger())
	if err != nil {
		return err
	}
	return viz.Run(exp)
}

func serveSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	hub := stream.NewHub(logger.WithPrefix("stream"))
	exp, err := experiment.New(experiment.Config{
		Params:   cfg.GridParams(),
		Seed:     cfg.Seed,
		Interval: interval,
	}, logger)
	if err != nil {
		return err
	}
	exp.AddObserver(hub)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if latest := hub.Latest(); latest != nil {
			w.Write(latest)
			return
		}
		w.Write([]byte("{}"))
	})
	srv := &http.Server{Addr: addr, Handler: mux}
	// hijacked websocket connections are not closed by Shutdown
	srv.RegisterOnShutdown(hub.Close)

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("listening", "addr", addr)
	return serveWhile(ctx, srv, func(ctx context.Context) error {
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		hub.Finish(result.Status)
		logger.Info("simulation finished, serving final status until interrupted")
		return nil
	})
}

// serveWhile runs srv alongside run and keeps serving after run returns
// until ctx is done. A listen failure cancels run and is returned;
// cancellation itself is not an error.
func serveWhile(ctx context.Context, srv *http.Server, run func(ctx context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		<-ctx.Done()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runLotka(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("prey") {
		cfg.Lotka.Prey = lvPrey
	}
	if cmd.Flags().Changed("predators") {
		cfg.Lotka.Predators = lvPredators
	}
	if cmd.Flags().Changed("steps") {
		cfg.Lotka.Steps = lvSteps
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	points, err := lotka.Solve(ctx, cfg.LotkaParams(), cfg.Lotka.Prey, cfg.Lotka.Predators, cfg.Lotka.Steps)
	if err != nil {
		return err
	}

	last := points[len(points)-1]
	fmt.Printf("steps: %d  predators: %.2f  prey: %.2f\n\n", int(last.T), last.Predators, last.Prey)
	fmt.Println(chart.Populations(points, 80, 12, "Lotka-Volterra: predators (red) / prey (green)"))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.KindLotka, *cfg, "", points)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSEED\tSTEPS\tOUTCOME\tPRED\tPREY")

	for _, run := range runs {
		outcome := run.Outcome
		if outcome == "" {
			outcome = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.0f\t%.0f\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Steps,
			outcome,
			run.Summary.Predators.Final,
			run.Summary.Prey.Final,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []series.Point, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	points, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(points) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, points, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(points))
	fmt.Println(chart.Populations(points, 80, 15, "predators (red) / prey (green)"))

	s := meta.Summary
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nPOPULATION\tMIN\tMAX\tMEAN\tFINAL")
	fmt.Fprintf(w, "predators\t%.1f\t%.1f\t%.1f\t%.1f\n", s.Predators.Min, s.Predators.Max, s.Predators.Mean, s.Predators.Final)
	fmt.Fprintf(w, "prey\t%.1f\t%.1f\t%.1f\t%.1f\n", s.Prey.Min, s.Prey.Max, s.Prey.Mean, s.Prey.Final)
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s\n\n", meta.ID)
	fmt.Println(chart.Phase(points, 70, 20))

	if svgPath != "" {
		svg := export.PhaseSVG(points, 600, 400, "#00ff88")
		if svg == "" {
			return fmt.Errorf("run %s has too few samples for a phase portrait", meta.ID)
		}
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"t", "predators", "prey"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.T, 'f', -1, 64),
			strconv.FormatFloat(p.Predators, 'f', 6, 64),
			strconv.FormatFloat(p.Prey, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, *meta, points)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(experiment.Config{Params: cfg.GridParams(), Seed: cfg.Seed}, newLogger())
	if err != nil {
		return err
	}
	for i := 0; steps <= 0 || i < steps; i++ {
		if !exp.Step() {
			break
		}
	}

	if err := os.WriteFile(args[0], []byte(export.GridSVG(exp.Grid(), cfg.CellWidth, cfg.CellHeight)), 0644); err != nil {
		return err
	}
	fmt.Println(exp.Grid().Status().String())
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tPRED\tPREY\tOBST\tITER")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\t%d\t%d\n", name, p.Width, p.Height, p.Predators, p.Prey, p.Obstacles, p.Iterations)
	}
	return w.Flush()
}

func benchGrid(cmd *cobra.Command, args []string) error {
	fmt.Printf("benchmarking %d ticks per preset\n\n", benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCELLS\tTICKS\tTIME\tTICKS/SEC\tCELLS/SEC")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		params := cfg.GridParams()
		params.IterationLimit = benchTicks

		exp, err := experiment.New(experiment.Config{Params: params, Seed: benchSeed}, quietLogger())
		if err != nil {
			return err
		}

		start := time.Now()
		ticks := 0
		for exp.Step() {
			ticks++
		}
		elapsed := time.Since(start)

		cells := params.Rows * params.Cols
		perSec := float64(ticks) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.0f\n", name, cells, ticks, elapsed, perSec, perSec*float64(cells))
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, points, err := loadRun(args[0])
	if err != nil {
		return err
	}

	r := analysis.Analyze(points)
	fmt.Printf("run: %s (%d samples)\n\n", meta.ID, r.Samples)

	prey := make([]float64, len(points))
	for i, p := range points {
		prey[i] = p.Prey
	}
	if ps := analysis.PowerSpectrum(prey); ps != nil {
		fmt.Println(chart.Spectrum(ps, 70, 10, "prey power spectrum"))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POPULATION\tPERIOD\tPOWER")
	for _, c := range []struct {
		name  string
		cycle analysis.Cycle
	}{{"predators", r.PredatorCycle}, {"prey", r.PreyCycle}} {
		if !c.cycle.Found {
			fmt.Fprintf(w, "%s\t-\t-\n", c.name)
			continue
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.2f\n", c.name, c.cycle.Period, c.cycle.Power)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\npredators follow prey by %d samples (r=%.2f)\n", r.Lag, r.LagCorrelation)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()
	ctx, cancel := signalContext()
	defer cancel()

	ens, err := experiment.NewEnsemble(cfg.GridParams(), ensembleRuns, ensembleSeed, quietLogger())
	if err != nil {
		return err
	}

	logger.Info("starting ensemble", "runs", ensembleRuns, "first_seed", ensembleSeed)
	start := time.Now()
	runs, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("ensemble finished", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tOUTCOME\tSTEPS\tPRED\tPREY\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%v\n", r.Seed, r.Status.Outcome, r.Status.Step, r.Status.Predators, r.Status.Prey, r.Elapsed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	t := experiment.Summarize(runs)
	fmt.Printf("\nmean steps: %.1f\n", t.MeanSteps)
	for _, o := range []ecosys.Outcome{ecosys.Draw, ecosys.PredatorsWin, ecosys.PreyWin} {
		fmt.Printf("%-14s %d/%d\n", o.String()+":", t.Outcomes[o], t.Runs)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()
	ctx, cancel := signalContext()
	defer cancel()

	search, err := optim.NewGridSearch([]optim.Axis{
		{Name: "predator_hunger_limit", Values: sweepHunger},
		{Name: "prey_offspring_interval", Values: sweepPreyOff},
	}, sweepRuns, sweepSeed, quietLogger())
	if err != nil {
		return err
	}

	logger.Info("starting sweep", "combinations", len(sweepHunger)*len(sweepPreyOff), "runs", sweepRuns)
	points, err := search.Search(ctx, cfg.GridParams())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HUNGER\tPREY_OFF\tMEAN_STEPS\tDRAW\tPRED_WIN\tPREY_WIN")
	for i, p := range points {
		if sweepTop > 0 && i >= sweepTop {
			break
		}
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%d\t%d\t%d\n",
			p.Values["predator_hunger_limit"], p.Values["prey_offspring_interval"], p.Score,
			p.Tally.Outcomes[ecosys.Draw], p.Tally.Outcomes[ecosys.PredatorsWin], p.Tally.Outcomes[ecosys.PreyWin])
	}
	return w.Flush()
}
