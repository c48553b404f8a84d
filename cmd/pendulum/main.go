package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/Anthony-Giacinto/pendulum/internal/config"
	"github.com/Anthony-Giacinto/pendulum/internal/export"
	"github.com/Anthony-Giacinto/pendulum/internal/gui"
	"github.com/Anthony-Giacinto/pendulum/internal/metrics"
	"github.com/Anthony-Giacinto/pendulum/internal/pendulum"
	"github.com/Anthony-Giacinto/pendulum/internal/sim"
	"github.com/Anthony-Giacinto/pendulum/internal/storage"
	"github.com/Anthony-Giacinto/pendulum/internal/tui"
	"github.com/Anthony-Giacinto/pendulum/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	theta      float64
	omega      float64
	dt         float64
	rodLength  float64
	damping    float64
	gravity    float64
	trail      bool
	rate       int
	timeLimit  float64
	repeat     bool
	thetaLimit float64
	omegaLimit float64
	labels     bool
	width      int
	height     int
	plotAngle  bool

	watch   bool
	outFile string
)

// A headless run with repeat enabled and no time limit would never stop;
// everything else is bounded by this step cap as a safety net.
const maxHeadlessSteps = 50_000_000

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendulum",
		Short: "damped pendulum simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live terminal view when no command given
			return runLive(cmd, args)
		},
	}
	addSimFlags(rootCmd)

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendulum", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation headless and record it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "animate the run in the terminal")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "graphical window view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render the angle plot of a run to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.png)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportPNGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "initial angle (degrees)")
	cmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "initial angular velocity (degrees/s)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&rodLength, "rod-length", config.DefaultRodLength, "rod length")
	cmd.Flags().Float64Var(&damping, "dampening-coeff", config.DefaultDamping, "dampening coefficient")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "acceleration from gravity")
	cmd.Flags().BoolVar(&trail, "trail", false, "draw the bob trail")
	cmd.Flags().IntVar(&rate, "rate", config.DefaultAnimationRate, "animation steps per second")
	cmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "stop after this many simulated seconds (0 = no limit)")
	cmd.Flags().BoolVar(&repeat, "repeat", true, "restart from the initial state when the motion settles")
	cmd.Flags().Float64Var(&thetaLimit, "theta-limit", config.DefaultThetaLimit, "angle threshold for settling (degrees)")
	cmd.Flags().Float64Var(&omegaLimit, "omega-limit", config.DefaultOmegaLimit, "angular velocity threshold for settling (degrees/s)")
	cmd.Flags().BoolVar(&labels, "labels", true, "show the parameter labels")
	cmd.Flags().IntVar(&width, "width", config.DefaultDisplayWidth, "window width (gui)")
	cmd.Flags().IntVar(&height, "height", config.DefaultDisplayHeight, "window height (gui)")
	cmd.Flags().BoolVar(&plotAngle, "plot", false, "plot the angle alongside the animation")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers the run configuration: defaults, then preset, then
// config file, with CLI flags overriding anything they explicitly set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("theta") {
		cfg.Theta = theta
	}
	if cmd.Flags().Changed("omega") {
		cfg.Omega = omega
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("rod-length") {
		cfg.RodLength = rodLength
	}
	if cmd.Flags().Changed("dampening-coeff") {
		cfg.Damping = damping
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}
	if cmd.Flags().Changed("trail") {
		cfg.Trail = trail
	}
	if cmd.Flags().Changed("rate") {
		cfg.AnimationRate = rate
	}
	if cmd.Flags().Changed("time-limit") {
		cfg.TimeLimit = timeLimit
	}
	if cmd.Flags().Changed("repeat") {
		cfg.Repeat = repeat
	}
	if cmd.Flags().Changed("theta-limit") {
		cfg.Limits.Theta = thetaLimit
	}
	if cmd.Flags().Changed("omega-limit") {
		cfg.Limits.Omega = omegaLimit
	}
	if cmd.Flags().Changed("labels") {
		cfg.Labels = labels
	}
	if cmd.Flags().Changed("width") {
		cfg.DisplayWidth = width
	}
	if cmd.Flags().Changed("height") {
		cfg.DisplayHeight = height
	}
	if cmd.Flags().Changed("plot") {
		cfg.Plot = plotAngle
	}

	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.RodLength <= 0 {
		return nil, fmt.Errorf("rod length must be positive, got %g", cfg.RodLength)
	}
	if cfg.AnimationRate <= 0 {
		return nil, fmt.Errorf("animation rate must be positive, got %d", cfg.AnimationRate)
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.TimeLimit <= 0 && cfg.Repeat {
		return fmt.Errorf("run would never stop: set --time-limit or --repeat=false")
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	p := cfg.Params()
	integ := pendulum.New(cfg.Theta, cfg.Omega, p)

	ms := []sim.Metric{metrics.NewEnergy(p), metrics.NewAmplitudeDecay()}
	series := &sim.Series{}

	fmt.Println("running simulation...")
	start := time.Now()

	if watch {
		r := tui.NewLiveRenderer(cfg.RodLength, 30)
		driver := sim.NewDriver(integ, r, r, sim.Config{
			Rate:  cfg.AnimationRate,
			Trail: cfg.Trail,
			Plot:  cfg.Plot,
		})
		for _, m := range ms {
			driver.AddMetric(m)
		}
		driver.AddObserver(series)

		r.Start()
		err := driver.Run(context.Background())
		r.Stop()
		if err != nil {
			return err
		}
	} else {
		for {
			state, status := integ.Step()
			for _, m := range ms {
				m.Observe(state)
			}
			series.OnStep(state, status)
			if status == pendulum.Stopped {
				break
			}
			if len(series.Times) >= maxHeadlessSteps {
				return fmt.Errorf("exceeded %d steps without stopping", maxHeadlessSteps)
			}
		}
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Theta:     cfg.Theta,
		Omega:     cfg.Omega,
		Dt:        cfg.Dt,
		RodLength: cfg.RodLength,
		Damping:   cfg.Damping,
		Gravity:   cfg.Gravity,
		TimeLimit: cfg.TimeLimit,
		Repeat:    cfg.Repeat,
		Metrics:   make(map[string]float64, len(ms)),
	}
	for _, m := range ms {
		meta.Metrics[m.Name()] = m.Value()
	}

	runID, err := st.Save(meta, series)
	if err != nil {
		return err
	}

	final := integ.State()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(series.Times))
	fmt.Printf("final: t=%.3fs theta=%.4f deg omega=%.4f deg/s\n",
		final.T, final.Theta*180/math.Pi, final.Omega*180/math.Pi)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, meta.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg)
	m.Snapshot = func(c *viz.Canvas) (string, error) {
		name := fmt.Sprintf("pendulum_%d.svg", time.Now().Unix())
		return export.WriteCanvasSVG(name, c)
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tTIME\tTHETA\tOMEGA\tDT\tDAMPING\tLIMIT\tSTEPS")

	for _, run := range runs {
		limit := "-"
		if run.TimeLimit > 0 {
			limit = fmt.Sprintf("%.2fs", run.TimeLimit)
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.4fs\t%.2f\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Theta,
			run.Omega,
			run.Dt,
			run.Damping,
			limit,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series.Times))

	thetas := make([]float64, len(series.Thetas))
	omegas := make([]float64, len(series.Omegas))
	for i := range series.Thetas {
		thetas[i] = series.Thetas[i] * 180 / math.Pi
		omegas[i] = series.Omegas[i] * 180 / math.Pi
	}

	fmt.Println(asciigraph.Plot(thetas,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("theta (deg)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(omegas,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("omega (deg/s)"),
	))
	fmt.Println()

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteSeriesCSV(os.Stdout, series)
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = runID + ".png"
	}
	if err := export.WritePlotPNG(path, series); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
