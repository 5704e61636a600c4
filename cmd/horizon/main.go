package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"

	"github.com/san-kum/horizon/internal/config"
	"github.com/san-kum/horizon/internal/export"
	"github.com/san-kum/horizon/internal/horizon"
	"github.com/san-kum/horizon/internal/nbody"
	"github.com/san-kum/horizon/internal/sim"
	"github.com/san-kum/horizon/internal/storage"
	"github.com/san-kum/horizon/internal/viz"
)

var (
	dataDir    string
	verbosity  int
	configFile string
	preset     string
	dt         float64
	duration   float64
	method     string
	gravity    bool
	save       bool
	every      int
	massPreset string
	mass       float64
	outFile    string
	svgFile    string
	svgSize    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "horizon",
		Short:        "n-body orbits around a compact body",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu(newLogger())
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".horizon", "data directory")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "save the run under the data directory")
	runCmd.Flags().IntVar(&every, "every", 60, "record one frame in every N steps")

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "run every integration method on one configuration",
		RunE:  compareMethods,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().IntVar(&every, "every", 60, "record one frame in every N steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a preset and watch it live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu(newLogger())
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "print compact body quantities",
		RunE:  showInfo,
	}
	infoCmd.Flags().StringVar(&massPreset, "preset", "sgr-a", "mass preset")
	infoCmd.Flags().Float64Var(&mass, "mass", 0, "mass in kg (overrides --preset)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&svgFile, "svg", "", "also draw the trajectories to this svg file")
	exportCmd.Flags().IntVar(&svgSize, "svg-size", 600, "svg width and height in pixels")

	rootCmd.AddCommand(runCmd, compareCmd, liveCmd, menuCmd, infoCmd, presetsCmd, listCmd, plotCmd, exportCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", nbody.DefaultTimeStep, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "integration method (euler, leapfrog, rk4)")
	cmd.Flags().BoolVar(&gravity, "gravity", false, "enable gravity")
}

func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

// loadConfig resolves --config, then --preset, then the defaults, and
// applies only the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	var cfg *config.Config
	name := "default"
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg, name = c, "custom"
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Physics.TimeStep = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("method") {
		cfg.Physics.IntegrationMethod = method
	}
	if flags.Changed("gravity") {
		cfg.Physics.EnableGravity = gravity
	}
	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	result, err := sim.New(newLogger(), every).Run(cmd.Context(), name, cfg)
	if err != nil {
		return err
	}
	start, end := result.Start, result.End

	fmt.Printf("preset: %s\n", name)
	fmt.Printf("central: %s (%.4g kg)\n", end.Central.Name, end.Central.Mass)
	fmt.Printf("method: %s, gravity: %v\n", end.Method, end.Gravity)
	fmt.Printf("steps: %d, simulated time: %.4gs, wall time: %s\n", end.Step, end.Time, result.Elapsed)
	fmt.Printf("bodies: %d remaining, %d absorbed, %d swallowed\n", len(end.Bodies), end.Absorbed, end.Swallowed)
	fmt.Printf("energy: %.6e J -> %.6e J\n\n", start.TotalEnergy(), end.TotalEnergy())

	names := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("  %-16s %.6g\n", k, result.Metrics[k])
	}

	if totals := result.Recorder.Totals(); len(totals) > 1 {
		fmt.Println()
		fmt.Println(viz.OffsetChart(totals, 80, 10, "total energy"))
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Name:     name,
		Central:  end.Central.Name,
		Mass:     end.Central.Mass,
		Method:   end.Method.String(),
		Gravity:  end.Gravity,
		Dt:       cfg.Physics.TimeStep,
		Steps:    end.Step,
		Duration: end.Time,
		Metrics:  result.Metrics,
	}
	for _, b := range start.Bodies {
		meta.Bodies = append(meta.Bodies, b.Name)
	}
	id, err := st.Save(meta, result.Recorder)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", id)
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	methods := []nbody.Method{nbody.FirstOrder, nbody.Leapfrog, nbody.FourthOrder}
	if len(args) > 0 {
		methods = methods[:0]
		for _, a := range args {
			methods = append(methods, nbody.ParseMethod(a))
		}
	}

	results, err := sim.New(newLogger(), every).Compare(cmd.Context(), name, cfg, methods)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods for %s (dt=%gs, %d steps)\n\n", name, cfg.Physics.TimeStep, cfg.Steps())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tORDER\tENERGY_DRIFT\tSTABILITY\tLOST\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.3e\t%.3f\t%.0f\t%s\n",
			r.End.Method,
			r.End.Method.Order(),
			r.Metrics["energy_drift"],
			r.Metrics["stability"],
			r.Metrics["bodies_lost"],
			r.Elapsed.Round(time.Microsecond),
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.Build(newLogger())
	if err != nil {
		return err
	}
	return viz.RunLive(s, name)
}

func showInfo(cmd *cobra.Command, args []string) error {
	m := mass
	if !cmd.Flags().Changed("mass") {
		var ok bool
		if m, ok = horizon.MassPresets[massPreset]; !ok {
			return fmt.Errorf("unknown mass preset: %s", massPreset)
		}
	}
	cb, err := horizon.New(massPreset, mgl64.Vec3{}, m)
	if err != nil {
		return err
	}
	fmt.Println(cb)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "R/RH\tR (m)\tg (m/s^2)\tdτ/dt\tEMBED (m)")
	for _, k := range []float64{1.01, 1.5, 3, 10, 100} {
		r := k * cb.HorizonRadius()
		p := mgl64.Vec3{r, 0, 0}
		fmt.Fprintf(w, "%.2f\t%.4g\t%.4g\t%.4f\t%.4g\n",
			k, r,
			cb.GravitationalAcceleration(p).Len(),
			cb.TimeDilationFactor(r),
			cb.EmbeddingHeight(p),
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tMETHOD\tDT\tDURATION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		n := len(cfg.Bodies)
		if n == 0 {
			n = len(config.DefaultBodies())
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%gs\t%gs\n", name, n, cfg.Method(), cfg.Physics.TimeStep, cfg.Duration)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tDT\tMETHOD\tBODIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gs\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Method,
			len(run.Bodies),
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
	samples, err := st.LoadEnergy(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("method: %s\n", meta.Method)
	fmt.Printf("samples: %d\n\n", len(samples))

	kinetic := make([]float64, len(samples))
	total := make([]float64, len(samples))
	for i, s := range samples {
		kinetic[i], total[i] = s.Kinetic, s.Total
	}
	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"kinetic energy", kinetic},
		{"total energy", total},
	} {
		fmt.Println(viz.OffsetChart(series.data, 80, 10, series.caption))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if svgFile != "" {
		points, err := st.LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(svgFile, []byte(export.TrajectorySVG(points, svgSize)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "trajectories drawn to %s\n", svgFile)
	}
	if outFile == "" {
		return st.ExportRun(os.Stdout, args[0])
	}
	if err := st.ExportRunFile(outFile, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", outFile)
	return nil
}
