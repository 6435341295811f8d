package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravlab/internal/config"
	"github.com/san-kum/gravlab/internal/export"
	"github.com/san-kum/gravlab/internal/metrics"
	"github.com/san-kum/gravlab/internal/sim"
	"github.com/san-kum/gravlab/internal/storage"
	"github.com/san-kum/gravlab/internal/universe"
	"github.com/san-kum/gravlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt       float64
	duration float64
	sample   int
	seed     int64

	bodies     int
	posMin     float64
	posMax     float64
	velMin     float64
	velMax     float64
	massMin    float64
	massMax    float64
	tangential bool

	gravity    float64
	collisions bool

	frameRate int
	svgSize   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravlab",
		Short: "planar gravitational n-body simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no subcommand is given.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravlab", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
		cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
		cmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (0 = from clock)")
		cmd.Flags().IntVar(&bodies, "bodies", config.DefaultBodies, "number of bodies")
		cmd.Flags().Float64Var(&posMin, "pos-min", 0, "position magnitude lower bound")
		cmd.Flags().Float64Var(&posMax, "pos-max", 250, "position magnitude upper bound")
		cmd.Flags().Float64Var(&velMin, "vel-min", 0, "velocity magnitude lower bound")
		cmd.Flags().Float64Var(&velMax, "vel-max", 125, "velocity magnitude upper bound")
		cmd.Flags().Float64Var(&massMin, "mass-min", 1, "mass lower bound (keep above 0)")
		cmd.Flags().Float64Var(&massMax, "mass-max", 10, "mass upper bound")
		cmd.Flags().BoolVar(&tangential, "tangential", false, "perpendicular starting velocities")
		cmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant (negative repels)")
		cmd.Flags().BoolVar(&collisions, "collisions", true, "merge bodies on contact")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and record it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&sample, "sample", config.DefaultSample, "record every nth step")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export full run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render run frames to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 1000, "image size in pixels")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step cost across population sizes",
		RunE:  benchStep,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s %5d bodies, G=%.0f, collisions=%v, tangential=%v\n",
					name, p.Genesis.Bodies, p.Universe.G, p.Universe.Collisions, p.Genesis.Tangential)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves preset, then config file, then flags, most
// specific last.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("sample") {
		cfg.Sample = sample
	}
	if flags.Changed("seed") {
		cfg.Genesis.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Genesis.Bodies = bodies
	}
	if flags.Changed("pos-min") {
		cfg.Genesis.PositionMin = posMin
	}
	if flags.Changed("pos-max") {
		cfg.Genesis.PositionMax = posMax
	}
	if flags.Changed("vel-min") {
		cfg.Genesis.VelocityMin = velMin
	}
	if flags.Changed("vel-max") {
		cfg.Genesis.VelocityMax = velMax
	}
	if flags.Changed("mass-min") {
		cfg.Genesis.MassMin = massMin
	}
	if flags.Changed("mass-max") {
		cfg.Genesis.MassMax = massMax
	}
	if flags.Changed("tangential") {
		cfg.Genesis.Tangential = tangential
	}
	if flags.Changed("g") {
		cfg.Universe.G = gravity
	}
	if flags.Changed("collisions") {
		cfg.Universe.Collisions = collisions
	}

	return cfg, nil
}

func newUniverse(cfg *config.Config) *universe.Universe {
	u := universe.New()
	u.Settings = cfg.SimulationSettings()
	u.GenerateBodies(cfg.GenerationSettings())
	return u
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	u := newUniverse(cfg)

	runner := sim.New(u)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("simulating %d bodies for %.1fs (dt=%.4f)...\n", u.Len(), cfg.Duration, cfg.Dt)
	start := time.Now()

	result, err := runner.Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Seed:       cfg.Genesis.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		G:          cfg.Universe.G,
		Collisions: cfg.Universe.Collisions,
		Bodies:     cfg.Genesis.Bodies,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, samples: %d\n", result.StepsTaken, len(result.Frames))
	fmt.Printf("final bodies: %d\n", u.Len())
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	u := newUniverse(cfg)
	return viz.Run(u, cfg.GenerationSettings(), frameRate)
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
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tFINAL\tDURATION\tDT\tG\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2fs\t%.4fs\t%.0f\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.FinalBodies,
			run.Duration,
			run.Dt,
			run.G,
			run.Collisions,
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

	frames, _, counts, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(frames))

	bodySeries := make([]float64, len(counts))
	massSeries := make([]float64, len(frames))
	keSeries := make([]float64, len(frames))

	for i, frame := range frames {
		bodySeries[i] = float64(counts[i])
		for b := 0; b+4 < len(frame); b += 5 {
			vx, vy, m := frame[b+2], frame[b+3], frame[b+4]
			massSeries[i] += m
			keSeries[i] += 0.5 * m * (vx*vx + vy*vy)
		}
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"body count", bodySeries},
		{"total mass", massSeries},
		{"kinetic energy", keSeries},
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	return printJSON(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, counts, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "bodies", "state"}); err != nil {
		return err
	}

	for i, frame := range frames {
		row := make([]string, 0, len(frame)+2)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		row = append(row, strconv.Itoa(counts[i]))
		for _, val := range frame {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, counts, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Frames:      frames,
		Times:       times,
		BodyCounts:  counts,
		Metrics:     meta.Metrics,
		EnergyDrift: meta.EnergyDrift,
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, _, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return export.FrameSVG(os.Stdout, frames, svgSize)
}

func benchStep(cmd *cobra.Command, args []string) error {
	sizes := []int{100, 250, 500, 1000, 2000}
	const steps = 50

	fmt.Println("per-step cost grows with the square of the population")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tPAIRS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range sizes {
		u := universe.New()
		u.Settings.EnableCollisions = false
		u.GenerateBodies(universe.GenerationSettings{
			Seed:          1,
			Bodies:        n,
			PositionRange: universe.Range{Min: 10, Max: 500},
			VelocityRange: universe.Range{Min: 0, Max: 50},
			MassRange:     universe.Range{Min: 1, Max: 10},
		})

		start := time.Now()
		for i := 0; i < steps; i++ {
			u.Step(0.005)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.1f\n",
			n, u.Interactions()/2, steps, elapsed, float64(steps)/elapsed.Seconds())
	}

	return w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
