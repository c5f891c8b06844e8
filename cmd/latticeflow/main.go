package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/latticeflow/internal/config"
	"github.com/san-kum/latticeflow/internal/lattice"
	"github.com/san-kum/latticeflow/internal/metrics"
	"github.com/san-kum/latticeflow/internal/sim"
	"github.com/san-kum/latticeflow/internal/storage"
	"github.com/san-kum/latticeflow/internal/viz"
)

var (
	dataDir   string
	threads   int
	debugMode bool
	noSave    bool
	// Output file paths for the classic run
	outState string
	outVels  string
	// Config-driven run parameters
	configFile   string
	preset       string
	nx           int
	ny           int
	maxIters     int
	reynoldsDim  int
	density      float64
	accel        float64
	omega        float64
	obstacleFile string
	// Frame rate for live view
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "latticeflow <paramfile> <obstaclefile>",
		Short: "d2q9-bgk lattice Boltzmann flow simulator",
		Args:  cobra.ExactArgs(2),
		RunE:  runClassic,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".latticeflow", "data directory")
	rootCmd.PersistentFlags().IntVar(&threads, "threads", 0, "kernel workers (0 = all cpus, 1 = serial)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "print av velocity and total density per step")
	rootCmd.Flags().StringVar(&outState, "final-state", storage.FinalStateFile, "final state output file")
	rootCmd.Flags().StringVar(&outVels, "av-vels", storage.AvVelsFile, "average velocity output file")
	rootCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving a run directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation from config, preset or flags",
		RunE:  runConfigured,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "cells in x")
	runCmd.Flags().IntVar(&ny, "ny", config.DefaultNy, "cells in y")
	runCmd.Flags().IntVar(&maxIters, "iters", config.DefaultMaxIters, "timesteps")
	runCmd.Flags().IntVar(&reynoldsDim, "reynolds-dim", config.DefaultReynoldsDim, "characteristic dimension")
	runCmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "reference density")
	runCmd.Flags().Float64Var(&accel, "accel", config.DefaultAccel, "inlet forcing magnitude")
	runCmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "relaxation rate")
	runCmd.Flags().StringVar(&obstacleFile, "obstacles", "", "obstacle file path")
	runCmd.Flags().StringVar(&outState, "final-state", storage.FinalStateFile, "final state output file")
	runCmd.Flags().StringVar(&outVels, "av-vels", storage.AvVelsFile, "average velocity output file")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving a run directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's average velocity series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the kernel over grid sizes",
		RunE:  benchKernel,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "cells in x")
	liveCmd.Flags().IntVar(&ny, "ny", config.DefaultNy, "cells in y")
	liveCmd.Flags().IntVar(&maxIters, "iters", config.DefaultMaxIters, "timesteps")
	liveCmd.Flags().IntVar(&reynoldsDim, "reynolds-dim", config.DefaultReynoldsDim, "characteristic dimension")
	liveCmd.Flags().Float64Var(&density, "density", config.DefaultDensity, "reference density")
	liveCmd.Flags().Float64Var(&accel, "accel", config.DefaultAccel, "inlet forcing magnitude")
	liveCmd.Flags().Float64Var(&omega, "omega", config.DefaultOmega, "relaxation rate")
	liveCmd.Flags().StringVar(&obstacleFile, "obstacles", "", "obstacle file path")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-10s %dx%d, %d iters, omega=%.2f, accel=%.4f\n",
					name, p.Nx, p.Ny, p.MaxIters, p.Omega, p.Accel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, benchCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runClassic is the two-file invocation: parameter file and obstacle
// file, final state and average velocities written next to the caller.
func runClassic(cmd *cobra.Command, args []string) error {
	params, err := config.LoadParams(args[0])
	if err != nil {
		return err
	}

	mask, err := config.LoadObstacles(args[1], params.Nx, params.Ny)
	if err != nil {
		return err
	}

	return execute(params, mask)
}

func runConfigured(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	params := cfg.Params()

	mask, err := resolveMask(cfg, params)
	if err != nil {
		return err
	}

	return execute(params, mask)
}

// resolveConfig applies preset, then config file, then changed CLI
// flags, in increasing precedence.
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

	if cmd.Flags().Changed("nx") {
		cfg.Nx = nx
	}
	if cmd.Flags().Changed("ny") {
		cfg.Ny = ny
	}
	if cmd.Flags().Changed("iters") {
		cfg.MaxIters = maxIters
	}
	if cmd.Flags().Changed("reynolds-dim") {
		cfg.ReynoldsDim = reynoldsDim
	}
	if cmd.Flags().Changed("density") {
		cfg.Density = density
	}
	if cmd.Flags().Changed("accel") {
		cfg.Accel = accel
	}
	if cmd.Flags().Changed("omega") {
		cfg.Omega = omega
	}
	if cmd.Flags().Changed("obstacles") {
		cfg.ObstacleFile = obstacleFile
	}
	if cfg.Threads != 0 && !cmd.Flags().Changed("threads") {
		threads = cfg.Threads
	}

	return cfg, nil
}

func resolveMask(cfg *config.Config, params lattice.Params) (*lattice.Mask, error) {
	if cfg.ObstacleFile != "" {
		return config.LoadObstacles(cfg.ObstacleFile, params.Nx, params.Ny)
	}
	return lattice.NewMask(params.Nx, params.Ny)
}

type debugObserver struct{}

func (debugObserver) OnStep(g *lattice.Grid, step int, avVel float64) {
	fmt.Printf("==timestep: %d==\n", step)
	fmt.Printf("av velocity: %.12E\n", avVel)
	fmt.Printf("tot density: %.12E\n", lattice.TotalDensity(g))
}

func execute(params lattice.Params, mask *lattice.Mask) error {
	runner, err := sim.New(params, mask)
	if err != nil {
		return err
	}

	runner.AddMetric(metrics.NewMassDrift())
	runner.AddMetric(metrics.NewMomentum())
	runner.AddMetric(metrics.NewStability())

	if debugMode {
		runner.AddObserver(debugObserver{})
	}

	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{Threads: threads})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Println("==done==")
	fmt.Printf("Reynolds number:\t\t%.12E\n", result.Reynolds)
	fmt.Printf("Elapsed time:\t\t\t%.6f (s)\n", elapsed.Seconds())

	if err := storage.WriteFinalState(outState, result.Final, mask, params.Density); err != nil {
		return err
	}
	if err := storage.WriteAvVels(outVels, result.AvVels); err != nil {
		return err
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(params, elapsed, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6E\n", name, val)
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
	fmt.Fprintln(w, "ID\tGRID\tTIME\tITERS\tOMEGA\tREYNOLDS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%d\t%.3f\t%.4f\t%.3fs\n",
			run.ID,
			run.Nx, run.Ny,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.MaxIters,
			run.Omega,
			run.Reynolds,
			run.ElapsedSec,
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

	avVels, err := st.LoadAvVels(runID)
	if err != nil {
		return err
	}

	if len(avVels) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.Nx, meta.Ny)
	fmt.Printf("samples: %d\n\n", len(avVels))

	graph := asciigraph.Plot(avVels,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("average velocity vs step"),
	)
	fmt.Println(graph)

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	avVels, err := st.LoadAvVels(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, avVels)
}

func benchKernel(cmd *cobra.Command, args []string) error {
	sizes := []int{64, 128, 256}
	iters := 100

	fmt.Printf("benchmarking stream/collide kernel (%d iters per size)\n\n", iters)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tTHREADS\tTIME\tSTEPS/SEC\tMLUPS")

	for _, size := range sizes {
		params := lattice.Params{
			Nx: size, Ny: size, MaxIters: iters, ReynoldsDim: size,
			Density: config.DefaultDensity, Accel: config.DefaultAccel, Omega: config.DefaultOmega,
		}

		mask, err := lattice.NewMask(size, size)
		if err != nil {
			return err
		}

		runner, err := sim.New(params, mask)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := runner.Run(context.Background(), sim.Config{Threads: threads})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(result.Steps) / elapsed.Seconds()
		mlups := float64(size*size) * float64(result.Steps) / elapsed.Seconds() / 1e6

		fmt.Fprintf(w, "%dx%d\t%d\t%v\t%.1f\t%.1f\n",
			size, size, threads, elapsed.Round(time.Millisecond), stepsPerSec, mlups)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	mask, err := resolveMask(cfg, params)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(params, mask, threads, frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
