package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/gui"
	"github.com/san-kum/ballsim/internal/logging"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/viz"
	"github.com/san-kum/ballsim/internal/world"
)

var (
	dataDir     string
	configFile  string
	preset      string
	seed        int64
	balls       int
	fps         int
	theme       string
	frames      int
	benchFrames int
	sweepRuns   int
	workers     int
	svgPath     string
	realtime    bool
	writePath   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ballsim",
		Short:        "balls bouncing in a circular arena",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".ballsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&balls, "balls", config.DefaultBalls, "initial number of balls")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames to simulate")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write a snapshot of the final frame")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace the run at the configured frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the energy series as svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of kinetic energy",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark world steps per second",
		Args:  cobra.NoArgs,
		RunE:  benchWorld,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per population")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run many seeds in parallel and aggregate metrics",
		Args:  cobra.NoArgs,
		RunE:  sweepSeeds,
	}
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 uses every cpu)")
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print or write the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "write the config to this path")

	rootCmd.AddCommand(tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, benchCmd, sweepCmd, presetsCmd, configCmd)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("balls") {
		cfg.Balls = balls
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newWorld(cfg *config.Config) (*world.World, error) {
	arena, err := cfg.Arena()
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	sp := world.NewSeededSpawner(uint64(cfg.Seed))
	sp.Radius = cfg.BallRadius
	sp.VelocityRange = cfg.VelocityRange
	return world.New(arena, sp, cfg.MaxSpeed)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.FromEnv()

	w, err := newWorld(cfg)
	if err != nil {
		return err
	}

	win, err := gui.Open(gui.Options{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		HUD:    true,
	})
	if err != nil {
		return err
	}

	log.Info("window opened", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed)
	loop := sim.New(w, win, cfg.Balls, log)
	return ignoreCanceled(loop.Run(cmd.Context()))
}

// runTUI runs the bubbletea program on this goroutine and the loop on
// another. Either side stopping stops the other.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.FromEnv()

	w, err := newWorld(cfg)
	if err != nil {
		return err
	}

	th, ok := viz.GetTheme(cfg.Theme)
	if !ok {
		log.Warn("unknown theme, using default", "theme", cfg.Theme, "available", viz.ThemeNames())
	}

	term := viz.NewTerminal(cfg.FPS)
	p := tea.NewProgram(term.Model(th), tea.WithAltScreen())
	term.Attach(p)

	loop := sim.New(w, term, cfg.Balls, log)
	loop.AddObserver(term)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()

	_, perr := p.Run()
	cancel()
	lerr := <-errc

	return errors.Join(perr, ignoreCanceled(lerr))
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
