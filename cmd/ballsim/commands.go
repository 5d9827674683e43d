package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/analysis"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/logging"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	log := logging.FromEnv()
	out := cmd.OutOrStdout()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w, err := newWorld(cfg)
	if err != nil {
		return err
	}

	fe := sim.NewHeadless(cfg.Frames)
	if realtime {
		fe.WithLimiter(sim.NewLimiter(cfg.FPS))
	}

	loop := sim.New(w, fe, cfg.Balls, log)
	rec := metrics.NewRecorder(0)
	loop.AddObserver(rec)
	ms := metrics.Defaults(w.Arena())
	for _, m := range ms {
		loop.AddObserver(m)
	}

	fmt.Fprintf(out, "running %d balls for %d frames (seed %d)...\n", cfg.Balls, cfg.Frames, cfg.Seed)
	start := time.Now()
	if err := ignoreCanceled(loop.Run(cmd.Context())); err != nil {
		return err
	}
	elapsed := time.Since(start)

	summary := metrics.Summary(ms)
	meta := storage.RunMetadata{
		Preset:     preset,
		Seed:       cfg.Seed,
		Balls:      cfg.Balls,
		Frames:     loop.Frame(),
		FPS:        cfg.FPS,
		BallRadius: cfg.BallRadius,
		MaxSpeed:   cfg.MaxSpeed,
		Arena:      storage.ArenaMeta(w.Arena()),
		Metrics:    summary,
	}
	runID, err := st.Save(meta, rec.Samples(), w.Bodies())
	if err != nil {
		return err
	}

	if svgPath != "" {
		svg := export.SnapshotSVG(w.Arena(), w.Bodies(), cfg.Width, cfg.Height)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "frames: %d\n", loop.Frame())
	fmt.Fprintln(out, "\nmetrics:")
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, summary[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tSEED\tBALLS\tFRAMES\tENERGY")
	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			p,
			run.Seed,
			run.Balls,
			run.Frames,
			run.Metrics["kinetic_energy"],
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []metrics.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func series(samples []metrics.Sample, field func(metrics.Sample) float64) []float64 {
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = field(s)
	}
	return data
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "balls: %d\n", meta.Balls)
	fmt.Fprintf(out, "samples: %d\n\n", len(samples))

	plots := []struct {
		caption string
		field   func(metrics.Sample) float64
	}{
		{"kinetic energy", metrics.Energy},
		{"contacts per frame", metrics.Contacts},
		{"mean speed", metrics.Speed},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(series(samples, p.field),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	if svgPath != "" {
		svg := export.SeriesToSVG(series(samples, metrics.Energy), 800, 300, "#00ff88")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", svgPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	rate := float64(meta.FPS)
	if rate <= 0 {
		rate = config.DefaultFPS
	}
	ps, err := analysis.PowerSpectrum(series(samples, metrics.Energy), rate)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "samples: %d at %.0f fps\n\n", len(samples), rate)

	plotData := ps.Power[:max(2, len(ps.Power)/4)]
	fmt.Fprintln(out, asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (kinetic energy)"),
	))
	fmt.Fprintln(out)

	freq, _ := ps.Dominant()
	fmt.Fprintf(out, "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.3f s\n", 1.0/freq)
	}

	scatter := analysis.NewScatter("mean speed", series(samples, metrics.Speed), "contacts", series(samples, metrics.Contacts))
	fmt.Fprintf(out, "\n%s vs %s:\n", scatter.YLabel, scatter.XLabel)
	fmt.Fprint(out, analysis.ScatterToASCII(scatter, 60, 12))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteSamplesCSV(cmd.OutOrStdout(), samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	bodies, err := storage.New(dataDir).LoadBodies(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), *meta, samples, bodies)
}

func benchWorld(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "benchmarking %d frames per population\n\n", benchFrames)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALLS\tFRAMES\tTIME\tFRAMES/SEC\tCONTACTS")

	for _, n := range []int{5, 20, 50, 100} {
		world, err := newWorld(cfg)
		if err != nil {
			return err
		}
		if err := world.SetPopulation(n); err != nil {
			return err
		}

		contacts := 0
		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			contacts += world.Step().Contacts
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\n",
			n, benchFrames, elapsed, float64(benchFrames)/elapsed.Seconds(), contacts)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBALLS\tRADIUS\tMAX SPEED\tDISPLAY")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%dx%d\n",
			name, cfg.Balls, cfg.BallRadius, cfg.MaxSpeed, cfg.Width, cfg.Height)
	}
	return w.Flush()
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", writePath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func sweepSeeds(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Frames <= 0 || sweepRuns <= 0 {
		return fmt.Errorf("frames and runs must be positive")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	out := cmd.OutOrStdout()

	run := func(ctx context.Context, s int64) (map[string]float64, error) {
		c := *cfg
		c.Seed = s
		w, err := newWorld(&c)
		if err != nil {
			return nil, err
		}
		loop := sim.New(w, sim.NewHeadless(c.Frames), c.Balls, nil)
		ms := metrics.Defaults(w.Arena())
		for _, m := range ms {
			loop.AddObserver(m)
		}
		if err := loop.Run(ctx); err != nil {
			return nil, err
		}
		return metrics.Summary(ms), nil
	}

	fmt.Fprintf(out, "sweeping %d seeds from %d, %d balls, %d frames each\n\n", sweepRuns, cfg.Seed, cfg.Balls, cfg.Frames)
	results, err := sim.NewEnsemble(sweepRuns, cfg.Seed, workers).Run(cmd.Context(), run)
	if err != nil {
		return err
	}

	agg := sim.Summarize(results)
	names := make([]string, 0, len(agg))
	for name := range agg {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX")
	for _, name := range names {
		a := agg[name]
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", name, a.Mean, a.Min, a.Max)
	}
	return w.Flush()
}
