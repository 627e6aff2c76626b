package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/automation"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/session"
	"github.com/san-kum/lifesim/internal/storage"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	generations, _ := cmd.Flags().GetInt("generations")
	if generations < 0 {
		return fmt.Errorf("generations must be non-negative, got %d", generations)
	}

	sess, err := newSession(cfg, session.WithLogger(logger), session.WithHistory(0))
	if err != nil {
		return err
	}

	start := time.Now()
	sess.Advance(generations)
	elapsed := time.Since(start)
	logger.Debug("run finished", "generations", generations, "elapsed", elapsed)

	g := sess.Grid()
	hist := sess.History()
	metrics := sess.Metrics()

	fmt.Printf("board: %s (%dx%d)\n", name, g.Width(), g.Height())
	fmt.Printf("generations: %d in %s\n\n", sess.Generation(), elapsed.Round(time.Microsecond))
	if len(hist) > 1 {
		fmt.Println(asciigraph.Plot(toFloats(hist),
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("population")))
		fmt.Println()
	}
	printMetrics(metrics)

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:      preset,
		Seed:        sess.Seed(),
		Width:       g.Width(),
		Height:      g.Height(),
		Generations: sess.Generation(),
		Metrics:     metrics,
	}, hist)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range names {
		fmt.Fprintf(w, "%s\t%.4g\n", k, metrics[k])
	}
	w.Flush()
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	generations, _ := cmd.Flags().GetInt("generations")

	frame := session.ObserverFunc(func(gen int, g *life.Grid) {
		fmt.Print("\033[H\033[2J")
		fmt.Printf("%s  generation %d  population %d\n\n%s", name, gen, g.Population(), g)
		if generations > 0 && gen >= generations {
			cancel()
		}
	})

	sess, err := newSession(cfg, session.WithLogger(logger), session.WithObserver(frame))
	if err != nil {
		return err
	}
	sess.Play()

	err = sess.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func listPatterns(cmd *cobra.Command, args []string) error {
	catalog, err := pattern.Builtin()
	if err != nil {
		return err
	}

	if showPattern != "" {
		e, err := catalog.Get(showPattern)
		if err != nil {
			return err
		}
		p := e.Pattern
		for range ((rotations % 4) + 4) % 4 {
			p = p.Rotate()
		}
		fmt.Printf("%s (%s, %dx%d, %d cells)\n\n%s", e.Title, e.Kind, p.Width(), p.Height(), p.Population(), p)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tKIND\tSIZE\tCELLS")
	for _, e := range catalog.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\n",
			e.Name, e.Title, e.Kind, e.Pattern.Width(), e.Pattern.Height(), e.Pattern.Population())
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tINTERVAL\tSEED\tPLACEMENTS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		gw, gh := cfg.GridSize()
		seedStr := "-"
		if cfg.Randomize {
			seedStr = fmt.Sprintf("%d", cfg.Seed)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%d\n", name, gw, gh, cfg.Interval(), seedStr, len(cfg.Placements))
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tGENS\tSEED\tPOPULATION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Generations,
			run.Seed,
			run.Metrics["population"],
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
	pop, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	if len(pop) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("board: %dx%d, %d generations\n\n", meta.Width, meta.Height, meta.Generations)
	fmt.Println(asciigraph.Plot(toFloats(pop),
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption("population vs generation")))

	if outPath == "" {
		return nil
	}
	if err := os.WriteFile(outPath, []byte(export.PopulationSVG(pop, 640, 240, "#00ff88")), 0644); err != nil {
		return err
	}
	logger.Info("wrote chart", "path", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	path := outPath
	if path == "" {
		path = runID + ".json"
	}
	if err := storage.New(dataDir).ExportJSON(runID, path); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", runID, path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	var svg string
	if len(args) == 1 {
		catalog, err := pattern.Builtin()
		if err != nil {
			return err
		}
		p, err := catalog.Pattern(args[0])
		if err != nil {
			return err
		}
		for range ((rotations % 4) + 4) % 4 {
			p = p.Rotate()
		}
		svg = export.PatternSVG(p, cellSize, fill)
	} else {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sess, err := newSession(cfg, session.WithLogger(logger))
		if err != nil {
			return err
		}
		generations, _ := cmd.Flags().GetInt("generations")
		sess.Advance(generations)
		svg = export.GridSVG(sess.Grid(), cellSize, fill)
	}

	if outPath == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote svg", "path", outPath)
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	logger.Info("wrote config", "path", args[0])
	return nil
}

type benchResult struct {
	name    string
	workers int
	elapsed time.Duration
	final   *life.Grid
}

// benchStep times serial and parallel stepping on identical copies of one
// random board and checks both end in the same generation.
func benchStep(cmd *cobra.Command, args []string) error {
	width, height, benchGens, seed := sizeFlags(cmd)
	g, err := life.New(width, height)
	if err != nil {
		return err
	}
	g.Randomize(life.NewRand(seed))

	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	results := []*benchResult{
		{name: "serial", workers: 1},
		{name: "parallel", workers: n},
	}

	fmt.Printf("benchmarking %dx%d, %d generations\n\n", width, height, benchGens)

	for _, r := range results {
		cur := g.Clone()
		t0 := time.Now()
		for range benchGens {
			if r.workers == 1 {
				cur = life.Step(cur)
			} else {
				cur = life.StepParallel(cur, r.workers)
			}
		}
		r.elapsed = time.Since(t0)
		r.final = cur
		logger.Debug("bench", "mode", r.name, "elapsed", r.elapsed)
	}
	if !results[0].final.Equal(results[1].final) {
		return errors.New("serial and parallel stepping diverged")
	}

	cells := float64(width*height) * float64(benchGens)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tWORKERS\tTIME\tGENS/SEC\tCELLS/SEC")
	for _, r := range results {
		secs := r.elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1f\t%.3g\n",
			r.name, r.workers, r.elapsed.Round(time.Microsecond),
			float64(benchGens)/secs, cells/secs)
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	sess, err := newSession(sc.BoardConfig(), session.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, sess)

	if sc.Name != "" {
		fmt.Printf("%s\n", sc.Name)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOP\tGENERATION\tPOPULATION")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", i+1, r.Op, r.Generation, r.Population)
	}
	w.Flush()
	if err != nil {
		return err
	}

	fmt.Printf("\n%s", sess.Grid())
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	width, height, gens, seed := sizeFlags(cmd)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, err := automation.RunSweep(ctx, &automation.SeedSweep{
		Width:       width,
		Height:      height,
		SeedStart:   seed,
		NumSeeds:    numSeeds,
		Generations: gens,
		Workers:     workers,
	})
	if err != nil {
		return err
	}
	logger.Debug("sweep finished", "seeds", numSeeds, "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tPOPULATION\tPEAK\tPERIOD")
	for _, r := range results {
		period := "-"
		if r.Period > 0 {
			period = fmt.Sprintf("%d", r.Period)
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", r.Seed, r.Population, r.Peak, period)
	}
	return w.Flush()
}
