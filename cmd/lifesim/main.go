package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/session"
	"github.com/san-kum/lifesim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	width       int
	height      int
	seed        int64
	intervalMs  int
	randomize   bool
	theme       string
	save        bool
	verbose     bool
	// patterns / export
	showPattern string
	rotations   int
	cellSize    int
	fill        string
	outPath     string
	// bench / sweep
	workers  int
	numSeeds int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "lifesim"})

// main registers every command and launches the preset menu when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lifesim",
		Short:         "conway's game of life on a torus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset != "" || configFile != "" {
				return runTUI(cmd, args)
			}
			return viz.RunInteractive(viz.NewMenu(config.ListPresets(), "retro", startPreset))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lifesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addConfigFlags(rootCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal board",
		RunE:  runTUI,
	}
	addConfigFlags(tuiCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless for a number of generations",
		RunE:  runHeadless,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntP("generations", "n", 100, "generations to simulate")
	runCmd.Flags().BoolVar(&save, "save", false, "record the run in the data directory")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "print generations to the terminal in real time",
		RunE:  runWatch,
	}
	addConfigFlags(watchCmd)
	watchCmd.Flags().IntP("generations", "n", 0, "stop after n generations (0 runs until interrupted)")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in patterns",
		RunE:  listPatterns,
	}
	patternsCmd.Flags().StringVar(&showPattern, "show", "", "print one pattern")
	patternsCmd.Flags().IntVar(&rotations, "rotate", 0, "clockwise quarter turns before printing")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset boards",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the population of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the chart as svg")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.json)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [pattern]",
		Short: "render a pattern, or the board after n generations, as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addConfigFlags(exportSVGCmd)
	exportSVGCmd.Flags().IntP("generations", "n", 0, "generations to simulate before rendering the board")
	exportSVGCmd.Flags().IntVar(&rotations, "rotate", 0, "clockwise quarter turns applied to the pattern")
	exportSVGCmd.Flags().IntVar(&cellSize, "cell", 10, "pixels per cell")
	exportSVGCmd.Flags().StringVar(&fill, "fill", "#00ff00", "live cell colour")
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addConfigFlags(configCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare serial and parallel stepping",
		RunE:  benchStep,
	}
	benchCmd.Flags().Int("width", 512, "grid width")
	benchCmd.Flags().Int("height", 512, "grid height")
	benchCmd.Flags().IntP("generations", "n", 50, "generations per measurement")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 uses GOMAXPROCS)")
	benchCmd.Flags().Int64("seed", 42, "random seed")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "apply a scripted sequence of edits and steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run random boards over a range of seeds",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Int("width", 64, "grid width")
	sweepCmd.Flags().Int("height", 64, "grid height")
	sweepCmd.Flags().Int64("seed", 1, "first seed")
	sweepCmd.Flags().IntVar(&numSeeds, "seeds", 16, "number of seeds")
	sweepCmd.Flags().IntP("generations", "n", 500, "generations per board")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent boards (0 uses GOMAXPROCS)")

	rootCmd.AddCommand(tuiCmd, runCmd, watchCmd, patternsCmd, presetsCmd, listCmd, plotCmd,
		exportJSONCmd, exportSVGCmd, configCmd, benchCmd, scriptCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (yaml)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use preset board")
	cmd.Flags().IntVar(&width, "width", 0, "grid width in cells")
	cmd.Flags().IntVar(&height, "height", 0, "grid height in cells")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "milliseconds per generation")
	cmd.Flags().BoolVar(&randomize, "random", false, "start from a random fill")
	cmd.Flags().StringVar(&theme, "theme", "", "tui theme")
}

// loadConfig resolves the preset, then the config file, then any flags the
// user set explicitly. It returns the config and a display name.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "blank"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		if preset == "" {
			name = configFile
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("random") {
		cfg.Randomize = randomize
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func newSession(cfg *config.Config, opts ...session.Option) (*session.Session, error) {
	catalog, err := pattern.Builtin()
	if err != nil {
		return nil, err
	}
	return session.New(cfg, catalog, opts...)
}

// startPreset backs the preset menu. The TUI owns the terminal, so the
// session logs nowhere.
func startPreset(name string) (*session.Session, error) {
	cfg := config.DefaultConfig()
	if p := config.GetPreset(name); p != nil {
		cfg = p
	}
	return newSession(cfg)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	return viz.RunInteractive(viz.NewModel(sess, name, cfg.Theme))
}

// sizeFlags reads the board flags of commands that build their own grid
// instead of going through loadConfig.
func sizeFlags(cmd *cobra.Command) (w, h, n int, s int64) {
	flags := cmd.Flags()
	w, _ = flags.GetInt("width")
	h, _ = flags.GetInt("height")
	n, _ = flags.GetInt("generations")
	s, _ = flags.GetInt64("seed")
	return w, h, n, s
}
