package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/session"
)

var ErrUnknownOp = errors.New("automation: unknown step op")

// Scenario is a scripted sequence of session operations applied to one board.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Board       *config.Config `yaml:"board"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single operation. Which fields apply depends on Op:
//
//	place       pattern, row, col
//	sketch      row, col
//	toggle      row, col
//	rotate      pattern
//	rotate_all
//	advance     generations
//	clear
//	randomize
type ScenarioStep struct {
	Op          string `yaml:"op"`
	Pattern     string `yaml:"pattern,omitempty"`
	Row         int    `yaml:"row,omitempty"`
	Col         int    `yaml:"col,omitempty"`
	Generations int    `yaml:"generations,omitempty"`
}

// StepResult records the board after a step.
type StepResult struct {
	Op         string
	Generation int
	Population int
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// BoardConfig returns the scenario's starting config, or the default when none is given.
func (s *Scenario) BoardConfig() *config.Config {
	if s.Board == nil {
		return config.DefaultConfig()
	}
	cfg := config.DefaultConfig()
	b := *s.Board
	if b.SurfaceWidth == 0 {
		b.SurfaceWidth = cfg.SurfaceWidth
	}
	if b.SurfaceHeight == 0 {
		b.SurfaceHeight = cfg.SurfaceHeight
	}
	if b.CellSize == 0 {
		b.CellSize = cfg.CellSize
	}
	if b.IntervalMs == 0 {
		b.IntervalMs = cfg.IntervalMs
	}
	return &b
}

// RunScenario applies every step in order, stopping at the first failure or
// when ctx is done.
func RunScenario(ctx context.Context, scenario *Scenario, sess *session.Session) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if err := apply(sess, step); err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		results = append(results, StepResult{
			Op:         step.Op,
			Generation: sess.Generation(),
			Population: sess.Grid().Population(),
		})
	}
	return results, nil
}

func apply(sess *session.Session, step ScenarioStep) error {
	switch step.Op {
	case "place":
		return sess.Place(step.Pattern, step.Row, step.Col)
	case "sketch":
		return sess.Sketch(step.Row, step.Col)
	case "toggle":
		return sess.ToggleCell(step.Row, step.Col)
	case "rotate":
		_, err := sess.Rotate(step.Pattern)
		return err
	case "rotate_all":
		sess.RotateAll()
	case "advance":
		sess.Advance(step.Generations)
	case "clear":
		sess.Clear()
	case "randomize":
		sess.Randomize()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	return nil
}

// SeedSweep runs one random board per seed and reports how each settles.
// Every seed, zero included, fills the board deterministically.
type SeedSweep struct {
	Width       int
	Height      int
	SeedStart   int64
	NumSeeds    int
	Generations int
	Workers     int
}

type SweepResult struct {
	Seed       int64
	Population int
	Peak       int
	Period     int
}

// RunSweep runs every seed concurrently on at most Workers goroutines.
// Results are ordered by seed.
func RunSweep(ctx context.Context, sweep *SeedSweep) ([]SweepResult, error) {
	if sweep.NumSeeds <= 0 {
		return nil, fmt.Errorf("sweep needs at least one seed, got %d", sweep.NumSeeds)
	}
	workers := sweep.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]SweepResult, sweep.NumSeeds)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range sweep.NumSeeds {
		seed := sweep.SeedStart + int64(i)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := config.DefaultConfig()
			cfg.Width, cfg.Height = sweep.Width, sweep.Height
			cfg.Seed, cfg.Randomize = seed, true

			sess, err := session.New(cfg, pattern.NewCatalog(), session.WithRand(life.NewRand(seed)))
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			sess.Advance(sweep.Generations)

			m := sess.Metrics()
			results[i] = SweepResult{
				Seed:       seed,
				Population: int(m["population"]),
				Peak:       int(m["peak_population"]),
				Period:     int(m["period"]),
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
