package session

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/place"
)

// DefaultHistory is the number of population samples kept for charts.
const DefaultHistory = 600

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Observer is notified with a snapshot after every generation or edit.
type Observer interface {
	OnGeneration(gen int, g *life.Grid)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(gen int, g *life.Grid)

func (f ObserverFunc) OnGeneration(gen int, g *life.Grid) { f(gen, g) }

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRand replaces the source used by Randomize. The session then has no
// seed of its own and Seed reports 0.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithMetrics replaces the default metric set.
func WithMetrics(ms ...metrics.Metric) Option {
	return func(s *Session) { s.metrics = ms }
}

func WithHistory(n int) Option {
	return func(s *Session) { s.historyCap = n }
}

type Session struct {
	mu         sync.Mutex
	grid       *life.Grid
	catalog    *pattern.Catalog
	state      State
	gen        int
	interval   time.Duration
	seed       int64
	rng        *rand.Rand
	logger     *log.Logger
	observers  []Observer
	metrics    []metrics.Metric
	history    []int
	historyCap int
}

// New builds a stopped session from cfg. Placements and the optional random
// fill are applied before the first observation.
func New(cfg *config.Config, catalog *pattern.Catalog, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, h := cfg.GridSize()
	grid, err := life.New(w, h)
	if err != nil {
		return nil, err
	}

	s := &Session{
		grid:       grid,
		catalog:    catalog,
		state:      Stopped,
		interval:   cfg.Interval(),
		logger:     log.New(io.Discard),
		metrics:    metrics.Defaults(),
		historyCap: DefaultHistory,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.seed = cfg.Seed
		if s.seed == 0 {
			s.seed = time.Now().UnixNano()
		}
		s.rng = life.NewRand(s.seed)
	}

	if cfg.Randomize {
		s.grid.Randomize(s.rng)
	}
	for _, p := range cfg.Placements {
		if err := s.placeRotated(p); err != nil {
			return nil, err
		}
	}
	s.resetObservations()
	s.logger.Debug("session created", "width", w, "height", h, "interval", s.interval, "placements", len(cfg.Placements))
	return s, nil
}

func (s *Session) placeRotated(p config.Placement) error {
	if s.catalog == nil {
		return fmt.Errorf("placement %q: %w", p.Pattern, pattern.ErrUnknownPattern)
	}
	pat, err := s.catalog.Pattern(p.Pattern)
	if err != nil {
		return err
	}
	for i := 0; i < ((p.Rotations%4)+4)%4; i++ {
		pat = pat.Rotate()
	}
	place.Merge(s.grid, pat, p.Row, p.Col)
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Session) Interval() time.Duration { return s.interval }

// Seed returns the seed of the random source, resolved from the config or
// the clock when the config leaves it at 0.
func (s *Session) Seed() int64 { return s.seed }

func (s *Session) Catalog() *pattern.Catalog { return s.catalog }

// Grid returns a copy of the current generation.
func (s *Session) Grid() *life.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Clone()
}

// Metrics snapshots every metric by name.
func (s *Session) Metrics() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return metrics.Snapshot(s.metrics)
}

// History returns recent population samples, oldest first.
func (s *Session) History() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		s.state = Running
		s.logger.Debug("play", "generation", s.gen)
	}
}

func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		s.state = Stopped
		s.logger.Debug("pause", "generation", s.gen)
	}
}

// Toggle switches between Running and Stopped.
func (s *Session) Toggle() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		s.state = Stopped
	} else {
		s.state = Running
	}
	s.logger.Debug("toggle", "state", s.state, "generation", s.gen)
	return s.state
}

// SingleStep stops the session and advances exactly one generation.
func (s *Session) SingleStep() {
	s.mu.Lock()
	s.state = Stopped
	s.advance()
	gen, snap := s.snapshot()
	s.mu.Unlock()
	s.notify(gen, snap)
}

// Tick advances one generation if the session is running. It is the timer
// callback and reports whether a step happened.
func (s *Session) Tick() bool {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return false
	}
	s.advance()
	gen, snap := s.snapshot()
	s.mu.Unlock()
	s.notify(gen, snap)
	return true
}

// Advance steps n generations regardless of state, notifying observers
// once at the end.
func (s *Session) Advance(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	for i := 0; i < n; i++ {
		s.advance()
	}
	gen, snap := s.snapshot()
	s.mu.Unlock()
	s.notify(gen, snap)
}

func (s *Session) Clear() {
	s.reset("clear", func(g *life.Grid) { g.Clear() })
}

func (s *Session) Randomize() {
	s.reset("randomize", func(g *life.Grid) { g.Randomize(s.rng) })
}

func (s *Session) reset(op string, fill func(*life.Grid)) {
	s.mu.Lock()
	s.state = Stopped
	fill(s.grid)
	s.gen = 0
	s.history = s.history[:0]
	s.resetObservations()
	s.logger.Debug(op, "population", s.grid.Population())
	gen, snap := s.snapshot()
	s.mu.Unlock()
	s.notify(gen, snap)
}

// Place stamps the current orientation of a catalog pattern at the given
// origin. The origin wraps.
func (s *Session) Place(name string, row, col int) error {
	if s.catalog == nil {
		return fmt.Errorf("place %q: %w", name, pattern.ErrUnknownPattern)
	}
	p, err := s.catalog.Pattern(name)
	if err != nil {
		return err
	}
	return s.edit(func(g *life.Grid) error {
		place.Merge(g, p, row, col)
		s.logger.Debug("place", "pattern", name, "row", row, "col", col)
		return nil
	})
}

// Sketch brings a cell to life. Coordinates are not wrapped.
func (s *Session) Sketch(row, col int) error {
	return s.edit(func(g *life.Grid) error { return place.Sketch(g, row, col) })
}

// ToggleCell flips a cell. Coordinates are not wrapped.
func (s *Session) ToggleCell(row, col int) error {
	return s.edit(func(g *life.Grid) error { return place.Toggle(g, row, col) })
}

// Edit writes one cell. Coordinates are not wrapped.
func (s *Session) Edit(row, col int, c life.Cell) error {
	return s.edit(func(g *life.Grid) error { return place.Edit(g, row, col, c) })
}

func (s *Session) edit(fn func(*life.Grid) error) error {
	s.mu.Lock()
	if err := fn(s.grid); err != nil {
		s.mu.Unlock()
		return err
	}
	// an edit breaks the cycle history the period metric relies on
	if n := len(s.history); n > 0 {
		s.history = s.history[:n-1]
	}
	s.resetObservations()
	gen, snap := s.snapshot()
	s.mu.Unlock()
	s.notify(gen, snap)
	return nil
}

// Rotate turns a catalog pattern clockwise for all later placements.
func (s *Session) Rotate(name string) (*pattern.Pattern, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("rotate %q: %w", name, pattern.ErrUnknownPattern)
	}
	return s.catalog.Rotate(name)
}

// RotateAll turns every catalog pattern clockwise.
func (s *Session) RotateAll() {
	if s.catalog != nil {
		s.catalog.RotateAll()
	}
}

// Run calls Tick every interval until ctx is done. A step in progress
// completes before cancellation is observed.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("run loop started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("run loop stopped", "generation", s.Generation(), "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// advance replaces the grid with the next generation. Caller holds mu.
func (s *Session) advance() {
	s.grid = life.Step(s.grid)
	s.gen++
	s.observe()
}

// resetObservations restarts metrics from the current grid. Caller holds mu.
func (s *Session) resetObservations() {
	for _, m := range s.metrics {
		m.Reset()
	}
	s.observe()
}

func (s *Session) observe() {
	for _, m := range s.metrics {
		m.Observe(s.gen, s.grid)
	}
	s.history = append(s.history, s.grid.Population())
	if s.historyCap > 0 && len(s.history) > s.historyCap {
		s.history = s.history[len(s.history)-s.historyCap:]
	}
}

func (s *Session) snapshot() (int, *life.Grid) {
	if len(s.observers) == 0 {
		return s.gen, nil
	}
	return s.gen, s.grid.Clone()
}

func (s *Session) notify(gen int, g *life.Grid) {
	if g == nil {
		return
	}
	for _, o := range s.observers {
		o.OnGeneration(gen, g)
	}
}
