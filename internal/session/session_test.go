package session_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/pattern"
	"github.com/san-kum/lifesim/internal/session"
)

type recorder struct {
	mu    sync.Mutex
	gens  []int
	grids []*life.Grid
}

func (r *recorder) OnGeneration(gen int, g *life.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens = append(r.gens, gen)
	r.grids = append(r.grids, g)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.gens)
}

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 10, 8
	cfg.IntervalMs = 5
	cfg.Seed = 1
	return cfg
}

var _ = Describe("Session", func() {
	var (
		catalog *pattern.Catalog
		cfg     *config.Config
		rec     *recorder
		s       *session.Session
	)

	BeforeEach(func() {
		var err error
		catalog, err = pattern.Builtin()
		Expect(err).NotTo(HaveOccurred())
		cfg = smallConfig()
		rec = &recorder{}
	})

	JustBeforeEach(func() {
		var err error
		s, err = session.New(cfg, catalog, session.WithObserver(rec))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("starts stopped with an empty grid at generation 0", func() {
			Expect(s.State()).To(Equal(session.Stopped))
			Expect(s.Generation()).To(BeZero())
			g := s.Grid()
			Expect(g.Width()).To(Equal(10))
			Expect(g.Height()).To(Equal(8))
			Expect(g.Population()).To(BeZero())
			Expect(s.Interval()).To(Equal(5 * time.Millisecond))
		})

		Context("with placements", func() {
			BeforeEach(func() {
				cfg.Placements = []config.Placement{
					{Pattern: "blinker", Row: 2, Col: 2},
					{Pattern: "blinker", Row: 0, Col: 8, Rotations: 1},
				}
			})

			It("stamps each pattern, rotating a local copy", func() {
				g := s.Grid()
				Expect(g.Population()).To(Equal(6))
				Expect(g.Get(2, 3)).To(Equal(life.Alive))
				Expect(g.Get(2, 8)).To(Equal(life.Alive))

				blinker, err := catalog.Pattern("blinker")
				Expect(err).NotTo(HaveOccurred())
				Expect(blinker.Width()).To(Equal(3), "catalog orientation must not change")
			})
		})

		It("rejects unknown placements", func() {
			cfg.Placements = []config.Placement{{Pattern: "nope"}}
			_, err := session.New(cfg, catalog)
			Expect(err).To(MatchError(pattern.ErrUnknownPattern))
		})

		It("rejects invalid configuration", func() {
			cfg.IntervalMs = 0
			_, err := session.New(cfg, catalog)
			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})

		It("randomizes reproducibly from the configured seed", func() {
			cfg.Randomize = true
			cfg.Seed = 99
			a, err := session.New(cfg, catalog)
			Expect(err).NotTo(HaveOccurred())
			b, err := session.New(cfg, catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Grid().Equal(b.Grid())).To(BeTrue())
			Expect(a.Grid().Population()).To(BeNumerically(">", 0))
			Expect(a.Seed()).To(Equal(int64(99)))
		})

		It("resolves a zero seed to one that reproduces the board", func() {
			cfg.Randomize = true
			cfg.Seed = 0
			a, err := session.New(cfg, catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Seed()).NotTo(BeZero())

			cfg.Seed = a.Seed()
			b, err := session.New(cfg, catalog)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.Grid().Equal(a.Grid())).To(BeTrue())
		})
	})

	Describe("state machine", func() {
		It("moves Stopped -> Running on Play and back on Pause", func() {
			s.Play()
			Expect(s.State()).To(Equal(session.Running))
			s.Play()
			Expect(s.State()).To(Equal(session.Running))
			s.Pause()
			Expect(s.State()).To(Equal(session.Stopped))
			s.Pause()
			Expect(s.State()).To(Equal(session.Stopped))
		})

		It("toggles between the two states", func() {
			Expect(s.Toggle()).To(Equal(session.Running))
			Expect(s.Toggle()).To(Equal(session.Stopped))
		})

		It("only ticks while running", func() {
			Expect(s.Tick()).To(BeFalse())
			Expect(s.Generation()).To(BeZero())

			s.Play()
			Expect(s.Tick()).To(BeTrue())
			Expect(s.Tick()).To(BeTrue())
			Expect(s.Generation()).To(Equal(2))
		})

		It("single-steps exactly one generation and stops", func() {
			Expect(s.Place("blinker", 3, 3)).To(Succeed())
			s.Play()
			s.SingleStep()

			Expect(s.State()).To(Equal(session.Stopped))
			Expect(s.Generation()).To(Equal(1))
			g := s.Grid()
			Expect(g.Get(2, 4)).To(Equal(life.Alive))
			Expect(g.Get(3, 4)).To(Equal(life.Alive))
			Expect(g.Get(4, 4)).To(Equal(life.Alive))
			Expect(g.Population()).To(Equal(3))
		})

		It("clears from any state", func() {
			Expect(s.Place("block", 1, 1)).To(Succeed())
			s.Play()
			s.Tick()
			s.Clear()

			Expect(s.State()).To(Equal(session.Stopped))
			Expect(s.Generation()).To(BeZero())
			for _, c := range s.Grid().All() {
				Expect(c).To(Equal(life.Dead))
			}
			Expect(s.History()).To(Equal([]int{0}))
		})

		It("randomizes from any state", func() {
			s.Play()
			s.Randomize()
			Expect(s.State()).To(Equal(session.Stopped))
			Expect(s.Generation()).To(BeZero())
			Expect(s.Grid().Population()).To(BeNumerically(">", 0))
		})
	})

	Describe("seeded randomize", func() {
		It("reproduces the same grid for the same source seed", func() {
			a, err := session.New(cfg, catalog, session.WithRand(life.NewRand(5)))
			Expect(err).NotTo(HaveOccurred())
			b, err := session.New(cfg, catalog, session.WithRand(life.NewRand(5)))
			Expect(err).NotTo(HaveOccurred())

			a.Randomize()
			b.Randomize()
			Expect(a.Grid().Equal(b.Grid())).To(BeTrue())
			Expect(a.Seed()).To(BeZero())
		})
	})

	Describe("edits", func() {
		It("places the current catalog orientation with wrap", func() {
			Expect(s.Place("glider", 7, 9)).To(Succeed())
			g := s.Grid()
			Expect(g.Population()).To(Equal(5))
			// glider row 0 is ".O.", so (7, 10) wraps to (7, 0)
			Expect(g.Get(7, 0)).To(Equal(life.Alive))
		})

		It("uses a rotated orientation after Rotate", func() {
			_, err := s.Rotate("blinker")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Place("blinker", 0, 0)).To(Succeed())
			g := s.Grid()
			Expect(g.Get(0, 0)).To(Equal(life.Alive))
			Expect(g.Get(1, 0)).To(Equal(life.Alive))
			Expect(g.Get(2, 0)).To(Equal(life.Alive))
		})

		It("rotates every pattern with RotateAll", func() {
			s.RotateAll()
			p, err := catalog.Pattern("gosperglidergun")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Width()).To(Equal(9))
			Expect(p.Height()).To(Equal(36))
		})

		It("overwrites live cells with dead pattern cells", func() {
			Expect(s.Sketch(0, 0)).To(Succeed())
			Expect(s.Place("glider", 0, 0)).To(Succeed())
			Expect(s.Grid().Get(0, 0)).To(Equal(life.Dead))
		})

		It("reports unknown patterns", func() {
			Expect(s.Place("nope", 0, 0)).To(MatchError(pattern.ErrUnknownPattern))
			_, err := s.Rotate("nope")
			Expect(err).To(MatchError(pattern.ErrUnknownPattern))
		})

		It("sketches in bounds and rejects out of bounds", func() {
			Expect(s.Sketch(7, 9)).To(Succeed())
			Expect(s.Grid().Get(7, 9)).To(Equal(life.Alive))

			Expect(s.Sketch(8, 0)).To(MatchError(life.ErrOutOfBounds))
			Expect(s.Edit(-1, 0, life.Alive)).To(MatchError(life.ErrOutOfBounds))
			Expect(s.ToggleCell(0, 10)).To(MatchError(life.ErrOutOfBounds))
			Expect(s.Grid().Population()).To(Equal(1))
		})

		It("toggles and edits single cells", func() {
			Expect(s.ToggleCell(1, 1)).To(Succeed())
			Expect(s.Grid().Get(1, 1)).To(Equal(life.Alive))
			Expect(s.Edit(1, 1, life.Dead)).To(Succeed())
			Expect(s.Grid().Get(1, 1)).To(Equal(life.Dead))
		})

		It("keeps the generation counter across edits", func() {
			s.Advance(3)
			Expect(s.Sketch(0, 0)).To(Succeed())
			Expect(s.Generation()).To(Equal(3))
		})
	})

	Describe("observers and metrics", func() {
		It("hands observers a private snapshot", func() {
			Expect(s.Place("block", 2, 2)).To(Succeed())
			Expect(rec.count()).To(Equal(1))

			rec.grids[0].Clear()
			Expect(s.Grid().Population()).To(Equal(4))
		})

		It("notifies once per generation while running", func() {
			s.Play()
			s.Tick()
			s.Tick()
			Expect(rec.gens).To(Equal([]int{1, 2}))
		})

		It("detects a still life and an oscillator", func() {
			Expect(s.Place("block", 1, 1)).To(Succeed())
			s.Advance(2)
			Expect(s.Metrics()).To(HaveKeyWithValue("period", 1.0))
			Expect(s.Metrics()).To(HaveKeyWithValue("population", 4.0))

			s.Clear()
			Expect(s.Place("blinker", 3, 3)).To(Succeed())
			s.Advance(3)
			Expect(s.Metrics()).To(HaveKeyWithValue("period", 2.0))
		})

		It("records population history", func() {
			Expect(s.Place("blinker", 3, 3)).To(Succeed())
			s.Advance(2)
			Expect(s.History()).To(Equal([]int{3, 3, 3}))
		})

		It("bounds the history", func() {
			bounded, err := session.New(cfg, catalog, session.WithHistory(3))
			Expect(err).NotTo(HaveOccurred())
			bounded.Advance(1)
			bounded.Advance(1)
			bounded.Advance(1)
			bounded.Advance(1)
			Expect(bounded.History()).To(HaveLen(3))
		})
	})

	Describe("Run", func() {
		It("advances on the ticker while running and stops on cancel", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- s.Run(ctx) }()

			Consistently(s.Generation, 30*time.Millisecond, 5*time.Millisecond).Should(BeZero())

			s.Play()
			Eventually(s.Generation, time.Second, 5*time.Millisecond).Should(BeNumerically(">=", 3))

			s.Pause()
			paused := s.Generation()
			Consistently(s.Generation, 30*time.Millisecond, 5*time.Millisecond).Should(Equal(paused))

			cancel()
			Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
