package metrics

import (
	"testing"

	"github.com/san-kum/lifesim/internal/life"
)

func parse(t *testing.T, rows ...string) *life.Grid {
	t.Helper()
	g, err := life.Parse(rows...)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return g
}

func run(ms []Metric, g *life.Grid, gens int) *life.Grid {
	for _, m := range ms {
		m.Observe(0, g)
	}
	for gen := 1; gen <= gens; gen++ {
		g = life.Step(g)
		for _, m := range ms {
			m.Observe(gen, g)
		}
	}
	return g
}

func TestPopulationMetrics(t *testing.T) {
	g := parse(t,
		"......",
		".OOO..",
		"......",
		"......",
	)
	pop := NewPopulation()
	peak := NewPeakPopulation()
	density := NewDensity()

	run([]Metric{pop, peak, density}, g, 3)

	if pop.Value() != 3 {
		t.Errorf("expected population 3, got %f", pop.Value())
	}
	if peak.Value() != 3 {
		t.Errorf("expected peak 3, got %f", peak.Value())
	}
	if got, want := density.Value(), 3.0/24.0; got != want {
		t.Errorf("expected density %f, got %f", want, got)
	}

	pop.Reset()
	peak.Reset()
	density.Reset()
	if pop.Value() != 0 || peak.Value() != 0 || density.Value() != 0 {
		t.Error("reset should zero the metrics")
	}
}

func TestChurn(t *testing.T) {
	g := parse(t,
		".....",
		".....",
		".OOO.",
		".....",
		".....",
	)
	c := NewChurn()
	c.Observe(0, g)
	if c.Value() != 0 {
		t.Errorf("first observation should report 0, got %f", c.Value())
	}

	// blinker flips: two cells die, two are born
	c.Observe(1, life.Step(g))
	if c.Value() != 4 {
		t.Errorf("expected churn 4, got %f", c.Value())
	}
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		gens int
		want float64
	}{
		{"block", []string{
			"......",
			"..OO..",
			"..OO..",
			"......",
		}, 2, 1},
		{"blinker", []string{
			".....",
			".....",
			".OOO.",
			".....",
			".....",
		}, 4, 2},
		{"empty", []string{
			"....",
			"....",
		}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPeriod(DefaultPeriodWindow)
			run([]Metric{p}, parse(t, tt.rows...), tt.gens)
			if p.Value() != tt.want {
				t.Errorf("expected period %f, got %f", tt.want, p.Value())
			}
		})
	}
}

func TestPeriod_GliderBeforeWrap(t *testing.T) {
	g, _ := life.New(20, 20)
	glider := parse(t, ".O.", "..O", "OOO")
	glider.ForEachCell(func(row, col int) {
		_ = g.Set(row, col, glider.Get(row, col))
	})

	p := NewPeriod(DefaultPeriodWindow)
	run([]Metric{p}, g, 8)
	if p.Value() != 0 {
		t.Errorf("translating glider should not report a period yet, got %f", p.Value())
	}
}

func TestPeriod_WindowEvictsOldSamples(t *testing.T) {
	g := parse(t,
		".....",
		".....",
		".OOO.",
		".....",
		".....",
	)
	p := NewPeriod(1)
	run([]Metric{p}, g, 3)
	if p.Value() != 0 {
		t.Errorf("window of 1 cannot see a period-2 cycle, got %f", p.Value())
	}
}

func TestPeriod_HashCollision(t *testing.T) {
	p := NewPeriod(DefaultPeriodWindow)
	p.hash = func(*life.Grid) uint64 { return 7 }

	g, _ := life.New(12, 12)
	glider := parse(t, ".O.", "..O", "OOO")
	glider.ForEachCell(func(row, col int) {
		_ = g.Set(row, col, glider.Get(row, col))
	})
	run([]Metric{p}, g, 5)
	if p.Value() != 0 {
		t.Errorf("colliding hashes of different grids must not report a period, got %f", p.Value())
	}

	p.Reset()
	blinker := parse(t, ".....", ".....", ".OOO.", ".....", ".....")
	run([]Metric{p}, blinker, 4)
	if p.Value() != 2 {
		t.Errorf("expected period 2 under colliding hashes, got %f", p.Value())
	}
}

func TestPeriod_EditedGridNotAliased(t *testing.T) {
	g := parse(t, "....", ".OO.", ".OO.", "....")
	p := NewPeriod(DefaultPeriodWindow)
	p.Observe(0, g)

	_ = g.Set(0, 0, life.Alive)
	p.Observe(1, g)
	if p.Value() != 0 {
		t.Errorf("an in-place edit must not match the earlier sample, got %f", p.Value())
	}
}

func TestSnapshot(t *testing.T) {
	ms := Defaults()
	g := parse(t, "OO", "OO")
	run(ms, g, 0)

	snap := Snapshot(ms)
	for _, name := range []string{"population", "peak_population", "density", "churn", "period"} {
		if _, ok := snap[name]; !ok {
			t.Errorf("snapshot missing %s", name)
		}
	}
	if snap["density"] != 1 {
		t.Errorf("expected full density, got %f", snap["density"])
	}
}
