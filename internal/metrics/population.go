package metrics

import "github.com/san-kum/lifesim/internal/life"

type Population struct {
	name  string
	count int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(gen int, g *life.Grid) {
	p.count = g.Population()
}

func (p *Population) Value() float64 { return float64(p.count) }

func (p *Population) Reset() { p.count = 0 }

type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) Observe(gen int, g *life.Grid) {
	p.peak = max(p.peak, g.Population())
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }

func (p *PeakPopulation) Reset() { p.peak = 0 }

// Density is the alive fraction of the most recent generation.
type Density struct {
	name    string
	density float64
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(gen int, g *life.Grid) {
	area := g.Width() * g.Height()
	d.density = float64(g.Population()) / float64(area)
}

func (d *Density) Value() float64 { return d.density }

func (d *Density) Reset() { d.density = 0 }

// Churn counts cells whose state changed since the previous observation.
type Churn struct {
	name    string
	prev    []life.Cell
	changed int
}

func NewChurn() *Churn {
	return &Churn{name: "churn"}
}

func (c *Churn) Name() string { return c.name }

func (c *Churn) Observe(gen int, g *life.Grid) {
	cells := g.Cells()
	if len(c.prev) != len(cells) {
		c.prev = make([]life.Cell, len(cells))
		copy(c.prev, cells)
		c.changed = 0
		return
	}
	c.changed = 0
	for i, v := range cells {
		if c.prev[i] != v {
			c.changed++
		}
	}
	copy(c.prev, cells)
}

func (c *Churn) Value() float64 { return float64(c.changed) }

func (c *Churn) Reset() {
	c.prev = nil
	c.changed = 0
}
