package metrics

import (
	"hash/fnv"

	"github.com/san-kum/lifesim/internal/life"
)

// DefaultPeriodWindow bounds how many recent generations Period remembers.
const DefaultPeriodWindow = 64

type sample struct {
	gen  int
	hash uint64
	grid *life.Grid
}

// Period reports the cycle length of the current generation: 1 for a still
// life, 2 for a blinker, 0 while no earlier generation inside the window
// matches. Translating patterns such as gliders only repeat once they wrap
// around the torus.
type Period struct {
	name    string
	window  int
	hash    func(*life.Grid) uint64
	history []sample
	period  int
}

func NewPeriod(window int) *Period {
	if window <= 0 {
		window = DefaultPeriodWindow
	}
	return &Period{name: "period", window: window, hash: hashGrid, history: make([]sample, 0, window)}
}

func (p *Period) Name() string { return p.name }

func (p *Period) Observe(gen int, g *life.Grid) {
	h := p.hash(g)

	// a hash match is only a candidate; the cells decide
	p.period = 0
	for i := len(p.history) - 1; i >= 0; i-- {
		if p.history[i].hash == h && p.history[i].grid.Equal(g) {
			p.period = gen - p.history[i].gen
			break
		}
	}

	if len(p.history) == p.window {
		copy(p.history, p.history[1:])
		p.history = p.history[:p.window-1]
	}
	p.history = append(p.history, sample{gen: gen, hash: h, grid: g.Clone()})
}

func (p *Period) Value() float64 { return float64(p.period) }

func (p *Period) Reset() {
	clear(p.history)
	p.history = p.history[:0]
	p.period = 0
}

func hashGrid(g *life.Grid) uint64 {
	h := fnv.New64a()
	cells := g.Cells()
	buf := make([]byte, len(cells))
	for i, c := range cells {
		buf[i] = byte(c)
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}
