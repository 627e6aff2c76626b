package metrics

import "github.com/san-kum/lifesim/internal/life"

// Metric accumulates a value over observed generations.
type Metric interface {
	Name() string
	Observe(gen int, g *life.Grid)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard metrics.
func Defaults() []Metric {
	return []Metric{
		NewPopulation(),
		NewPeakPopulation(),
		NewDensity(),
		NewChurn(),
		NewPeriod(DefaultPeriodWindow),
	}
}

// Snapshot collects the current value of every metric by name.
func Snapshot(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
