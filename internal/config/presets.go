package config

import "sort"

var Presets = map[string]*Config{
	"soup": {
		SurfaceWidth: DefaultSurfaceWidth, SurfaceHeight: DefaultSurfaceHeight, CellSize: DefaultCellSize,
		IntervalMs: DefaultIntervalMs, Seed: 42, Randomize: true, Theme: "retro",
	},
	"gliders": {
		Width: 48, Height: 32, CellSize: DefaultCellSize, IntervalMs: 80, Theme: "ocean",
		Placements: []Placement{
			{Pattern: "glider", Row: 2, Col: 2},
			{Pattern: "glider", Row: 2, Col: 20, Rotations: 1},
			{Pattern: "glider", Row: 20, Col: 20, Rotations: 2},
			{Pattern: "glider", Row: 20, Col: 2, Rotations: 3},
			{Pattern: "lwss", Row: 14, Col: 30},
		},
	},
	"oscillators": {
		Width: 48, Height: 24, CellSize: DefaultCellSize, IntervalMs: 150, Theme: "minimal",
		Placements: []Placement{
			{Pattern: "blinker", Row: 3, Col: 3},
			{Pattern: "toad", Row: 3, Col: 10},
			{Pattern: "beacon", Row: 2, Col: 18},
			{Pattern: "pulsar", Row: 6, Col: 26},
			{Pattern: "pentadecathlon", Row: 12, Col: 5, Rotations: 1},
		},
	},
	"gun": {
		Width: 64, Height: 40, CellSize: DefaultCellSize, IntervalMs: 60, Theme: "sunset",
		Placements: []Placement{
			{Pattern: "gosperglidergun", Row: 2, Col: 2},
			{Pattern: "block", Row: 36, Col: 58},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Placements = append([]Placement(nil), p.Placements...)
	return &cfg
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
