package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSurfaceWidth  = 400
	DefaultSurfaceHeight = 200
	DefaultCellSize      = 5
	DefaultIntervalMs    = 100
	DefaultTheme         = "retro"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Width         int         `yaml:"width,omitempty"`
	Height        int         `yaml:"height,omitempty"`
	SurfaceWidth  int         `yaml:"surface_width"`
	SurfaceHeight int         `yaml:"surface_height"`
	CellSize      int         `yaml:"cell_size"`
	IntervalMs    int         `yaml:"interval_ms"`
	Seed          int64       `yaml:"seed,omitempty"`
	Randomize     bool        `yaml:"randomize,omitempty"`
	Theme         string      `yaml:"theme,omitempty"`
	Placements    []Placement `yaml:"placements,omitempty"`
}

// Placement stamps a catalog pattern at startup.
type Placement struct {
	Pattern   string `yaml:"pattern"`
	Row       int    `yaml:"row"`
	Col       int    `yaml:"col"`
	Rotations int    `yaml:"rotations,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		SurfaceWidth:  DefaultSurfaceWidth,
		SurfaceHeight: DefaultSurfaceHeight,
		CellSize:      DefaultCellSize,
		IntervalMs:    DefaultIntervalMs,
		Theme:         DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GridSize returns the grid dimensions in cells. Explicit width and height
// win; otherwise the surface is divided by the cell size.
func (c *Config) GridSize() (width, height int) {
	width, height = c.Width, c.Height
	if c.CellSize > 0 {
		if width == 0 {
			width = c.SurfaceWidth / c.CellSize
		}
		if height == 0 {
			height = c.SurfaceHeight / c.CellSize
		}
	}
	return width, height
}

// Interval is the delay between generations while running.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c *Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	}
	if c.IntervalMs <= 0 {
		return fmt.Errorf("%w: interval_ms must be positive, got %d", ErrInvalidConfig, c.IntervalMs)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative grid size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	w, h := c.GridSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: grid would be %dx%d cells", ErrInvalidConfig, w, h)
	}
	for i, p := range c.Placements {
		if p.Pattern == "" {
			return fmt.Errorf("%w: placement %d has no pattern", ErrInvalidConfig, i)
		}
	}
	return nil
}
