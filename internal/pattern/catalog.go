package pattern

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownPattern is returned when a catalog lookup misses.
var ErrUnknownPattern = errors.New("pattern: unknown pattern")

//go:embed rle/*.rle
var builtinFS embed.FS

var builtins = []struct {
	name string
	kind Kind
}{
	{"block", StillLife},
	{"beehive", StillLife},
	{"loaf", StillLife},
	{"boat", StillLife},
	{"blinker", Oscillator},
	{"toad", Oscillator},
	{"beacon", Oscillator},
	{"pulsar", Oscillator},
	{"pentadecathlon", Oscillator},
	{"glider", Spaceship},
	{"lwss", Spaceship},
	{"rpentomino", Methuselah},
	{"acorn", Methuselah},
	{"gosperglidergun", Gun},
}

// Entry is a snapshot of a catalog slot.
type Entry struct {
	Name    string
	Title   string
	Kind    Kind
	Pattern *Pattern
}

type slot struct {
	mu    sync.Mutex
	entry Entry
}

// Catalog is a fixed named set of patterns. Rotating an entry replaces its
// stored orientation for every later lookup.
type Catalog struct {
	mu    sync.RWMutex
	slots map[string]*slot
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{slots: make(map[string]*slot)}
}

// Builtin loads the embedded pattern set.
func Builtin() (*Catalog, error) {
	c := NewCatalog()
	for _, b := range builtins {
		data, err := builtinFS.ReadFile("rle/" + b.name + ".rle")
		if err != nil {
			return nil, err
		}
		d, err := ParseRLE(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", b.name, err)
		}
		if err := c.Add(Entry{Name: b.name, Title: d.Title, Kind: b.kind, Pattern: d.Pattern}); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a pattern under a new name.
func (c *Catalog) Add(e Entry) error {
	if e.Name == "" || e.Pattern == nil {
		return fmt.Errorf("pattern: entry needs a name and a pattern")
	}
	if e.Title == "" {
		e.Title = e.Name
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.slots[e.Name]; ok {
		return fmt.Errorf("pattern: %q already registered", e.Name)
	}
	c.slots[e.Name] = &slot{entry: e}
	c.order = append(c.order, e.Name)
	return nil
}

func (c *Catalog) slot(name string) (*slot, error) {
	c.mu.RLock()
	s, ok := c.slots[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
	return s, nil
}

// Get returns the current entry for name.
func (c *Catalog) Get(name string) (Entry, error) {
	s, err := c.slot(name)
	if err != nil {
		return Entry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry, nil
}

// Pattern returns the current orientation of name.
func (c *Catalog) Pattern(name string) (*Pattern, error) {
	e, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return e.Pattern, nil
}

// Rotate turns the named pattern clockwise and stores the result.
func (c *Catalog) Rotate(name string) (*Pattern, error) {
	s, err := c.slot(name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry.Pattern = s.entry.Pattern.Rotate()
	return s.entry.Pattern, nil
}

// RotateAll rotates every entry once.
func (c *Catalog) RotateAll() {
	for _, name := range c.Names() {
		_, _ = c.Rotate(name)
	}
}

// Names lists entries in registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Entries snapshots every entry in registration order.
func (c *Catalog) Entries() []Entry {
	names := c.Names()
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		if e, err := c.Get(name); err == nil {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
