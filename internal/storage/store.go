package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile   = "metadata.json"
	populationFile = "population.csv"
)

var ErrUnknownRun = errors.New("storage: unknown run")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one headless run. Grid contents are not recorded.
type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Generations int                `json:"generations"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes meta and the population series under a fresh run directory and
// returns the run id. meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, population []int) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	meta.Timestamp = time.Now()

	runID, runDir, err := s.mkRunDir(name, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePopulation(filepath.Join(runDir, populationFile), population); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) mkRunDir(name string, ts time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", name, ts.Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePopulation(path string, population []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"generation", "population"}); err != nil {
		return err
	}
	for gen, pop := range population {
		if err := w.Write([]string{strconv.Itoa(gen), strconv.Itoa(pop)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadPopulation reads the population series of a run, indexed by generation.
func (s *Store) LoadPopulation(runID string) ([]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, populationFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []int{}, nil
	}

	population := make([]int, 0, len(records)-1)
	for _, record := range records[1:] {
		pop, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("run %s: population %q: %w", runID, record[1], err)
		}
		population = append(population, pop)
	}
	return population, nil
}

// ExportJSON writes a run's metadata and population series as one document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	pop, err := s.LoadPopulation(runID)
	if err != nil {
		return err
	}
	return writeJSON(path, struct {
		*RunMetadata
		Population []int `json:"population"`
	}{meta, pop})
}
