package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/series"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "populations.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Kinds of stored runs.
const (
	KindGrid  = "grid"
	KindLotka = "lotka"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	Seed      int64          `json:"seed"`
	Config    config.Config  `json:"config"`
	Outcome   string         `json:"outcome"`
	Steps     int            `json:"steps"`
	Summary   series.Summary `json:"summary"`
}

// Save writes a run and returns its id.
func (s *Store) Save(kind string, cfg config.Config, outcome string, points []series.Point) (string, error) {
	runID := fmt.Sprintf("%s_%s", kind, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kind:      kind,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Config:    cfg,
		Outcome:   outcome,
		Summary:   series.Summarize(points),
	}
	if n := len(points); n > 0 {
		meta.Steps = int(points[n-1].T)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), points); err != nil {
		return "", err
	}
	return runID, nil
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

func writeSeries(path string, points []series.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"t", "predators", "prey"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.T, 'f', -1, 64),
			strconv.FormatFloat(p.Predators, 'f', -1, 64),
			strconv.FormatFloat(p.Prey, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs, newest first. Unreadable run directories are
// skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]series.Point, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []series.Point{}, nil
	}

	points := make([]series.Point, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [3]float64
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
			vals[j] = v
		}
		points = append(points, series.Point{T: vals[0], Predators: vals[1], Prey: vals[2]})
	}
	return points, nil
}
