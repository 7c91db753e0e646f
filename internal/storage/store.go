package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ruinwalk/internal/chain"
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Goal      int       `json:"goal"`
	Start     int       `json:"start"`
	WinProb   float64   `json:"win_prob"`
	Steps     int       `json:"steps"`
	RuinMass  float64   `json:"ruin_mass"`
	GoalMass  float64   `json:"goal_mass"`
}

// Trace accumulates distribution snapshots as the session advances.
// It satisfies walk.Observer, so a Trace can be attached directly to a
// session and handed to Save afterwards.
type Trace struct {
	Steps []int
	Dists []chain.Distribution
}

func (t *Trace) OnState(step int, dist chain.Distribution) {
	t.Steps = append(t.Steps, step)
	t.Dists = append(t.Dists, dist)
}

// Save writes one run directory: metadata.json plus distributions.csv
// with a row per recorded snapshot.
func (s *Store) Save(goal, start int, winProb float64, trace *Trace) (string, error) {
	runID := fmt.Sprintf("walk_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Goal:      goal,
		Start:     start,
		WinProb:   winProb,
	}
	if n := len(trace.Steps); n > 0 {
		last := trace.Dists[n-1]
		meta.Steps = trace.Steps[n-1]
		meta.RuinMass = last[0]
		meta.GoalMass = last[len(last)-1]
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "distributions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(trace.Dists) == 0 {
		return runID, nil
	}

	header := []string{"step"}
	for i := range trace.Dists[0] {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, d := range trace.Dists {
		row := []string{strconv.Itoa(trace.Steps[i])}
		for _, v := range d {
			row = append(row, strconv.FormatFloat(v, 'f', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, fmt.Errorf("load run %s: %w", runID, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("load run %s: %w", runID, err)
	}
	return meta, nil
}

// LoadTrace reads the recorded snapshots back.
func (s *Store) LoadTrace(runID string) (*Trace, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "distributions.csv"))
	if err != nil {
		return nil, fmt.Errorf("load trace %s: %w", runID, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load trace %s: %w", runID, err)
	}

	trace := &Trace{}
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("load trace %s row %d: %w", runID, i, err)
		}
		dist := make(chain.Distribution, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("load trace %s row %d: %w", runID, i, err)
			}
			dist[j] = v
		}
		trace.Steps = append(trace.Steps, step)
		trace.Dists = append(trace.Dists, dist)
	}
	return trace, nil
}
