package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Anthony-Giacinto/pendulum/internal/sim"
)

// Store persists recorded runs on disk: one directory per run holding a
// metadata.json and a series.csv with the sampled (t, theta, omega)
// trajectory.
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Theta     float64            `json:"theta"`
	Omega     float64            `json:"omega"`
	Dt        float64            `json:"dt"`
	RodLength float64            `json:"rod_length"`
	Damping   float64            `json:"dampening_coeff"`
	Gravity   float64            `json:"acceleration_from_gravity"`
	TimeLimit float64            `json:"time_limit,omitempty"`
	Repeat    bool               `json:"repeat"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run and returns its generated id.
func (s *Store) Save(meta RunMetadata, series *sim.Series) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = len(series.Times)

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

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSeriesCSV(csvFile, series); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteSeriesCSV writes the trajectory in the stored CSV layout.
func WriteSeriesCSV(w io.Writer, series *sim.Series) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"time", "theta", "omega"}); err != nil {
		return err
	}
	for i := range series.Times {
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Thetas[i], 'f', 6, 64),
			strconv.FormatFloat(series.Omegas[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a stored trajectory back.
func (s *Store) LoadSeries(runID string) (*sim.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &sim.Series{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		t, err1 := strconv.ParseFloat(record[0], 64)
		theta, err2 := strconv.ParseFloat(record[1], 64)
		omega, err3 := strconv.ParseFloat(record[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		series.Times = append(series.Times, t)
		series.Thetas = append(series.Thetas, theta)
		series.Omegas = append(series.Omegas, omega)
	}

	return series, nil
}

type exportData struct {
	RunMetadata
	Times  []float64 `json:"times"`
	Thetas []float64 `json:"thetas"`
	Omegas []float64 `json:"omegas"`
}

// ExportJSON writes the full run, metadata and trajectory, to w.
func ExportJSON(w io.Writer, meta *RunMetadata, series *sim.Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{
		RunMetadata: *meta,
		Times:       series.Times,
		Thetas:      series.Thetas,
		Omegas:      series.Omegas,
	})
}
