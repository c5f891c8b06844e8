package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/latticeflow/internal/lattice"
	"github.com/san-kum/latticeflow/internal/sim"
)

// Store persists completed runs under a base directory, one
// subdirectory per run with metadata.json and av_vels.csv.
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
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Nx          int                `json:"nx"`
	Ny          int                `json:"ny"`
	MaxIters    int                `json:"max_iters"`
	ReynoldsDim int                `json:"reynolds_dim"`
	Density     float64            `json:"density"`
	Accel       float64            `json:"accel"`
	Omega       float64            `json:"omega"`
	Reynolds    float64            `json:"reynolds"`
	ElapsedSec  float64            `json:"elapsed_sec"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run directory and returns its id.
func (s *Store) Save(p lattice.Params, elapsed time.Duration, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("lbm_%dx%d_%d", p.Nx, p.Ny, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		Nx:          p.Nx,
		Ny:          p.Ny,
		MaxIters:    p.MaxIters,
		ReynoldsDim: p.ReynoldsDim,
		Density:     p.Density,
		Accel:       p.Accel,
		Omega:       p.Omega,
		Reynolds:    result.Reynolds,
		ElapsedSec:  elapsed.Seconds(),
		Metrics:     result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "av_vels.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "av_vel"}); err != nil {
		return "", err
	}
	for i, v := range result.AvVels {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'e', 12, 64)}
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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

// LoadAvVels reads back the per-step average velocity series of a run.
func (s *Store) LoadAvVels(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "av_vels.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []float64{}, nil
	}

	vels := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		vels = append(vels, v)
	}

	return vels, nil
}
