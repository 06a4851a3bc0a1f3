package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/astrobits/clustergen/internal/model"
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
	ID         string             `json:"id"`
	Mode       string             `json:"mode"`
	Timestamp  time.Time          `json:"timestamp"`
	GravityLaw string             `json:"gravity_law"`
	NumPoints  int                `json:"num_points"`
	Fields     []string           `json:"fields"`
	FieldUnits map[string]string  `json:"field_units"`
	Params     map[string]float64 `json:"params"`
}

// Save writes a run directory containing metadata.json and fields.csv, one
// column per model field in insertion order, and returns the run ID.
func (s *Store) Save(mode, gravityLaw string, m *model.Model) (string, error) {
	runID := fmt.Sprintf("%s_%d", mode, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	names := m.Fields.Names()
	fieldUnits := make(map[string]string, len(names))
	for _, name := range names {
		fieldUnits[name] = m.Fields.Units(name)
	}
	meta := RunMetadata{
		ID:         runID,
		Mode:       mode,
		Timestamp:  time.Now(),
		GravityLaw: gravityLaw,
		NumPoints:  m.N,
		Fields:     names,
		FieldUnits: fieldUnits,
		Params:     m.Params,
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

	csvFile, err := os.Create(filepath.Join(runDir, "fields.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(names); err != nil {
		return "", err
	}
	cols := make([][]float64, len(names))
	for j, name := range names {
		cols[j] = m.Fields.Get(name)
	}
	row := make([]string, len(names))
	for i := 0; i < m.N; i++ {
		for j := range cols {
			row[j] = strconv.FormatFloat(cols[j][i], 'e', 8, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveParticles writes particles.csv into an existing run directory.
func (s *Store) SaveParticles(runID string, p *model.Particles) error {
	csvFile, err := os.Create(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"x", "y", "z", "vx", "vy", "vz", "mass", "density", "thermal_energy"}
	if err := w.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i := 0; i < p.N; i++ {
		vals := []float64{
			p.Positions[i][0], p.Positions[i][1], p.Positions[i][2],
			p.Velocities[i][0], p.Velocities[i][1], p.Velocities[i][2],
			p.Masses[i], p.Densities[i], p.Energies[i],
		}
		for j, v := range vals {
			row[j] = strconv.FormatFloat(v, 'e', 8, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFields reads fields.csv back as column name -> data.
func (s *Store) LoadFields(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "fields.csv"))
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
		return map[string][]float64{}, nil
	}

	names := records[0]
	cols := make(map[string][]float64, len(names))
	for _, name := range names {
		cols[name] = make([]float64, 0, len(records)-1)
	}
	for i := 1; i < len(records); i++ {
		for j, name := range names {
			v, err := strconv.ParseFloat(records[i][j], 64)
			if err != nil {
				return nil, err
			}
			cols[name] = append(cols[name], v)
		}
	}
	return cols, nil
}
