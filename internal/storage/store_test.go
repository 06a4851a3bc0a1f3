package storage

import (
	"path/filepath"
	"testing"

	"github.com/astrobits/clustergen/internal/fields"
	"github.com/astrobits/clustergen/internal/model"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	fs := fields.New(4)
	puts := []struct {
		name  string
		data  []float64
		units string
	}{
		{"radius", []float64{1, 10, 100, 1000}, "kpc"},
		{"density", []float64{3e5, 1e5, 1e4, 1e2}, "Msun/kpc**3"},
		{"total_mass", []float64{1e11, 1e12, 1e13, 1e14}, "Msun"},
	}
	for _, p := range puts {
		if err := fs.Put(p.name, p.data, p.units); err != nil {
			t.Fatalf("put %s: %v", p.name, err)
		}
	}
	return &model.Model{
		N:      4,
		Fields: fs,
		Params: map[string]float64{"rmin": 1, "rmax": 1000},
	}
}

func TestSaveLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	m := testModel(t)

	runID, err := store.Save("dens_temp", "newtonian", m)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Mode != "dens_temp" || meta.GravityLaw != "newtonian" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.NumPoints != 4 {
		t.Errorf("expected 4 points, got %d", meta.NumPoints)
	}
	if len(meta.Fields) != 3 || meta.Fields[0] != "radius" {
		t.Errorf("unexpected field list %v", meta.Fields)
	}
	if meta.FieldUnits["density"] != "Msun/kpc**3" {
		t.Errorf("unexpected units %v", meta.FieldUnits)
	}
	if meta.Params["rmax"] != 1000 {
		t.Errorf("unexpected params %v", meta.Params)
	}
}

func TestLoadFields(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	m := testModel(t)

	runID, err := store.Save("dens_temp", "newtonian", m)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cols, err := store.LoadFields(runID)
	if err != nil {
		t.Fatalf("load fields failed: %v", err)
	}
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	for _, name := range m.Fields.Names() {
		want := m.Fields.Get(name)
		got := cols[name]
		if len(got) != len(want) {
			t.Fatalf("column %s has %d rows, want %d", name, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("column %s row %d: got %g, want %g", name, i, got[i], want[i])
			}
		}
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	m := testModel(t)
	if _, err := store.Save("no_gas", "aqual", m); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	runs, err = store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].GravityLaw != "aqual" {
		t.Errorf("unexpected run metadata %+v", runs[0])
	}
}

func TestList_MissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "does-not-exist"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestSaveParticles(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	m := testModel(t)
	runID, err := store.Save("dens_temp", "newtonian", m)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	p := &model.Particles{
		N:          2,
		Positions:  [][3]float64{{1, 0, 0}, {0, 2, 0}},
		Velocities: [][3]float64{{}, {}},
		Masses:     []float64{5e8, 5e8},
		Densities:  []float64{1e5, 2e4},
		Energies:   []float64{0.1, 0.05},
	}
	if err := store.SaveParticles(runID, p); err != nil {
		t.Fatalf("save particles failed: %v", err)
	}
}
