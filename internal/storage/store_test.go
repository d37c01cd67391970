package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/san-kum/qmlab/internal/quantum"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Topic:  "box",
		Params: map[string]float64{"length": 1e-9, "n": 1},
		Results: []quantum.Result{
			{Name: "energy", Label: "energy", Value: 6.02e-20, Unit: "J"},
		},
		Series: []quantum.Series{
			{Name: "psi", X: []float64{0, 0.5e-9, 1e-9}, Y: []float64{0, 44721.36, 0}},
			{Name: "prob", X: []float64{0, 0.5e-9, 1e-9}, Y: []float64{0, 2e9, 0}},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(st.Path(runID), name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Topic != "box" || meta.Params["length"] != 1e-9 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Results) != 1 || meta.Results[0].Value != 6.02e-20 {
		t.Errorf("results not round-tripped: %+v", meta.Results)
	}

	series, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(series) != 2 || series[1].Name != "prob" {
		t.Fatalf("unexpected series %+v", series)
	}
	if series[0].Y[1] != 44721.36 || series[1].X[2] != 1e-9 {
		t.Errorf("sample values lost precision: %+v", series)
	}
}

func TestStoreUniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	fixed := time.Unix(1700000000, 0)
	st.now = func() time.Time { return fixed }

	a, err := st.Save(sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	b, err := st.Save(sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected distinct ids, both %s", a)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	base := time.Unix(1700000000, 0)
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(2-i) * time.Hour)
		st.now = func() time.Time { return ts }
		if _, err := st.Save(sampleResult()); err != nil {
			t.Fatal(err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Timestamp.Before(runs[i-1].Timestamp) {
			t.Error("runs not sorted oldest first")
		}
	}
}

func TestStoreNoSamples(t *testing.T) {
	st := New(t.TempDir())
	res := sampleResult()
	res.Series = nil

	runID, err := st.Save(res)
	if err != nil {
		t.Fatal(err)
	}
	series, err := st.LoadSamples(runID)
	if err != nil || series != nil {
		t.Errorf("expected no samples, got %v (%v)", series, err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
