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

	"github.com/san-kum/qmlab/internal/experiment"
	"github.com/san-kum/qmlab/internal/quantum"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Topic     string             `json:"topic"`
	Target    string             `json:"target,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Params    map[string]float64 `json:"params"`
	Results   []quantum.Result   `json:"results"`
	Series    []string           `json:"series,omitempty"`
}

// Save writes res under a new run id: metadata.json holds the inputs and
// results, samples.csv the sampled curves as columns sharing one x axis.
func (s *Store) Save(res *experiment.Result) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%d", res.Topic, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 1; ; i++ {
		if _, err := os.Stat(runDir); os.IsNotExist(err) {
			break
		}
		runID = fmt.Sprintf("%s_%d_%d", res.Topic, now.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Topic:     res.Topic,
		Target:    res.Target,
		Timestamp: now,
		Params:    res.Params,
		Results:   res.Results,
	}
	for _, series := range res.Series {
		meta.Series = append(meta.Series, series.Name)
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

	if len(res.Series) == 0 {
		return runID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := []string{"x"}
	for _, series := range res.Series {
		header = append(header, series.Name)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	xs := res.Series[0].X
	for i := range xs {
		row := []string{strconv.FormatFloat(xs[i], 'g', -1, 64)}
		for _, series := range res.Series {
			val := ""
			if i < len(series.Y) {
				val = strconv.FormatFloat(series.Y[i], 'g', -1, 64)
			}
			row = append(row, val)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// List returns saved runs, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

// LoadSamples reads samples.csv back into series. A run saved without
// samples yields none.
func (s *Store) LoadSamples(runID string) ([]quantum.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	series := make([]quantum.Series, len(header)-1)
	for i := range series {
		series[i].Name = header[i+1]
	}

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		for j := range series {
			if j+1 >= len(record) {
				continue
			}
			y, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				continue
			}
			series[j].X = append(series[j].X, x)
			series[j].Y = append(series[j].Y, y)
		}
	}
	return series, nil
}

// Path returns the directory of a run.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.baseDir, runID)
}
