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
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	energyFile     = "energy.csv"
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
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Central   string             `json:"central"`
	Mass      float64            `json:"central_mass"`
	Method    string             `json:"method"`
	Gravity   bool               `json:"gravity"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Duration  float64            `json:"duration"`
	Bodies    []string           `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta and the recorded data under a new run directory and
// returns the run ID.
func (s *Store) Save(meta RunMetadata, rec *Recorder) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Name, now.UnixNano())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, trajectoryFile), trajectoryRows(rec.Trajectory)); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, energyFile), energyRows(rec.Energy)); err != nil {
		return "", err
	}
	return meta.ID, nil
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

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func trajectoryRows(points []TrajectoryPoint) [][]string {
	rows := make([][]string, 0, len(points)+1)
	rows = append(rows, []string{"step", "time", "body", "x", "y", "z", "vx", "vy", "vz", "active"})
	for _, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(p.Step),
			formatFloat(p.Time),
			p.Body,
			formatFloat(p.Position[0]),
			formatFloat(p.Position[1]),
			formatFloat(p.Position[2]),
			formatFloat(p.Velocity[0]),
			formatFloat(p.Velocity[1]),
			formatFloat(p.Velocity[2]),
			strconv.FormatBool(p.Active),
		})
	}
	return rows
}

func energyRows(samples []EnergySample) [][]string {
	rows := make([][]string, 0, len(samples)+1)
	rows = append(rows, []string{"step", "time", "kinetic", "potential", "total"})
	for _, e := range samples {
		rows = append(rows, []string{
			strconv.Itoa(e.Step),
			formatFloat(e.Time),
			formatFloat(e.Kinetic),
			formatFloat(e.Potential),
			formatFloat(e.Total),
		})
	}
	return rows
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
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
	return records[1:], nil
}

// parseFloats parses record[from:to]; malformed rows are reported as false.
func parseFloats(record []string, from, to int) ([]float64, bool) {
	if len(record) < to {
		return nil, false
	}
	out := make([]float64, 0, to-from)
	for _, field := range record[from:to] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// LoadTrajectory reads trajectory.csv, skipping malformed rows.
func (s *Store) LoadTrajectory(runID string) ([]TrajectoryPoint, error) {
	records, err := s.readCSV(runID, trajectoryFile)
	if err != nil {
		return nil, err
	}

	points := make([]TrajectoryPoint, 0, len(records))
	for _, record := range records {
		if len(record) < 10 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		t, ok := parseFloats(record, 1, 2)
		if !ok {
			continue
		}
		kin, ok := parseFloats(record, 3, 9)
		if !ok {
			continue
		}
		active, err := strconv.ParseBool(record[9])
		if err != nil {
			continue
		}
		points = append(points, TrajectoryPoint{
			Step:     step,
			Time:     t[0],
			Body:     record[2],
			Position: [3]float64{kin[0], kin[1], kin[2]},
			Velocity: [3]float64{kin[3], kin[4], kin[5]},
			Active:   active,
		})
	}
	return points, nil
}

// LoadEnergy reads energy.csv, skipping malformed rows.
func (s *Store) LoadEnergy(runID string) ([]EnergySample, error) {
	records, err := s.readCSV(runID, energyFile)
	if err != nil {
		return nil, err
	}

	samples := make([]EnergySample, 0, len(records))
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		step, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		v, ok := parseFloats(record, 1, 5)
		if !ok {
			continue
		}
		samples = append(samples, EnergySample{Step: step, Time: v[0], Kinetic: v[1], Potential: v[2], Total: v[3]})
	}
	return samples, nil
}
