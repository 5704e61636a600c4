package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run        RunMetadata       `json:"run"`
	Trajectory []TrajectoryPoint `json:"trajectory"`
	Energy     []EnergySample    `json:"energy"`
}

// ExportJSON writes a run and its recorded data as one indented document.
func ExportJSON(w io.Writer, meta RunMetadata, rec *Recorder) error {
	data := ExportData{
		Run:        meta,
		Trajectory: rec.Trajectory,
		Energy:     rec.Energy,
	}
	if data.Trajectory == nil {
		data.Trajectory = []TrajectoryPoint{}
	}
	if data.Energy == nil {
		data.Energy = []EnergySample{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSONFile writes the export document to path, replacing any existing file.
func ExportJSONFile(path string, meta RunMetadata, rec *Recorder) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportJSON(file, meta, rec); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (s *Store) loadRun(runID string) (RunMetadata, *Recorder, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return RunMetadata{}, nil, err
	}
	rec := NewRecorder(1)
	if rec.Trajectory, err = s.LoadTrajectory(runID); err != nil {
		return RunMetadata{}, nil, err
	}
	if rec.Energy, err = s.LoadEnergy(runID); err != nil {
		return RunMetadata{}, nil, err
	}
	return *meta, rec, nil
}

// ExportRun exports a stored run.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, rec, err := s.loadRun(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, rec)
}

// ExportRunFile exports a stored run to path. Nothing is written when the
// run cannot be loaded.
func (s *Store) ExportRunFile(path, runID string) error {
	meta, rec, err := s.loadRun(runID)
	if err != nil {
		return err
	}
	return ExportJSONFile(path, meta, rec)
}
