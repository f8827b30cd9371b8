// Package model is the persisted-model codec: a versioned JSON schema for
// layer configurations, weight tensors and last-run statistics.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Version is the schema version written by Save and required by Load.
const Version = "1"

// File is the full persisted snapshot of a trained network.
type File struct {
	Version    string  `json:"version"`
	LastError  float64 `json:"lastError"`
	LastTime   float64 `json:"lastTime"` // seconds
	Parameters []Entry `json:"parameters"`
}

// Entry holds one layer's configuration and its full weight tensor,
// one row per output unit, bias term last in each row.
type Entry struct {
	Config  Config      `json:"config"`
	Weights [][]float64 `json:"weights"`
}

// Config mirrors the construction parameters of one layer.
type Config struct {
	Inputs     int    `json:"inputs"`
	Outputs    int    `json:"outputs"`
	Activation string `json:"activation"`
}

// FormatError reports persisted content that does not decode into the
// expected model shape.
type FormatError struct {
	Layer  int // index of the offending layer entry, -1 if not layer-specific
	Reason string
}

func (e *FormatError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("invalid model: %s", e.Reason)
	}
	return fmt.Sprintf("invalid model: layer %d: %s", e.Layer, e.Reason)
}

// Save serializes the snapshot into dir under a filename derived from the
// current timestamp and returns just that filename.
func Save(dir string, f *File) (string, error) {
	f.Version = Version
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling model: %w", err)
	}

	filename := fmt.Sprintf("perceptron-%d.json", time.Now().Unix())
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("writing model file: %w", err)
	}
	return filename, nil
}

// Load reads and strictly decodes a persisted snapshot. Any structural
// mismatch is rejected rather than tolerated.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &FormatError{Layer: -1, Reason: err.Error()}
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	if f.Version != Version {
		return &FormatError{Layer: -1, Reason: fmt.Sprintf("unsupported version %q", f.Version)}
	}
	if len(f.Parameters) == 0 {
		return &FormatError{Layer: -1, Reason: "no layer parameters"}
	}
	for i, entry := range f.Parameters {
		if entry.Config.Inputs <= 0 || entry.Config.Outputs <= 0 {
			return &FormatError{Layer: i, Reason: fmt.Sprintf("non-positive dimensions %dx%d",
				entry.Config.Inputs, entry.Config.Outputs)}
		}
		if len(entry.Weights) != entry.Config.Outputs {
			return &FormatError{Layer: i, Reason: fmt.Sprintf("expected %d weight rows, got %d",
				entry.Config.Outputs, len(entry.Weights))}
		}
		for j, row := range entry.Weights {
			if len(row) != entry.Config.Inputs+1 {
				return &FormatError{Layer: i, Reason: fmt.Sprintf("weight row %d: expected %d values, got %d",
					j, entry.Config.Inputs+1, len(row))}
			}
		}
	}
	return nil
}

// Seconds converts a duration to the lastTime representation.
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}

// Duration converts a lastTime value back to a duration.
func Duration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
