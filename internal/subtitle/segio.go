package subtitle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type segmentFile struct {
	Segments []Segment `json:"segments"`
}

// SaveSegments writes segments as a JSON artifact compatible with the
// WhisperX output shape, so every pipeline stage reads and writes the same
// format.
func SaveSegments(path string, segments []Segment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure segments dir: %w", err)
	}
	encoded, err := json.MarshalIndent(segmentFile{Segments: segments}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	encoded = append(encoded, '\n')
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	return nil
}

// LoadSegmentsFile reads a segments JSON artifact written by SaveSegments
// or by WhisperX.
func LoadSegmentsFile(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload segmentFile
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse segments file: %w", err)
	}
	return payload.Segments, nil
}
