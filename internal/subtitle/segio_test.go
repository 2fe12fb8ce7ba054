package subtitle

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveAndLoadSegments(t *testing.T) {
	segments := []Segment{
		{ID: 1, Start: 0.5, End: 2.1, Text: "Halló heimur.",
			Words: []WordTiming{{Text: "Halló", Start: 0.5, End: 1.0}, {Text: "heimur.", Start: 1.1, End: 2.1}}},
		{ID: 2, Start: 2.5, End: 4.0, Text: "Hvað segir þú?"},
	}

	path := filepath.Join(t.TempDir(), "nested", "segments.json")
	if err := SaveSegments(path, segments); err != nil {
		t.Fatalf("SaveSegments: %v", err)
	}

	loaded, err := LoadSegmentsFile(path)
	if err != nil {
		t.Fatalf("LoadSegmentsFile: %v", err)
	}
	if !reflect.DeepEqual(segments, loaded) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", segments, loaded)
	}
}

func TestLoadSegmentsFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadSegmentsFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
