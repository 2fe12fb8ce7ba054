package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subweave/internal/subtitle"
)

func TestFinalizeCommandEmitsArtifacts(t *testing.T) {
	env := setupCLITestEnv(t)

	segments := []subtitle.Segment{
		{ID: 1, Start: 0, End: 2.5, Text: "Gott kvöld og velkomin"},
		{ID: 2, Start: 3, End: 5.5, Text: "í kvöldfréttir sjónvarpsins"},
	}
	segmentsPath := filepath.Join(env.baseDir, "episode.json")
	if err := subtitle.SaveSegments(segmentsPath, segments); err != nil {
		t.Fatalf("SaveSegments: %v", err)
	}

	out, _, err := runCLI(t, []string{"finalize", segmentsPath, "--language", "is", "--title", "Kvöldfréttir"}, env.configPath)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	requireContains(t, out, "Artifacts written to")
	requireContains(t, out, "Segments: 2")

	srtPath := filepath.Join(env.cfg.JobDeliverDir("Kvöldfréttir"), "Kvöldfréttir.is.srt")
	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(data), "Gott kvöld") {
		t.Fatalf("srt missing cue text: %s", data)
	}
}

func TestFinalizeCommandDefaultsTitleAndLanguage(t *testing.T) {
	env := setupCLITestEnv(t)

	segments := []subtitle.Segment{
		{ID: 1, Start: 0, End: 2, Text: "halló heimur"},
	}
	segmentsPath := filepath.Join(env.baseDir, "morgunfrettir.json")
	if err := subtitle.SaveSegments(segmentsPath, segments); err != nil {
		t.Fatalf("SaveSegments: %v", err)
	}

	out, _, err := runCLI(t, []string{"finalize", segmentsPath}, env.configPath)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	requireContains(t, out, "Artifacts written to")

	dir := env.cfg.JobDeliverDir("morgunfrettir")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read deliver dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no artifacts emitted")
	}
}

func TestFinalizeCommandRejectsMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"finalize", filepath.Join(env.baseDir, "nope.json")}, env.configPath); err == nil {
		t.Fatal("expected error for missing input")
	}
}
