package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subweave/internal/config"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/services/llm"
	"subweave/internal/services/translator"
	"subweave/internal/subtitle"
	"subweave/internal/testsupport"
)

// uppercaseModel translates every line by uppercasing it.
func uppercaseModel(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		var user string
		for _, msg := range req.Messages {
			if msg.Role == "user" {
				user = msg.Content
			}
		}
		var batch struct {
			Lines []struct {
				ID   int    `json:"id"`
				Text string `json:"text"`
			} `json:"lines"`
		}
		if err := json.Unmarshal([]byte(user), &batch); err != nil {
			t.Errorf("decode batch: %v", err)
		}
		lines := make([]map[string]any, len(batch.Lines))
		for i, line := range batch.Lines {
			lines[i] = map[string]any{"id": line.ID, "text": strings.ToUpper(line.Text)}
		}
		content, _ := json.Marshal(map[string]any{"lines": lines})
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": string(content)}},
			},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newStage(t *testing.T, cfg *config.Config, baseURL string) *Stage {
	t.Helper()
	client := llm.NewClient(
		llm.Config{APIKey: "key", BaseURL: baseURL, Model: "test-model"},
		llm.WithSleeper(func(time.Duration) {}),
	)
	svc := translator.NewService(client, 10, false, logging.NewNop())
	return NewWithService(cfg, svc, logging.NewNop())
}

func TestExecuteWritesDraftArtifact(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	server := uppercaseModel(t)
	st := newStage(t, cfg, server.URL)

	job := &queue.Job{ID: 4, SourceLanguage: "en", TargetLanguage: "is"}
	segmentsPath := filepath.Join(cfg.JobWorkDir(job.ID), "audio.json")
	segments := []subtitle.Segment{
		{Start: 0, End: 2, Text: "good evening"},
		{Start: 2.2, End: 4, Text: "and welcome"},
	}
	if err := subtitle.SaveSegments(segmentsPath, segments); err != nil {
		t.Fatalf("SaveSegments: %v", err)
	}
	job.SegmentsFile = segmentsPath

	if err := st.Prepare(context.Background(), job); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := st.Execute(context.Background(), job); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if job.TranslatedFile == "" {
		t.Fatal("translated file not recorded")
	}
	translated, err := subtitle.LoadSegmentsFile(job.TranslatedFile)
	if err != nil {
		t.Fatalf("LoadSegmentsFile: %v", err)
	}
	if len(translated) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(translated))
	}
	if translated[0].Text != "GOOD EVENING" {
		t.Fatalf("text = %q", translated[0].Text)
	}
	if translated[0].Start != 0 || translated[0].End != 2 {
		t.Fatalf("timing changed: %+v", translated[0])
	}
}

func TestPrepareRequiresSegmentsFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	server := uppercaseModel(t)
	st := newStage(t, cfg, server.URL)

	job := &queue.Job{ID: 5}
	if err := st.Prepare(context.Background(), job); err == nil {
		t.Fatal("expected error for missing segments file")
	}
	job.SegmentsFile = filepath.Join(cfg.Paths.WorkDir, "nope.json")
	if err := st.Prepare(context.Background(), job); err == nil {
		t.Fatal("expected error for nonexistent segments file")
	}
}
