package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	langpkg "subweave/internal/language"
	"subweave/internal/logging"
	"subweave/internal/services/llm"
	"subweave/internal/subtitle"
)

const defaultBatchSize = 40

// Service translates subtitle segments batch by batch.
type Service struct {
	client      *llm.Client
	batchSize   int
	chiefEditor bool
	logger      *slog.Logger
}

// NewService constructs a translator over the given chat client.
func NewService(client *llm.Client, batchSize int, chiefEditor bool, logger *slog.Logger) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Service{
		client:      client,
		batchSize:   batchSize,
		chiefEditor: chiefEditor,
		logger:      logging.NewComponentLogger(logger, "translator"),
	}
}

// HealthCheck verifies the API is reachable with the configured key.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.client.HealthCheck(ctx)
}

// ChiefEditorEnabled reports whether the review pass will run.
func (s *Service) ChiefEditorEnabled() bool {
	return s.chiefEditor
}

type promptLine struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type reviewLine struct {
	ID       int    `json:"id"`
	Original string `json:"original"`
	Draft    string `json:"draft"`
}

type lineResponse struct {
	Lines []promptLine `json:"lines"`
}

// Translate produces draft target-language segments from the transcription.
// Timing carries over unchanged; word alignments are dropped because they
// describe the source-language words.
func (s *Service) Translate(ctx context.Context, segments []subtitle.Segment, sourceLang, targetLang string) ([]subtitle.Segment, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	out := make([]subtitle.Segment, len(segments))
	copy(out, segments)
	for i := range out {
		out[i].Words = nil
	}

	for start := 0; start < len(out); start += s.batchSize {
		end := start + s.batchSize
		if end > len(out) {
			end = len(out)
		}
		if err := s.translateBatch(ctx, out[start:end], sourceLang, targetLang); err != nil {
			return nil, fmt.Errorf("translate batch %d-%d: %w", start+1, end, err)
		}
		s.logger.Info("batch translated",
			logging.Int("from", start+1),
			logging.Int("to", end),
			logging.Int("total", len(out)))
	}
	return out, nil
}

// Review runs the chief editor pass over a finished draft and returns the
// corrected segments. Originals and draft must be parallel slices.
func (s *Service) Review(ctx context.Context, originals, draft []subtitle.Segment, sourceLang, targetLang string) ([]subtitle.Segment, error) {
	if len(originals) != len(draft) {
		return nil, fmt.Errorf("chief editor: %d originals vs %d draft lines", len(originals), len(draft))
	}
	if len(draft) == 0 {
		return nil, nil
	}

	out := make([]subtitle.Segment, len(draft))
	copy(out, draft)
	if err := s.reviewDraft(ctx, originals, out, sourceLang, targetLang); err != nil {
		return nil, fmt.Errorf("chief editor: %w", err)
	}
	return out, nil
}

func (s *Service) translateBatch(ctx context.Context, batch []subtitle.Segment, sourceLang, targetLang string) error {
	lines := make([]promptLine, len(batch))
	for i, seg := range batch {
		lines[i] = promptLine{ID: seg.ID, Text: seg.Text}
	}
	request := struct {
		SourceLanguage string       `json:"source_language"`
		TargetLanguage string       `json:"target_language"`
		Lines          []promptLine `json:"lines"`
	}{
		SourceLanguage: langpkg.DisplayName(sourceLang),
		TargetLanguage: langpkg.DisplayName(targetLang),
		Lines:          lines,
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	content, err := s.client.CompleteJSON(ctx, TranslationPrompt, string(encoded))
	if err != nil {
		return err
	}
	translated, err := decodeLines(content, len(batch))
	if err != nil {
		return err
	}
	return applyLines(batch, translated)
}

// reviewDraft runs the chief editor pass over the whole draft, batch by
// batch, editing the translated segments in place.
func (s *Service) reviewDraft(ctx context.Context, originals, draft []subtitle.Segment, sourceLang, targetLang string) error {
	for start := 0; start < len(draft); start += s.batchSize {
		end := start + s.batchSize
		if end > len(draft) {
			end = len(draft)
		}

		lines := make([]reviewLine, end-start)
		for i := range lines {
			lines[i] = reviewLine{
				ID:       draft[start+i].ID,
				Original: originals[start+i].Text,
				Draft:    draft[start+i].Text,
			}
		}
		request := struct {
			SourceLanguage string       `json:"source_language"`
			TargetLanguage string       `json:"target_language"`
			Lines          []reviewLine `json:"lines"`
		}{
			SourceLanguage: langpkg.DisplayName(sourceLang),
			TargetLanguage: langpkg.DisplayName(targetLang),
			Lines:          lines,
		}
		encoded, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("encode review batch: %w", err)
		}

		content, err := s.client.CompleteJSON(ctx, ChiefEditorPrompt, string(encoded))
		if err != nil {
			return err
		}
		reviewed, err := decodeLines(content, end-start)
		if err != nil {
			return err
		}
		if err := applyLines(draft[start:end], reviewed); err != nil {
			return err
		}
	}
	return nil
}

func decodeLines(content string, want int) ([]promptLine, error) {
	var parsed lineResponse
	if err := llm.DecodeJSON(content, &parsed); err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	if len(parsed.Lines) != want {
		return nil, fmt.Errorf("line count mismatch: got %d, want %d", len(parsed.Lines), want)
	}
	return parsed.Lines, nil
}

// applyLines writes translated text back onto segments, matched by id.
func applyLines(batch []subtitle.Segment, lines []promptLine) error {
	byID := make(map[int]string, len(lines))
	for _, line := range lines {
		byID[line.ID] = line.Text
	}
	for i := range batch {
		text, ok := byID[batch[i].ID]
		if !ok {
			return fmt.Errorf("missing line for segment %d", batch[i].ID)
		}
		if text == "" {
			return errors.New("empty translation line")
		}
		batch[i].Text = text
	}
	return nil
}
