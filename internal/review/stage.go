package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"subweave/internal/config"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/services/llm"
	"subweave/internal/services/translator"
	"subweave/internal/services/whisperx"
	"subweave/internal/stage"
	"subweave/internal/subtitle"
)

// Stage reviews the draft translation against the original transcription.
type Stage struct {
	cfg    *config.Config
	svc    *translator.Service
	logger *slog.Logger
}

// New constructs the review stage from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Stage {
	tc := cfg.GetTranslator()
	client := llm.NewClient(llm.Config{
		APIKey:         tc.APIKey,
		BaseURL:        tc.BaseURL,
		Model:          tc.Model,
		Referer:        tc.Referer,
		Title:          tc.Title,
		TimeoutSeconds: tc.TimeoutSeconds,
	})
	svc := translator.NewService(client, tc.BatchSize, tc.ChiefEditor, logger)
	return NewWithService(cfg, svc, logger)
}

// NewWithService constructs the stage with an explicit translator service.
func NewWithService(cfg *config.Config, svc *translator.Service, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:    cfg,
		svc:    svc,
		logger: logging.NewComponentLogger(logger, "review"),
	}
}

// Prepare verifies both the transcription and the draft are present.
func (s *Stage) Prepare(ctx context.Context, job *queue.Job) error {
	if job.SegmentsFile == "" || job.TranslatedFile == "" {
		return errors.New("job is missing transcription or draft artifacts")
	}
	for _, path := range []string{job.SegmentsFile, job.TranslatedFile} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("stat artifact: %w", err)
		}
	}
	return nil
}

// Execute runs the chief editor pass and replaces the draft artifact with
// the reviewed one.
func (s *Stage) Execute(ctx context.Context, job *queue.Job) error {
	originals, err := whisperx.LoadSegments(job.SegmentsFile)
	if err != nil {
		return fmt.Errorf("load originals: %w", err)
	}
	draft, err := subtitle.LoadSegmentsFile(job.TranslatedFile)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}

	job.SetProgress("review", fmt.Sprintf("Reviewing %d segments", len(draft)), 10)
	reviewed, err := s.svc.Review(ctx, originals, draft, job.SourceLanguage, job.TargetLanguage)
	if err != nil {
		return err
	}

	reviewedPath := filepath.Join(s.cfg.JobWorkDir(job.ID), fmt.Sprintf("reviewed.%s.json", job.TargetLanguage))
	if err := subtitle.SaveSegments(reviewedPath, reviewed); err != nil {
		return err
	}
	job.TranslatedFile = reviewedPath

	s.logger.Info("review complete",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.Int("segments", len(reviewed)))
	return nil
}

// HealthCheck pings the translation API used for review.
func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.svc.HealthCheck(checkCtx); err != nil {
		return stage.Unhealthy("review", err.Error())
	}
	return stage.Healthy("review")
}
