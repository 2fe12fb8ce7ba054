package translate

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

// Stage translates a job's transcription into the target language.
type Stage struct {
	cfg    *config.Config
	svc    *translator.Service
	logger *slog.Logger
}

// New constructs the translation stage from configuration.
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
		logger: logging.NewComponentLogger(logger, "translate"),
	}
}

// Prepare verifies the transcription artifact is present.
func (s *Stage) Prepare(ctx context.Context, job *queue.Job) error {
	if job.SegmentsFile == "" {
		return errors.New("job has no segments file")
	}
	if _, err := os.Stat(job.SegmentsFile); err != nil {
		return fmt.Errorf("stat segments file: %w", err)
	}
	return nil
}

// Execute translates the segments and writes the draft artifact.
func (s *Stage) Execute(ctx context.Context, job *queue.Job) error {
	segments, err := whisperx.LoadSegments(job.SegmentsFile)
	if err != nil {
		return fmt.Errorf("load segments: %w", err)
	}

	job.SetProgress("translate", fmt.Sprintf("Translating %d segments", len(segments)), 10)
	translated, err := s.svc.Translate(ctx, segments, job.SourceLanguage, job.TargetLanguage)
	if err != nil {
		return err
	}

	draftPath := filepath.Join(s.cfg.JobWorkDir(job.ID), fmt.Sprintf("translated.%s.json", job.TargetLanguage))
	if err := subtitle.SaveSegments(draftPath, translated); err != nil {
		return err
	}
	job.TranslatedFile = draftPath

	s.logger.Info("translation complete",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.Int("segments", len(translated)),
		logging.String(logging.FieldLanguage, job.TargetLanguage))
	return nil
}

// HealthCheck pings the translation API.
func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.svc.HealthCheck(checkCtx); err != nil {
		return stage.Unhealthy("translate", err.Error())
	}
	return stage.Healthy("translate")
}
