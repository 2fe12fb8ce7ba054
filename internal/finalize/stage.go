package finalize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"subweave/internal/config"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/stage"
	"subweave/internal/subtitle"
)

// Stage finalizes a job's translated segments into delivery artifacts.
type Stage struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs the finalization stage.
func New(cfg *config.Config, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "finalize"),
	}
}

// inputFile returns the segments artifact the stage consumes: the reviewed
// or draft translation when present, otherwise the raw transcription (for
// same-language caption runs with translation disabled).
func inputFile(job *queue.Job) string {
	if job.TranslatedFile != "" {
		return job.TranslatedFile
	}
	return job.SegmentsFile
}

// Prepare verifies the input artifact exists.
func (s *Stage) Prepare(ctx context.Context, job *queue.Job) error {
	input := inputFile(job)
	if input == "" {
		return errors.New("job has no segments to finalize")
	}
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("stat input segments: %w", err)
	}
	return nil
}

// Execute runs the finalization engine and emits the configured formats.
func (s *Stage) Execute(ctx context.Context, job *queue.Job) error {
	segments, err := subtitle.LoadSegmentsFile(inputFile(job))
	if err != nil {
		return fmt.Errorf("load segments: %w", err)
	}

	job.SetProgress("finalize", fmt.Sprintf("Finalizing %d segments", len(segments)), 10)
	result, err := subtitle.Finalize(segments, s.options(job))
	if err != nil {
		return err
	}

	job.SetProgress("finalize", "Writing caption artifacts", 70)
	artifactDir, err := s.emitArtifacts(job, result)
	if err != nil {
		return err
	}
	job.ArtifactDir = artifactDir

	reportJSON, err := json.Marshal(result.Report)
	if err != nil {
		return fmt.Errorf("encode qa report: %w", err)
	}
	job.QAReportJSON = string(reportJSON)

	s.logger.Info("finalization complete",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.Int("cues", len(result.Cues)),
		logging.Int("merges", result.Report.Merges),
		logging.Bool("policy_defaulted", result.PolicyDefaulted))
	return nil
}

// options maps repository configuration onto one engine invocation.
func (s *Stage) options(job *queue.Job) subtitle.Options {
	return subtitle.Options{
		Standard:      s.cfg.Standard(),
		Language:      job.TargetLanguage,
		Mode:          subtitle.TimingMode(s.cfg.Timing.Mode),
		MaxExtension:  s.cfg.Timing.MaxExtensionSeconds,
		FragmentShift: s.cfg.Timing.FragmentShiftSeconds,
		VideoWidth:    s.cfg.Render.VideoWidth,
		VideoHeight:   s.cfg.Render.VideoHeight,
		Framerate:     s.cfg.Render.Framerate,
	}
}

// HealthCheck verifies the delivery directory is writable.
func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	if err := os.MkdirAll(s.cfg.Paths.DeliverDir, 0o755); err != nil {
		return stage.Unhealthy("finalize", err.Error())
	}
	return stage.Healthy("finalize")
}
