package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"subweave/internal/config"
	"subweave/internal/finalize"
	"subweave/internal/logging"
	"subweave/internal/queue"
	"subweave/internal/stage"
)

// Stage burns the finalized SRT into a proof video next to the captions.
type Stage struct {
	cfg      *config.Config
	renderer *Renderer
	logger   *slog.Logger
}

// NewStage constructs the render stage from configuration.
func NewStage(cfg *config.Config, logger *slog.Logger) *Stage {
	renderer := NewRenderer(cfg.FFmpegBinary(), Options{
		VideoWidth:  cfg.Render.VideoWidth,
		VideoHeight: cfg.Render.VideoHeight,
		Framerate:   cfg.Render.Framerate,
		FontName:    cfg.Render.FontName,
		FontSize:    cfg.Render.FontSize,
	})
	return NewStageWithRenderer(cfg, renderer, logger)
}

// NewStageWithRenderer constructs the stage with an explicit renderer.
func NewStageWithRenderer(cfg *config.Config, renderer *Renderer, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:      cfg,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "render"),
	}
}

// Prepare verifies the finalized SRT artifact exists.
func (s *Stage) Prepare(ctx context.Context, job *queue.Job) error {
	if job.ArtifactDir == "" {
		return errors.New("job has no artifact directory")
	}
	if _, err := os.Stat(finalize.SRTPath(s.cfg, job)); err != nil {
		return fmt.Errorf("stat srt artifact: %w", err)
	}
	return nil
}

// Execute renders the proof video into the job's artifact directory.
func (s *Stage) Execute(ctx context.Context, job *queue.Job) error {
	srtPath := finalize.SRTPath(s.cfg, job)
	dest := filepath.Join(job.ArtifactDir,
		fmt.Sprintf("%s.%s.proof.mp4", config.SanitizeTitle(job.Title), job.TargetLanguage))

	job.SetProgress("render", "Burning subtitles", 20)
	if err := s.renderer.Burn(ctx, job.SourcePath, srtPath, dest); err != nil {
		return err
	}

	s.logger.Info("proof video rendered",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String("output", dest))
	return nil
}

// HealthCheck reports whether ffmpeg is available.
func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	if _, err := exec.LookPath(s.cfg.FFmpegBinary()); err != nil {
		return stage.Unhealthy("render", fmt.Sprintf("binary %q not found", s.cfg.FFmpegBinary()))
	}
	return stage.Healthy("render")
}
