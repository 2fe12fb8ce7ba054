package transcribe

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
	"subweave/internal/preflight"
	"subweave/internal/queue"
	"subweave/internal/services/whisperx"
	"subweave/internal/stage"
)

// Stage transcribes a job's source media into an aligned segments file.
type Stage struct {
	cfg    *config.Config
	svc    *whisperx.Service
	logger *slog.Logger
}

// New constructs the transcription stage from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Stage {
	svc := whisperx.NewService(whisperx.Config{
		Model:       cfg.Transcriber.Model,
		CUDAEnabled: cfg.Transcriber.CUDAEnabled,
		VADMethod:   cfg.Transcriber.VADMethod,
		HFToken:     cfg.Transcriber.HuggingFaceToken,
		CacheDir:    cfg.Transcriber.CacheDir,
	}, cfg.FFmpegBinary(), cfg.UvxBinary())
	return NewWithService(cfg, svc, logger)
}

// NewWithService constructs the stage with an explicit service, used by
// tests to inject a command runner.
func NewWithService(cfg *config.Config, svc *whisperx.Service, logger *slog.Logger) *Stage {
	return &Stage{
		cfg:    cfg,
		svc:    svc,
		logger: logging.NewComponentLogger(logger, "transcribe"),
	}
}

// Prepare verifies the source media exists and creates the job work directory.
func (s *Stage) Prepare(ctx context.Context, job *queue.Job) error {
	info, err := os.Stat(job.SourcePath)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("source %q is a directory", job.SourcePath)
	}
	if err := os.MkdirAll(s.cfg.JobWorkDir(job.ID), 0o755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	return nil
}

// Execute extracts audio and runs WhisperX, recording the artifact paths on
// the job.
func (s *Stage) Execute(ctx context.Context, job *queue.Job) error {
	workDir := s.cfg.JobWorkDir(job.ID)
	audioPath := filepath.Join(workDir, "audio.wav")

	job.SetProgress("transcribe", "Extracting audio", 10)
	if err := s.svc.ExtractAudio(ctx, job.SourcePath, audioPath); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	job.AudioFile = audioPath

	job.SetProgress("transcribe", "Running WhisperX", 30)
	runCtx := ctx
	if s.cfg.Transcriber.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Transcriber.TimeoutSeconds)*time.Second)
		defer cancel()
	}
	jsonPath, err := s.svc.Transcribe(runCtx, audioPath, workDir, job.SourceLanguage)
	if err != nil {
		return err
	}

	segments, err := whisperx.LoadSegments(jsonPath)
	if err != nil {
		return fmt.Errorf("load segments: %w", err)
	}
	if len(segments) == 0 {
		return errors.New("transcription produced no segments")
	}
	job.SegmentsFile = jsonPath

	s.logger.Info("transcription complete",
		logging.Int64(logging.FieldJobID, job.ID),
		logging.Int("segments", len(segments)),
		logging.String("model", s.svc.Model()))
	return nil
}

// HealthCheck reports whether the external transcription tools are present.
func (s *Stage) HealthCheck(ctx context.Context) stage.Health {
	for _, status := range preflight.CheckSystemDeps(s.cfg) {
		if !status.Available && !status.Optional {
			return stage.Unhealthy("transcribe", status.Detail)
		}
	}
	return stage.Healthy("transcribe")
}
