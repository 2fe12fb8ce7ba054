package daemon

import (
	"log/slog"

	"subweave/internal/config"
	"subweave/internal/finalize"
	"subweave/internal/ingest"
	"subweave/internal/queue"
	"subweave/internal/render"
	"subweave/internal/review"
	"subweave/internal/transcribe"
	"subweave/internal/translate"
	"subweave/internal/workflow"
)

// BuildStages assembles the pipeline handlers enabled by the configuration.
// Transcription and finalization always run. Translation requires the
// translator to be enabled, review additionally requires the chief editor
// pass, and rendering requires burn-in output to be enabled.
func BuildStages(cfg *config.Config, logger *slog.Logger) workflow.StageSet {
	set := workflow.StageSet{
		Transcriber: transcribe.New(cfg, logger),
		Finalizer:   finalize.New(cfg, logger),
	}
	if cfg.Translator.Enabled {
		set.Translator = translate.New(cfg, logger)
		if cfg.Translator.ChiefEditor {
			set.Reviewer = review.New(cfg, logger)
		}
	}
	if cfg.Render.Enabled {
		set.Renderer = render.NewStage(cfg, logger)
	}
	return set
}

// Bootstrap opens the queue store and wires a complete daemon from the
// configuration. The caller owns the returned daemon and must Close it.
func Bootstrap(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	store, err := queue.Open(cfg)
	if err != nil {
		return nil, err
	}

	manager := workflow.NewManager(cfg, store, logger)
	manager.ConfigureStages(BuildStages(cfg, logger))
	scanner := ingest.NewScanner(cfg, store, logger)

	d, err := New(cfg, store, logger, manager, scanner)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return d, nil
}
