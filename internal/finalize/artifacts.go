package finalize

import (
	"fmt"
	"os"
	"path/filepath"

	"subweave/internal/config"
	"subweave/internal/queue"
	"subweave/internal/subtitle"
)

// emitArtifacts writes every enabled caption format into the job's delivery
// directory and returns that directory.
func (s *Stage) emitArtifacts(job *queue.Job, result *subtitle.Result) (string, error) {
	dir := s.cfg.JobDeliverDir(job.Title)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create deliver dir: %w", err)
	}

	base := fmt.Sprintf("%s.%s", config.SanitizeTitle(job.Title), job.TargetLanguage)

	if s.cfg.Formats.SRT {
		if err := writeArtifact(filepath.Join(dir, base+".srt"), []byte(subtitle.EmitSRT(result.Cues))); err != nil {
			return "", err
		}
	}
	if s.cfg.Formats.VTT {
		if err := writeArtifact(filepath.Join(dir, base+".vtt"), []byte(subtitle.EmitVTT(result.Cues))); err != nil {
			return "", err
		}
	}
	if s.cfg.Formats.TTML {
		if err := writeArtifact(filepath.Join(dir, base+".ttml"), []byte(subtitle.EmitTTML(result.Cues, job.TargetLanguage))); err != nil {
			return "", err
		}
	}
	if s.cfg.Formats.CueList {
		encoded, err := subtitle.MarshalCueList(result.CueList())
		if err != nil {
			return "", fmt.Errorf("encode cue list: %w", err)
		}
		if err := writeArtifact(filepath.Join(dir, base+".cues.json"), encoded); err != nil {
			return "", err
		}
	}

	return dir, nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SRTPath returns the path the SRT artifact was (or would be) written to.
// The render stage uses it to locate the burn-in input.
func SRTPath(cfg *config.Config, job *queue.Job) string {
	dir := cfg.JobDeliverDir(job.Title)
	base := fmt.Sprintf("%s.%s", config.SanitizeTitle(job.Title), job.TargetLanguage)
	return filepath.Join(dir, base+".srt")
}
