package logging

import (
	"log/slog"
	"path/filepath"

	"subweave/internal/config"
)

// DaemonLogName is the shared log file written by the daemon process.
const DaemonLogName = "subweave.log"

// NewFromConfig builds the daemon logger from the [logging] section,
// writing to stdout and the shared log file under the configured log
// directory. The log file path is returned so callers can exclude it from
// retention cleanup.
func NewFromConfig(cfg *config.Config) (*slog.Logger, string, error) {
	logPath := filepath.Join(cfg.Paths.LogDir, DaemonLogName)
	logger, err := New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", logPath},
	})
	if err != nil {
		return nil, "", err
	}
	return logger, logPath, nil
}
