package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"subweave/internal/standards"
)

// Standard resolves the configured delivery standard, applying any explicit
// overrides on top of the selected profile.
func (c *Config) Standard() standards.Standard {
	std := standards.Broadcast()
	if c.Standards.Profile == "teletext" {
		std = standards.Teletext()
	}
	if c.Standards.MaxCharsPerLine > 0 {
		std.MaxCharsPerLine = c.Standards.MaxCharsPerLine
	}
	if c.Standards.MaxLines > 0 {
		std.MaxLines = c.Standards.MaxLines
	}
	return std
}

// JobWorkDir returns the per-job scratch directory under the work root.
func (c *Config) JobWorkDir(jobID int64) string {
	return filepath.Join(c.Paths.WorkDir, fmt.Sprintf("job-%d", jobID))
}

// JobDeliverDir returns the delivery directory for a job title.
func (c *Config) JobDeliverDir(title string) string {
	return filepath.Join(c.Paths.DeliverDir, SanitizeTitle(title))
}

// SanitizeTitle strips path separators and leading dots so a media title is
// safe as a directory or file name component.
func SanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}

// TranslatorConfig contains the translation service connection settings.
type TranslatorConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
	BatchSize      int
	ChiefEditor    bool
}

// GetTranslator returns the translation service connection settings.
func (c *Config) GetTranslator() TranslatorConfig {
	return TranslatorConfig{
		APIKey:         c.Translator.APIKey,
		BaseURL:        c.Translator.BaseURL,
		Model:          c.Translator.Model,
		Referer:        c.Translator.Referer,
		Title:          c.Translator.Title,
		TimeoutSeconds: c.Translator.TimeoutSeconds,
		BatchSize:      c.Translator.BatchSize,
		ChiefEditor:    c.Translator.ChiefEditor,
	}
}
