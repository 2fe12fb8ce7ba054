package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLanguages()
	c.normalizeTiming()
	c.normalizeStandards()
	if err := c.normalizeTranscriber(); err != nil {
		return err
	}
	c.normalizeTranslator()
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InboxDir, err = expandPath(c.Paths.InboxDir); err != nil {
		return fmt.Errorf("paths.inbox_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.DeliverDir, err = expandPath(c.Paths.DeliverDir); err != nil {
		return fmt.Errorf("paths.deliver_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguages() {
	c.Languages.Source = strings.ToLower(strings.TrimSpace(c.Languages.Source))
	if c.Languages.Source == "" {
		c.Languages.Source = defaultSourceLanguage
	}
	if len(c.Languages.Targets) == 0 {
		c.Languages.Targets = []string{defaultTargetLanguage}
		return
	}
	targets := make([]string, 0, len(c.Languages.Targets))
	seen := make(map[string]struct{}, len(c.Languages.Targets))
	for _, lang := range c.Languages.Targets {
		normalized := strings.ToLower(strings.TrimSpace(lang))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		targets = append(targets, normalized)
	}
	if len(targets) == 0 {
		targets = []string{defaultTargetLanguage}
	}
	c.Languages.Targets = targets
}

func (c *Config) normalizeTiming() {
	c.Timing.Mode = strings.ToLower(strings.TrimSpace(c.Timing.Mode))
	if c.Timing.Mode == "" {
		c.Timing.Mode = defaultTimingMode
	}
	if c.Timing.MaxExtensionSeconds <= 0 {
		c.Timing.MaxExtensionSeconds = defaultMaxExtensionSeconds
	}
	if c.Timing.FragmentShiftSeconds < 0 {
		c.Timing.FragmentShiftSeconds = defaultFragmentShiftSeconds
	}
}

func (c *Config) normalizeStandards() {
	c.Standards.Profile = strings.ToLower(strings.TrimSpace(c.Standards.Profile))
	if c.Standards.Profile == "" {
		c.Standards.Profile = defaultStandardsProfile
	}
}

func (c *Config) normalizeTranscriber() error {
	c.Transcriber.Model = strings.TrimSpace(c.Transcriber.Model)
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultTranscriberModel
	}
	c.Transcriber.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcriber.VADMethod))
	if c.Transcriber.VADMethod == "" {
		c.Transcriber.VADMethod = defaultTranscriberVADMethod
	}
	c.Transcriber.HuggingFaceToken = strings.TrimSpace(c.Transcriber.HuggingFaceToken)
	if c.Transcriber.HuggingFaceToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Transcriber.HuggingFaceToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Transcriber.HuggingFaceToken = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Transcriber.CacheDir) == "" {
		c.Transcriber.CacheDir = defaultTranscriberCacheDir
	}
	var err error
	if c.Transcriber.CacheDir, err = expandPath(c.Transcriber.CacheDir); err != nil {
		return fmt.Errorf("transcriber.cache_dir: %w", err)
	}
	if c.Transcriber.TimeoutSeconds <= 0 {
		c.Transcriber.TimeoutSeconds = defaultTranscriberTimeout
	}
	return nil
}

func (c *Config) normalizeTranslator() {
	c.Translator.BaseURL = strings.TrimSpace(c.Translator.BaseURL)
	if c.Translator.BaseURL == "" {
		c.Translator.BaseURL = defaultTranslatorBaseURL
	}
	c.Translator.Model = strings.TrimSpace(c.Translator.Model)
	if c.Translator.Model == "" {
		c.Translator.Model = defaultTranslatorModel
	}
	c.Translator.Referer = strings.TrimSpace(c.Translator.Referer)
	if c.Translator.Referer == "" {
		c.Translator.Referer = defaultTranslatorReferer
	}
	c.Translator.Title = strings.TrimSpace(c.Translator.Title)
	if c.Translator.Title == "" {
		c.Translator.Title = defaultTranslatorTitle
	}
	if c.Translator.TimeoutSeconds <= 0 {
		c.Translator.TimeoutSeconds = defaultTranslatorTimeout
	}
	if c.Translator.BatchSize <= 0 {
		c.Translator.BatchSize = defaultTranslatorBatchSize
	}
	c.Translator.APIKey = strings.TrimSpace(c.Translator.APIKey)
	if c.Translator.APIKey == "" {
		if value, ok := os.LookupEnv("SUBWEAVE_TRANSLATOR_API_KEY"); ok {
			c.Translator.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Translator.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeRender() {
	if c.Render.VideoWidth <= 0 {
		c.Render.VideoWidth = defaultRenderWidth
	}
	if c.Render.VideoHeight <= 0 {
		c.Render.VideoHeight = defaultRenderHeight
	}
	if c.Render.Framerate <= 0 {
		c.Render.Framerate = defaultRenderFramerate
	}
	c.Render.FontName = strings.TrimSpace(c.Render.FontName)
	if c.Render.FontName == "" {
		c.Render.FontName = defaultRenderFontName
	}
	if c.Render.FontSize <= 0 {
		c.Render.FontSize = defaultRenderFontSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
