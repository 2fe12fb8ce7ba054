package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if err := c.validateTiming(); err != nil {
		return err
	}
	if err := c.validateStandards(); err != nil {
		return err
	}
	if err := c.validateTranslator(); err != nil {
		return err
	}
	if err := c.validateFormats(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLanguages() error {
	if c.Languages.Source == "" {
		return errors.New("languages.source must be set")
	}
	if len(c.Languages.Targets) == 0 {
		return errors.New("languages.targets must include at least one language")
	}
	return nil
}

func (c *Config) validateTiming() error {
	switch c.Timing.Mode {
	case "balanced", "strict":
	default:
		return fmt.Errorf("timing.mode must be \"balanced\" or \"strict\", got %q", c.Timing.Mode)
	}
	if c.Timing.MaxExtensionSeconds <= 0 {
		return errors.New("timing.max_extension_seconds must be positive")
	}
	if c.Timing.FragmentShiftSeconds < 0 {
		return errors.New("timing.fragment_shift_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateStandards() error {
	switch c.Standards.Profile {
	case "broadcast", "teletext":
	default:
		return fmt.Errorf("standards.profile must be \"broadcast\" or \"teletext\", got %q", c.Standards.Profile)
	}
	if c.Standards.MaxCharsPerLine < 0 {
		return errors.New("standards.max_chars_per_line must be >= 0")
	}
	if c.Standards.MaxLines < 0 || c.Standards.MaxLines > 2 {
		return errors.New("standards.max_lines must be 0 (profile default), 1, or 2")
	}
	return nil
}

func (c *Config) validateTranslator() error {
	if !c.Translator.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Translator.APIKey) == "" {
		return errors.New("translator.api_key must be set when translator.enabled is true (or set OPENROUTER_API_KEY)")
	}
	if strings.TrimSpace(c.Translator.BaseURL) == "" {
		return errors.New("translator.base_url must be set when translator.enabled is true")
	}
	return nil
}

func (c *Config) validateFormats() error {
	if !c.Formats.SRT && !c.Formats.VTT && !c.Formats.TTML && !c.Formats.CueList {
		return errors.New("formats must enable at least one artifact")
	}
	if c.Render.Enabled && !c.Formats.CueList {
		return errors.New("formats.cue_list must be enabled when render.enabled is true")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
		"transcriber.timeout_seconds":   c.Transcriber.TimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Workflow.HeartbeatInterval <= 0 {
		return errors.New("workflow.heartbeat_interval must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= 0 {
		return errors.New("workflow.heartbeat_timeout must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return errors.New("workflow.heartbeat_timeout must be greater than workflow.heartbeat_interval")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
