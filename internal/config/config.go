package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InboxDir   string `toml:"inbox_dir"`
	WorkDir    string `toml:"work_dir"`
	DeliverDir string `toml:"deliver_dir"`
	LogDir     string `toml:"log_dir"`
}

// Languages contains the source audio language and the translation targets.
type Languages struct {
	Source  string   `toml:"source"`
	Targets []string `toml:"targets"`
}

// Timing contains cue timing resolution settings.
type Timing struct {
	// Mode is "balanced" (extend toward ideal reading speed) or "strict"
	// (anchor to word alignment).
	Mode string `toml:"mode"`
	// MaxExtensionSeconds bounds strict-mode extension past the last word.
	MaxExtensionSeconds float64 `toml:"max_extension_seconds"`
	// FragmentShiftSeconds is the boundary nudge used by fragment rescue
	// when no word alignment exists.
	FragmentShiftSeconds float64 `toml:"fragment_shift_seconds"`
}

// Standards selects the delivery standard and optional overrides.
type Standards struct {
	// Profile is "broadcast" or "teletext".
	Profile         string `toml:"profile"`
	MaxCharsPerLine int    `toml:"max_chars_per_line"`
	MaxLines        int    `toml:"max_lines"`
}

// Transcriber contains WhisperX invocation settings.
type Transcriber struct {
	Model            string `toml:"model"`
	CUDAEnabled      bool   `toml:"cuda_enabled"`
	VADMethod        string `toml:"vad_method"`
	HuggingFaceToken string `toml:"hf_token"`
	CacheDir         string `toml:"cache_dir"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
}

// Translator contains settings for the OpenAI-compatible translation service.
type Translator struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	BatchSize      int    `toml:"batch_size"`
	// ChiefEditor enables the second review pass over the translated text.
	ChiefEditor bool `toml:"chief_editor"`
}

// Render contains burn-in overlay rendering settings.
type Render struct {
	Enabled     bool    `toml:"enabled"`
	VideoWidth  int     `toml:"video_width"`
	VideoHeight int     `toml:"video_height"`
	Framerate   float64 `toml:"framerate"`
	FontName    string  `toml:"font_name"`
	FontSize    int     `toml:"font_size"`
}

// Formats toggles the emitted caption artifacts.
type Formats struct {
	SRT     bool `toml:"srt"`
	VTT     bool `toml:"vtt"`
	TTML    bool `toml:"ttml"`
	CueList bool `toml:"cue_list"`
}

// Workflow contains daemon timing and intervals.
type Workflow struct {
	QueuePollInterval  int `toml:"queue_poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
	HeartbeatInterval  int `toml:"heartbeat_interval"`
	HeartbeatTimeout   int `toml:"heartbeat_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for subweave.
//
// Configuration sections by subsystem:
//   - Paths: inbox, work, deliver, and log directories
//   - Languages: source audio language and translation targets
//   - Timing: cue timing resolution mode and boundary heuristics
//   - Standards: delivery standard profile and overrides
//   - Transcriber: WhisperX model and runtime settings
//   - Translator: OpenAI-compatible translation service settings
//   - Render: burn-in overlay rendering
//   - Formats: emitted caption artifact toggles
//   - Workflow: daemon polling intervals and heartbeats
//   - Logging: log format, level, and retention
type Config struct {
	Paths       Paths       `toml:"paths"`
	Languages   Languages   `toml:"languages"`
	Timing      Timing      `toml:"timing"`
	Standards   Standards   `toml:"standards"`
	Transcriber Transcriber `toml:"transcriber"`
	Translator  Translator  `toml:"translator"`
	Render      Render      `toml:"render"`
	Formats     Formats     `toml:"formats"`
	Workflow    Workflow    `toml:"workflow"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subweave/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subweave.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.InboxDir, c.Paths.WorkDir, c.Paths.DeliverDir, c.Paths.LogDir}
	if strings.TrimSpace(c.Transcriber.CacheDir) != "" {
		dirs = append(dirs, c.Transcriber.CacheDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction
// and overlay rendering.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// UvxBinary returns the uv tool-runner executable used to invoke WhisperX.
func (c *Config) UvxBinary() string {
	return "uvx"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
