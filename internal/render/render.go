package render

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls the burn-in output.
type Options struct {
	VideoWidth  int
	VideoHeight int
	Framerate   float64
	FontName    string
	FontSize    int
}

// Renderer shells out to ffmpeg to produce proof videos.
type Renderer struct {
	ffmpegBinary  string
	opts          Options
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewRenderer creates a renderer using the given ffmpeg binary.
func NewRenderer(ffmpegBinary string, opts Options) *Renderer {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Renderer{ffmpegBinary: ffmpegBinary, opts: opts}
}

// WithCommandRunner sets a custom command runner (for testing).
func (r *Renderer) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	r.commandRunner = runner
}

// Burn renders the source video with the subtitle file burned in.
func (r *Renderer) Burn(ctx context.Context, source, subtitlePath, dest string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("render: source path required")
	}
	if strings.TrimSpace(subtitlePath) == "" {
		return fmt.Errorf("render: subtitle path required")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("render: ensure dest dir: %w", err)
	}

	args := buildBurnArgs(source, subtitlePath, dest, r.opts)
	if r.commandRunner != nil {
		return r.commandRunner(ctx, r.ffmpegBinary, args...)
	}
	cmd := exec.CommandContext(ctx, r.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg render: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildBurnArgs constructs the ffmpeg invocation. The subtitles filter gets
// the SRT path plus a force_style clause carrying the configured font.
func buildBurnArgs(source, subtitlePath, dest string, opts Options) []string {
	filter := "subtitles=" + escapeFilterPath(subtitlePath)
	if style := forceStyle(opts); style != "" {
		filter += ":force_style='" + style + "'"
	}
	if opts.VideoWidth > 0 && opts.VideoHeight > 0 {
		filter = fmt.Sprintf("scale=%d:%d,", opts.VideoWidth, opts.VideoHeight) + filter
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vf", filter,
	}
	if opts.Framerate > 0 {
		args = append(args, "-r", strconv.FormatFloat(opts.Framerate, 'f', -1, 64))
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "20",
		"-c:a", "copy",
		dest,
	)
	return args
}

func forceStyle(opts Options) string {
	var parts []string
	if opts.FontName != "" {
		parts = append(parts, "FontName="+opts.FontName)
	}
	if opts.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("FontSize=%d", opts.FontSize))
	}
	return strings.Join(parts, ",")
}

// escapeFilterPath escapes the characters ffmpeg's filter parser treats as
// syntax. Colons are the usual offender on absolute Windows-style paths and
// in drive-mapped mounts.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
		`[`, `\[`,
		`]`, `\]`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return replacer.Replace(path)
}
