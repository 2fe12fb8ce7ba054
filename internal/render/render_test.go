package render

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildBurnArgs(t *testing.T) {
	opts := Options{VideoWidth: 1920, VideoHeight: 1080, Framerate: 25.0, FontName: "Helvetica", FontSize: 44}
	args := buildBurnArgs("/media/show.mkv", "/work/show.srt", "/deliver/show.mp4", opts)

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-i /media/show.mkv") {
		t.Fatalf("source missing: %v", args)
	}
	if !strings.Contains(joined, "scale=1920:1080") {
		t.Fatalf("scale filter missing: %v", args)
	}
	if !strings.Contains(joined, `subtitles=/work/show.srt`) {
		t.Fatalf("subtitles filter missing: %v", args)
	}
	if !strings.Contains(joined, "force_style='FontName=Helvetica,FontSize=44'") {
		t.Fatalf("style missing: %v", args)
	}
	if !strings.Contains(joined, "-r 25") {
		t.Fatalf("framerate missing: %v", args)
	}
	if args[len(args)-1] != "/deliver/show.mp4" {
		t.Fatalf("dest must be final arg: %v", args)
	}
}

func TestBuildBurnArgsOmitsUnsetOptions(t *testing.T) {
	args := buildBurnArgs("/a.mkv", "/a.srt", "/a.mp4", Options{})
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "scale=") {
		t.Fatalf("scale should be omitted: %v", args)
	}
	if strings.Contains(joined, "force_style") {
		t.Fatalf("style should be omitted: %v", args)
	}
	if strings.Contains(joined, "-r ") {
		t.Fatalf("framerate should be omitted: %v", args)
	}
}

func TestEscapeFilterPath(t *testing.T) {
	got := escapeFilterPath(`/mnt/c:/subs/it's.srt`)
	want := `/mnt/c\:/subs/it\'s.srt`
	if got != want {
		t.Fatalf("escaped = %q, want %q", got, want)
	}
}

func TestBurnUsesRunner(t *testing.T) {
	renderer := NewRenderer("", Options{})
	var gotName string
	renderer.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		return nil
	})

	dest := filepath.Join(t.TempDir(), "out", "proof.mp4")
	if err := renderer.Burn(context.Background(), "/a.mkv", "/a.srt", dest); err != nil {
		t.Fatalf("Burn: %v", err)
	}
	if gotName != "ffmpeg" {
		t.Fatalf("command = %q", gotName)
	}
}

func TestBurnValidatesInputs(t *testing.T) {
	renderer := NewRenderer("ffmpeg", Options{})
	if err := renderer.Burn(context.Background(), "", "/a.srt", "/a.mp4"); err == nil {
		t.Fatal("expected error for missing source")
	}
	if err := renderer.Burn(context.Background(), "/a.mkv", "", "/a.mp4"); err == nil {
		t.Fatal("expected error for missing subtitle path")
	}
}
