package subtitle

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// WordTiming is one word with ASR alignment timestamps.
type WordTiming struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is the engine's input unit: one timestamped span of translated
// text. Words is optional; when absent, timing-dependent operations fall
// back to proportional interpolation.
type Segment struct {
	ID    int          `json:"id"`
	Start float64      `json:"start"`
	End   float64      `json:"end"`
	Text  string       `json:"text"`
	Words []WordTiming `json:"words,omitempty"`
}

// Duration returns the segment's span in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// CPS returns the segment's characters-per-second reading rate.
// Degenerate durations report an arbitrarily high rate so they register
// as distressed rather than dividing by zero.
func (s Segment) CPS() float64 {
	d := s.Duration()
	if d <= 0 {
		return 1e9
	}
	return float64(charCount(s.Text)) / d
}

func charCount(text string) int {
	return utf8.RuneCountInString(text)
}

var musicTokenRe = regexp.MustCompile(`(?i)^(music|song|singing|choir|instrumental)$`)

// isMusicOnly reports whether a segment's text is a music-only sentinel:
// a single token matching music|song|singing|choir|instrumental, optionally
// wrapped in brackets, parentheses, or note glyphs.
func isMusicOnly(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	trimmed = strings.Trim(trimmed, "♪♫*")
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.Trim(trimmed, "[]()")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" || strings.ContainsAny(trimmed, " \t") {
		return false
	}
	return musicTokenRe.MatchString(trimmed)
}

// filterInput drops empty and music-only segments before splitting.
func filterInput(segments []Segment) []Segment {
	kept := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		if isMusicOnly(seg.Text) {
			continue
		}
		seg.Text = strings.TrimSpace(seg.Text)
		kept = append(kept, seg)
	}
	return kept
}

// cloneWords copies a word timing slice so stages never alias input storage.
func cloneWords(words []WordTiming) []WordTiming {
	if len(words) == 0 {
		return nil
	}
	cp := make([]WordTiming, len(words))
	copy(cp, words)
	return cp
}
