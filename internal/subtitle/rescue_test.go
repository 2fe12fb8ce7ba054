package subtitle

import (
	"strings"
	"testing"

	"subweave/internal/standards"
)

// fullCue builds a text that exactly fills the broadcast cue budget.
func fullCue(t *testing.T) string {
	t.Helper()
	text := strings.TrimSpace(strings.Repeat("hann ", 17))
	if got := charCount(text); got != standards.Broadcast().MaxChars() {
		t.Fatalf("fixture is %d chars, want %d", got, standards.Broadcast().MaxChars())
	}
	return text
}

func floatNear(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

func icelandicStops(t *testing.T) map[string]struct{} {
	t.Helper()
	set := standards.OrphanStopWords("is")
	if len(set) == 0 {
		t.Fatal("icelandic stop-set missing")
	}
	return set
}

func TestRescueOrphansMovesTrailingConjunction(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 2, Text: "Ég fer og"},
		{ID: 2, Start: 2.1, End: 4, Text: "kem aftur"},
	}
	out := rescueOrphans(segs, standards.Broadcast(), icelandicStops(t))
	if out[0].Text != "Ég fer" {
		t.Errorf("donor = %q, want %q", out[0].Text, "Ég fer")
	}
	if out[1].Text != "og kem aftur" {
		t.Errorf("receiver = %q, want %q", out[1].Text, "og kem aftur")
	}
}

func TestRescueOrphansMovesWholeTrailingRun(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 2, Text: "Við förum því og"},
		{ID: 2, Start: 2.1, End: 4, Text: "hann kemur"},
	}
	out := rescueOrphans(segs, standards.Broadcast(), icelandicStops(t))
	if out[0].Text != "Við förum" {
		t.Errorf("donor = %q, want %q", out[0].Text, "Við förum")
	}
	if out[1].Text != "því og hann kemur" {
		t.Errorf("receiver = %q, want %q", out[1].Text, "því og hann kemur")
	}
}

func TestRescueOrphansNeverEmptiesDonor(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 1, Text: "og"},
		{ID: 2, Start: 1.2, End: 3, Text: "svo framvegis"},
	}
	out := rescueOrphans(segs, standards.Broadcast(), icelandicStops(t))
	if out[0].Text != "og" || out[1].Text != "svo framvegis" {
		t.Errorf("single-word donor must stay put: %q / %q", out[0].Text, out[1].Text)
	}
}

func TestRescueOrphansIgnoresLastCue(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 2, Text: "Hann sagði já"},
		{ID: 2, Start: 2.2, End: 4, Text: "og fór svo og"},
	}
	out := rescueOrphans(segs, standards.Broadcast(), icelandicStops(t))
	if out[1].Text != "og fór svo og" {
		t.Errorf("last cue must not donate: %q", out[1].Text)
	}
}

func TestRescueOrphansMovesWordTiming(t *testing.T) {
	segs := []Segment{
		{
			ID: 1, Start: 0, End: 2, Text: "Ég fer og",
			Words: []WordTiming{
				{Text: "Ég", Start: 0, End: 0.5},
				{Text: "fer", Start: 0.6, End: 1.2},
				{Text: "og", Start: 1.8, End: 2.0},
			},
		},
		{
			ID: 2, Start: 2.1, End: 4, Text: "kem aftur",
			Words: []WordTiming{
				{Text: "kem", Start: 2.1, End: 2.6},
				{Text: "aftur", Start: 2.7, End: 3.4},
			},
		},
	}
	out := rescueOrphans(segs, standards.Broadcast(), icelandicStops(t))
	if out[0].End != 1.2 {
		t.Errorf("donor end should track last remaining word, got %v", out[0].End)
	}
	if out[1].Start != 1.8 {
		t.Errorf("receiver start should track moved word, got %v", out[1].Start)
	}
	if len(out[0].Words) != 2 || len(out[1].Words) != 3 {
		t.Errorf("word arrays not moved: %d/%d", len(out[0].Words), len(out[1].Words))
	}
	if out[1].Words[0].Text != "og" {
		t.Errorf("moved word should lead receiver, got %q", out[1].Words[0].Text)
	}
}

func TestRescueOrphansDisabledWithoutStopSet(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 2, Text: "I will go and"},
		{ID: 2, Start: 2.1, End: 4, Text: "come back"},
	}
	out := rescueOrphans(segs, standards.Broadcast(), standards.OrphanStopWords("fr"))
	if out[0].Text != "I will go and" {
		t.Errorf("uncurated language must be a no-op, got %q", out[0].Text)
	}
}

func TestRescueOrphansSkipsFullReceiver(t *testing.T) {
	full := fullCue(t)
	segs := []Segment{
		{ID: 1, Start: 0, End: 2, Text: "Hann fer og"},
		{ID: 2, Start: 2.1, End: 7, Text: full},
	}
	out := rescueOrphans(segs, standards.Broadcast(), icelandicStops(t))
	if out[0].Text != "Hann fer og" {
		t.Errorf("donor = %q, want untouched", out[0].Text)
	}
	if out[1].Text != full {
		t.Errorf("receiver grew past the cue budget: %d chars", charCount(out[1].Text))
	}
}

func TestRescueFragmentsPullsSentenceCloserBack(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 1.5, Text: "Hann kom"},
		{ID: 2, Start: 2, End: 4, Text: "heim. Svo fór hann"},
	}
	out := rescueFragments(segs, standards.Broadcast(), 0.35)
	if out[0].Text != "Hann kom heim." {
		t.Errorf("receiver = %q, want %q", out[0].Text, "Hann kom heim.")
	}
	if out[1].Text != "Svo fór hann" {
		t.Errorf("donor = %q, want %q", out[1].Text, "Svo fór hann")
	}
	if !floatNear(out[0].End, 1.85) {
		t.Errorf("receiver end should shift by heuristic, got %v", out[0].End)
	}
	if !floatNear(out[1].Start, 2.35) {
		t.Errorf("donor start should shift by heuristic, got %v", out[1].Start)
	}
}

func TestRescueFragmentsUsesWordTimingWhenPresent(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 1.5, Text: "Hann kom"},
		{
			ID: 2, Start: 2, End: 4, Text: "heim. Svo fór hann",
			Words: []WordTiming{
				{Text: "heim.", Start: 2.0, End: 2.4},
				{Text: "Svo", Start: 2.6, End: 2.9},
				{Text: "fór", Start: 3.0, End: 3.3},
				{Text: "hann", Start: 3.4, End: 4.0},
			},
		},
	}
	out := rescueFragments(segs, standards.Broadcast(), 0.35)
	if out[0].End != 2.4 {
		t.Errorf("receiver end should be the moved word's end, got %v", out[0].End)
	}
	if out[1].Start != 2.6 {
		t.Errorf("donor start should be its first remaining word, got %v", out[1].Start)
	}
	if len(out[0].Words) != 1 || out[0].Words[0].Text != "heim." {
		t.Errorf("moved word timing missing from receiver: %+v", out[0].Words)
	}
}

func TestRescueFragmentsSkipsTerminalAndLongFragments(t *testing.T) {
	tests := []struct {
		name  string
		first string
		next  string
	}{
		{"current already terminal", "Hann kom heim.", "Svo fór hann."},
		{"fragment too long", "Hann kom", "heimili. Svo fór hann"},
		{"fragment not terminal", "Hann kom", "heim og fór svo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := []Segment{
				{ID: 1, Start: 0, End: 1.5, Text: tt.first},
				{ID: 2, Start: 2, End: 4, Text: tt.next},
			}
			out := rescueFragments(segs, standards.Broadcast(), 0.35)
			if out[0].Text != tt.first || out[1].Text != tt.next {
				t.Errorf("expected no move, got %q / %q", out[0].Text, out[1].Text)
			}
		})
	}
}

func TestRescueFragmentsSkipsFullReceiver(t *testing.T) {
	full := fullCue(t)
	segs := []Segment{
		{ID: 1, Start: 0, End: 6, Text: full},
		{ID: 2, Start: 6.5, End: 9, Text: "er. Svo fór hann"},
	}
	out := rescueFragments(segs, standards.Broadcast(), 0.35)
	if out[0].Text != full {
		t.Errorf("receiver grew past the cue budget: %d chars", charCount(out[0].Text))
	}
	if out[1].Text != "er. Svo fór hann" {
		t.Errorf("donor = %q, want untouched", out[1].Text)
	}
}

func TestEndsTerminal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Hann fór.", true},
		{"Hvað?", true},
		{"Nei!", true},
		{"\"Hann fór.\"", true},
		{"Hann fór", false},
		{"Hann fór,", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := endsTerminal(tt.text); got != tt.want {
			t.Errorf("endsTerminal(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFindTrailingOrphansSkipsFinalCue(t *testing.T) {
	texts := []string{"Hann fór og", "kom svo aftur og"}
	hits := findTrailingOrphans(texts, icelandicStops(t))
	if len(hits) != 1 || hits[0] != 0 {
		t.Errorf("expected only index 0 flagged, got %v", hits)
	}
}

func TestFindTrailingOrphansIgnoresSentenceEnders(t *testing.T) {
	// "er" is in the stop-set, but "er." closes its sentence. Fragment rescue
	// produces exactly this shape, and it must not count as residual.
	texts := []string{"Þetta kom er.", "Svo fór hann"}
	if hits := findTrailingOrphans(texts, icelandicStops(t)); len(hits) != 0 {
		t.Errorf("sentence-terminal final word flagged as orphan: %v", hits)
	}
}
