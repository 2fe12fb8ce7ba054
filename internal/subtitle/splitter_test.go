package subtitle

import (
	"strings"
	"testing"

	"subweave/internal/standards"
)

func TestSplitLongLeavesShortSegmentsAlone(t *testing.T) {
	segs := []Segment{{ID: 1, Start: 0, End: 2, Text: "Stutt setning."}}
	out := splitLong(segs, standards.Broadcast())
	if len(out) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(out))
	}
	if out[0].Text != "Stutt setning." {
		t.Fatalf("text changed: %q", out[0].Text)
	}
}

func TestSplitLongHundredCharsIntoTwoContinuousFragments(t *testing.T) {
	text := strings.Repeat("a", 49) + " " + strings.Repeat("b", 50)
	segs := []Segment{{ID: 1, Start: 0, End: 5, Text: text}}

	out := splitLong(segs, standards.Broadcast())
	if len(out) != 2 {
		t.Fatalf("expected exactly 2 fragments, got %d", len(out))
	}
	for _, seg := range out {
		if charCount(seg.Text) > 84 {
			t.Errorf("fragment exceeds budget: %d chars", charCount(seg.Text))
		}
	}
	if out[0].Start != 0 || out[1].End != 5 {
		t.Errorf("span not preserved: [%v,%v] [%v,%v]", out[0].Start, out[0].End, out[1].Start, out[1].End)
	}
	if out[0].End != out[1].Start {
		t.Errorf("fragments not continuous: left ends %v, right starts %v", out[0].End, out[1].Start)
	}
}

func TestSplitLongPrefersSentenceBreak(t *testing.T) {
	left := strings.Repeat("a", 44)
	right := strings.Repeat("b", 44)
	text := left + ". " + right
	segs := []Segment{{ID: 1, Start: 0, End: 9, Text: text}}

	out := splitLong(segs, standards.Broadcast())
	if len(out) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(out))
	}
	if !strings.HasSuffix(out[0].Text, ".") {
		t.Errorf("expected left fragment to keep the period, got %q", out[0].Text)
	}
	if out[1].Text != right {
		t.Errorf("unexpected right fragment %q", out[1].Text)
	}
}

func TestSplitLongUsesWordBoundaryTiming(t *testing.T) {
	words := []WordTiming{
		{Text: strings.Repeat("a", 44), Start: 0, End: 2.2},
		{Text: strings.Repeat("b", 44), Start: 2.6, End: 5},
	}
	text := words[0].Text + " " + words[1].Text
	segs := []Segment{{ID: 1, Start: 0, End: 5, Text: text, Words: words}}

	out := splitLong(segs, standards.Broadcast())
	if len(out) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(out))
	}
	if out[0].End != 2.2 {
		t.Errorf("boundary should be covering word end 2.2, got %v", out[0].End)
	}
	if len(out[0].Words) != 1 || len(out[1].Words) != 1 {
		t.Errorf("word arrays not partitioned: %d/%d", len(out[0].Words), len(out[1].Words))
	}
}

func TestSplitLongHardSplitsUnbrokenText(t *testing.T) {
	text := strings.Repeat("x", 90)
	segs := []Segment{{ID: 1, Start: 0, End: 3, Text: text}}

	out := splitLong(segs, standards.Broadcast())
	if len(out) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(out))
	}
	if got := charCount(out[0].Text) + charCount(out[1].Text); got != 90 {
		t.Errorf("hard split lost characters: %d", got)
	}
}

func TestSplitLongProducesThreeFragmentsWhenNeeded(t *testing.T) {
	// Three 80-char sentences: one split leaves halves still over budget.
	sentence := strings.Repeat("orð ", 19) + "orð." // 80 chars
	text := sentence + " " + sentence + " " + sentence
	segs := []Segment{{ID: 1, Start: 0, End: 12, Text: text}}

	out := splitLong(segs, standards.Broadcast())
	if len(out) < 3 {
		t.Fatalf("expected at least 3 fragments, got %d", len(out))
	}
	for i, seg := range out {
		if charCount(seg.Text) > 84 {
			t.Errorf("fragment %d exceeds budget: %d chars", i, charCount(seg.Text))
		}
	}
	if out[0].Start != 0 || out[len(out)-1].End != 12 {
		t.Errorf("overall span not preserved")
	}
}

func TestSplitLongDoesNotMutateInput(t *testing.T) {
	text := strings.Repeat("a", 49) + " " + strings.Repeat("b", 50)
	segs := []Segment{{ID: 1, Start: 0, End: 5, Text: text}}
	_ = splitLong(segs, standards.Broadcast())
	if segs[0].Text != text || segs[0].End != 5 {
		t.Fatal("input segment mutated")
	}
}
