package subtitle

import (
	"strings"
	"testing"

	"subweave/internal/standards"
)

func TestCollectQACountsAnomalies(t *testing.T) {
	std := standards.Broadcast()
	policy, _ := standards.PolicyFor("is")
	stopSet := standards.OrphanStopWords("is")

	cues := []Cue{
		// 0.5s, 15 chars: over tight cps and under min duration.
		{Start: 0, End: 0.5, Lines: []string{"hratt hratt brr"}},
		// Overlaps the previous cue and carries an over-long line.
		{Start: 0.4, End: 3.4, Lines: []string{strings.Repeat("a", 50)}},
		// Tight but legal gap, comfortable speed, trailing orphan.
		{Start: 3.45, End: 6.0, Lines: []string{"rólegur texti og"}},
		// 8s: over the maximum duration.
		{Start: 6.2, End: 14.2, Lines: []string{"mjög lengi á skjánum"}},
	}
	input := make([]Segment, 6)

	report := collectQA(input, cues, policy, std, stopSet)

	if report.InputSegments != 6 || report.OutputCues != 4 {
		t.Errorf("counts = %d/%d, want 6/4", report.InputSegments, report.OutputCues)
	}
	if report.OverTightCPS != 1 {
		t.Errorf("OverTightCPS = %d, want 1", report.OverTightCPS)
	}
	if report.UnderMinDuration != 1 {
		t.Errorf("UnderMinDuration = %d, want 1", report.UnderMinDuration)
	}
	if report.OverMaxDuration != 1 {
		t.Errorf("OverMaxDuration = %d, want 1", report.OverMaxDuration)
	}
	if report.LongLines != 1 {
		t.Errorf("LongLines = %d, want 1", report.LongLines)
	}
	if report.Overlaps != 1 {
		t.Errorf("Overlaps = %d, want 1", report.Overlaps)
	}
	if report.TightGap != 1 {
		t.Errorf("TightGap = %d, want 1", report.TightGap)
	}
	if report.TrailingOrphans != 1 {
		t.Errorf("TrailingOrphans = %d, want 1", report.TrailingOrphans)
	}
	if report.MinGap >= 0 {
		t.Errorf("MinGap = %v, want the negative overlap gap", report.MinGap)
	}
}

func TestCollectQASeparatesIdealAndTightBands(t *testing.T) {
	std := standards.Broadcast()
	policy := standards.Policy{IdealCPS: 14, TightCPS: 17}

	cues := []Cue{
		// 15 cps: over ideal, inside tight.
		{Start: 0, End: 2, Lines: []string{strings.Repeat("a", 30)}},
		// 20 cps: over tight, counted once there.
		{Start: 3, End: 5, Lines: []string{strings.Repeat("b", 40)}},
	}
	report := collectQA(nil, cues, policy, std, nil)
	if report.OverIdealCPS != 1 || report.OverTightCPS != 1 {
		t.Errorf("bands = %d/%d, want 1/1", report.OverIdealCPS, report.OverTightCPS)
	}
}

func TestCollectQAMinGapZeroWithoutPairs(t *testing.T) {
	report := collectQA(nil, []Cue{{Start: 0, End: 2, Lines: []string{"einn"}}},
		standards.DefaultPolicy, standards.Broadcast(), nil)
	if report.MinGap != 0 {
		t.Errorf("MinGap = %v, want 0 for a single cue", report.MinGap)
	}
}

func TestCollectQAWordDrift(t *testing.T) {
	cues := []Cue{{
		Start: 0, End: 2.5, Lines: []string{"halló heimur"},
		Words: []WordTiming{{Text: "halló", Start: 0, End: 0.6}, {Text: "heimur", Start: 0.8, End: 1.4}},
	}}
	report := collectQA(nil, cues, standards.DefaultPolicy, standards.Broadcast(), nil)
	if !floatNear(report.MaxWordDrift, 1.1) {
		t.Errorf("MaxWordDrift = %v, want 1.1", report.MaxWordDrift)
	}
}
