package subtitle

import (
	"testing"

	"subweave/internal/standards"
)

func balancedOpts() Options {
	return Options{Language: "is", Mode: TimingBalanced}.withDefaults()
}

func TestResolveTimingExtendsToReadingSpeed(t *testing.T) {
	policy, _ := standards.PolicyFor("is")
	segs := []Segment{{ID: 1, Start: 0, End: 1.0, Text: "1234567890123456789012345678"}} // 28 chars

	out := resolveTiming(segs, policy, standards.Broadcast(), balancedOpts())
	// 28 chars at 14 cps needs 2.0s.
	if !floatNear(out[0].End, 2.0) {
		t.Errorf("end = %v, want 2.0", out[0].End)
	}
}

func TestResolveTimingKeepsLongerOriginalDuration(t *testing.T) {
	policy, _ := standards.PolicyFor("is")
	segs := []Segment{{ID: 1, Start: 0, End: 4.0, Text: "stutt"}}

	out := resolveTiming(segs, policy, standards.Broadcast(), balancedOpts())
	if !floatNear(out[0].End, 4.0) {
		t.Errorf("balanced mode must never shorten, got end %v", out[0].End)
	}
}

func TestResolveTimingRespectsNextCueCeiling(t *testing.T) {
	policy, _ := standards.PolicyFor("is")
	segs := []Segment{
		{ID: 1, Start: 0, End: 1.0, Text: "123456789012345678901234567890123456789012"}, // wants 3.0s
		{ID: 2, Start: 2.0, End: 4.0, Text: "næsti texti"},
	}

	out := resolveTiming(segs, policy, standards.Broadcast(), balancedOpts())
	if !floatNear(out[0].End, 1.9) {
		t.Errorf("end = %v, want ceiling 1.9", out[0].End)
	}
}

func TestResolveTimingEnforcesDurationFloor(t *testing.T) {
	policy, _ := standards.PolicyFor("is")
	segs := []Segment{
		{ID: 1, Start: 1.0, End: 1.0, Text: "hæ"},
		{ID: 2, Start: 1.0, End: 2.0, Text: "halló aftur"},
	}

	out := resolveTiming(segs, policy, standards.Broadcast(), balancedOpts())
	if out[0].End <= out[0].Start {
		t.Errorf("degenerate cue must get a positive duration, got [%v,%v]", out[0].Start, out[0].End)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Start < out[i-1].End {
			t.Errorf("cues %d and %d overlap: %v < %v", i-1, i, out[i].Start, out[i-1].End)
		}
	}
}

func TestResolveTimingStrictAnchorsToLastWord(t *testing.T) {
	policy, _ := standards.PolicyFor("is")
	opts := Options{Language: "is", Mode: TimingStrict}.withDefaults()
	segs := []Segment{{
		ID: 1, Start: 0, End: 2.0, Text: "halló heimur",
		Words: []WordTiming{
			{Text: "halló", Start: 0, End: 0.6},
			{Text: "heimur", Start: 0.8, End: 1.4},
		},
	}}

	out := resolveTiming(segs, policy, standards.Broadcast(), opts)
	if !floatNear(out[0].End, 1.7) {
		t.Errorf("strict end = %v, want last word end + extension 1.7", out[0].End)
	}
}

func TestResolveTimingStrictFallsBackToSegmentEnd(t *testing.T) {
	policy, _ := standards.PolicyFor("is")
	opts := Options{Language: "is", Mode: TimingStrict}.withDefaults()
	segs := []Segment{{ID: 1, Start: 0, End: 2.0, Text: "halló heimur"}}

	out := resolveTiming(segs, policy, standards.Broadcast(), opts)
	if !floatNear(out[0].End, 2.3) {
		t.Errorf("strict end without alignment = %v, want 2.3", out[0].End)
	}
}

func TestClampOverlapsZeroesBrokenGaps(t *testing.T) {
	segs := []Segment{
		{ID: 1, Start: 0, End: 3.0, Text: "fyrsti"},
		{ID: 2, Start: 2.5, End: 4.0, Text: "annar"},
	}
	out := clampOverlaps(segs)
	if out[1].Start != out[0].End {
		t.Errorf("overlap must clamp to zero gap, got start %v vs end %v", out[1].Start, out[0].End)
	}
	if out[1].End < out[1].Start+minCueDuration {
		t.Errorf("clamped cue lost its duration floor: [%v,%v]", out[1].Start, out[1].End)
	}
}
