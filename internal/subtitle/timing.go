package subtitle

import (
	"math"

	"subweave/internal/standards"
)

// resolveTiming computes each cue's final on-screen duration. Balanced mode
// extends toward the ideal reading time; strict mode anchors to the last
// aligned word. Either way a cue never crosses the next cue's start minus
// the minimum gap, and never collapses below the hard duration floor.
// The resolver always produces output; unreadably fast cues are flagged by
// the QA collector, not rejected.
func resolveTiming(segments []Segment, policy standards.Policy, std standards.Standard, opts Options) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)

	for i := range out {
		ceiling := math.Inf(1)
		if i+1 < len(out) {
			ceiling = out[i+1].Start - std.MinGap
		}

		var target float64
		if opts.Mode == TimingStrict {
			anchor := out[i].End
			if n := len(out[i].Words); n > 0 {
				anchor = out[i].Words[n-1].End
			}
			target = anchor + opts.MaxExtension
		} else {
			required := float64(charCount(out[i].Text)) / policy.IdealCPS
			target = out[i].Start + max3(out[i].Duration(), std.MinDuration, required)
		}

		end := math.Min(target, ceiling)
		end = math.Max(end, out[i].Start+minCueDuration)
		out[i].End = end
	}

	return clampOverlaps(out)
}

// clampOverlaps enforces monotonic non-overlap after resolution. When
// upstream timing was broken beyond repair the gap is clamped to exactly
// zero, never negative.
func clampOverlaps(segments []Segment) []Segment {
	for i := 1; i < len(segments); i++ {
		if segments[i].Start < segments[i-1].End {
			segments[i].Start = segments[i-1].End
		}
		if segments[i].End < segments[i].Start+minCueDuration {
			segments[i].End = segments[i].Start + minCueDuration
		}
	}
	return segments
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
