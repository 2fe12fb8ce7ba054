package subtitle

import (
	"math"

	"subweave/internal/standards"
)

// QAReport aggregates diagnostics over a finalized cue list. It is written
// alongside the caption artifacts for operational visibility and never feeds
// back into the cue list within the same run.
type QAReport struct {
	InputSegments int `json:"input_segments"`
	OutputCues    int `json:"output_cues"`
	Merges        int `json:"merges"`

	// Reading speed, measured against the applied language policy.
	OverIdealCPS int `json:"over_ideal_cps"`
	OverTightCPS int `json:"over_tight_cps"`

	// Duration anomalies.
	UnderMinDuration int `json:"under_min_duration"`
	OverMaxDuration  int `json:"over_max_duration"`

	// Typesetting anomalies.
	LongLines       int `json:"long_lines"`
	TrailingOrphans int `json:"trailing_orphans"`

	// Inter-cue spacing.
	Overlaps int     `json:"overlaps"`
	TightGap int     `json:"tight_gaps"`
	MinGap   float64 `json:"min_gap"`

	// Divergence between final cue ends and the underlying ASR word ends,
	// when word alignment is present. Zero otherwise.
	MaxWordDrift float64 `json:"max_word_drift"`

	PolicyDefaulted bool `json:"policy_defaulted"`
}

// collectQA computes diagnostic aggregates over the pre-pipeline input and
// the final cue list. Pure aggregation; it alters nothing.
func collectQA(input []Segment, cues []Cue, policy standards.Policy, std standards.Standard, stopSet map[string]struct{}) QAReport {
	report := QAReport{
		InputSegments: len(input),
		OutputCues:    len(cues),
		MinGap:        math.Inf(1),
	}

	texts := make([]string, len(cues))
	for i, cue := range cues {
		texts[i] = cue.Text()

		cps := cue.CPS()
		if cps > policy.TightCPS {
			report.OverTightCPS++
		} else if cps > policy.IdealCPS {
			report.OverIdealCPS++
		}

		if cue.Duration() < std.MinDuration {
			report.UnderMinDuration++
		}
		if cue.Duration() > std.MaxDuration {
			report.OverMaxDuration++
		}
		for _, line := range cue.Lines {
			if charCount(line) > std.MaxCharsPerLine {
				report.LongLines++
			}
		}

		if n := len(cue.Words); n > 0 {
			drift := math.Abs(cue.End - cue.Words[n-1].End)
			if drift > report.MaxWordDrift {
				report.MaxWordDrift = drift
			}
		}

		if i > 0 {
			gap := cue.Start - cues[i-1].End
			if gap < 0 {
				report.Overlaps++
			} else if gap < std.MinGap {
				report.TightGap++
			}
			if gap < report.MinGap {
				report.MinGap = gap
			}
		}
	}

	report.TrailingOrphans = len(findTrailingOrphans(texts, stopSet))

	if math.IsInf(report.MinGap, 1) {
		report.MinGap = 0
	}
	return report
}
