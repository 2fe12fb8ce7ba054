package subtitle

import (
	"fmt"

	"subweave/internal/standards"
)

// maxDropRatio is the sanity-check ceiling: if more than this share of the
// usable input segments is net-lost after the full pipeline, the job fails
// rather than ship silently truncated captions.
const maxDropRatio = 0.2

// DropRatioError is the fatal sanity-check failure: the pipeline net-dropped
// more than the allowed share of usable input segments.
type DropRatioError struct {
	Input  int
	Output int
	Merges int
	Ratio  float64
}

func (e *DropRatioError) Error() string {
	return fmt.Sprintf("finalize sanity check: %d of %d segments lost (ratio %.2f, %d merges)",
		e.Input-e.Output-e.Merges, e.Input, e.Ratio, e.Merges)
}

// ErrorKind classifies the failure for queue handling.
func (e *DropRatioError) ErrorKind() string { return "sanity_check" }

// Result is the output of one Finalize call.
type Result struct {
	Cues   []Cue
	Report QAReport

	// Policy actually applied, and whether it was the table default for an
	// unlisted language.
	Policy          standards.Policy
	PolicyDefaulted bool

	// Cue list geometry carried over from Options for the emitters.
	VideoWidth  int
	VideoHeight int
	Framerate   float64
}

// CueList builds the normalized overlay-renderer artifact for this result.
func (r *Result) CueList() CueList {
	return NewCueList(r.Cues, r.VideoWidth, r.VideoHeight, r.Framerate)
}

// Finalize converts translated segments into broadcast-legal cues.
// It is deterministic: identical segments and options yield byte-identical
// emitted artifacts. On sanity-check failure it returns a *DropRatioError
// and no cues; every other input irregularity is recovered locally.
func Finalize(segments []Segment, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	std := opts.Standard

	policy, found := standards.PolicyFor(opts.Language)
	stopSet := standards.OrphanStopWords(opts.Language)
	badStarters := standards.BadLineStarters(opts.Language)

	input := filterInput(segments)
	usable := len(input)

	fragments := splitLong(input, std)
	merged, merges := rescueMerge(fragments, std)
	rescued := rescueOrphans(merged, std, stopSet)
	rescued = rescueFragments(rescued, std, opts.FragmentShift)
	timed := resolveTiming(rescued, policy, std, opts)

	cues := make([]Cue, 0, len(timed))
	for _, seg := range timed {
		cues = append(cues, Cue{
			Start: seg.Start,
			End:   seg.End,
			Lines: balanceLines(seg.Text, std, badStarters),
			Words: seg.Words,
		})
	}

	if usable > 0 {
		effective := len(cues) + merges
		ratio := 1.0 - float64(effective)/float64(usable)
		if ratio > maxDropRatio {
			return nil, &DropRatioError{
				Input:  usable,
				Output: len(cues),
				Merges: merges,
				Ratio:  ratio,
			}
		}
	}

	report := collectQA(input, cues, policy, std, stopSet)
	report.Merges = merges
	report.PolicyDefaulted = !found

	return &Result{
		Cues:            cues,
		Report:          report,
		Policy:          policy,
		PolicyDefaulted: !found,
		VideoWidth:      opts.VideoWidth,
		VideoHeight:     opts.VideoHeight,
		Framerate:       opts.Framerate,
	}, nil
}
