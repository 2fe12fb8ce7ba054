package subtitle

import "subweave/internal/standards"

// TimingMode selects how the timing resolver extends cue durations.
type TimingMode string

const (
	// TimingBalanced extends cues toward the ideal reading speed.
	TimingBalanced TimingMode = "balanced"
	// TimingStrict anchors cue ends to aligned word timing for lip-sync
	// fidelity at the cost of reading speed.
	TimingStrict TimingMode = "strict"
)

// Tuned boundary heuristics. Overridable through Options; named here so the
// literals appear exactly once.
const (
	defaultFragmentShift = 0.35
	defaultMaxExtension  = 0.30
	minCueDuration       = 0.01
)

// Options configures one Finalize invocation.
type Options struct {
	// Standard holds the delivery constraints; zero value means the
	// broadcast default.
	Standard standards.Standard

	// Language is the target-language code used for the timing policy,
	// orphan stop-set, and bad-line-starter lookups.
	Language string

	// Mode selects balanced (default) or strict timing.
	Mode TimingMode

	// MaxExtension bounds how far strict mode extends past the last
	// aligned word. Zero means the default.
	MaxExtension float64

	// FragmentShift is the heuristic boundary shift used by fragment
	// rescue when word alignment is missing. Zero means the default in
	// balanced mode; strict mode forces zero.
	FragmentShift float64

	// Cue list artifact geometry for the overlay renderer.
	VideoWidth  int
	VideoHeight int
	Framerate   float64
}

func (o Options) withDefaults() Options {
	if o.Standard.MaxCharsPerLine == 0 {
		o.Standard = standards.Broadcast()
	}
	if o.Mode == "" {
		o.Mode = TimingBalanced
	}
	if o.MaxExtension == 0 {
		o.MaxExtension = defaultMaxExtension
	}
	switch {
	case o.Mode == TimingStrict:
		o.FragmentShift = 0
	case o.FragmentShift == 0:
		o.FragmentShift = defaultFragmentShift
	}
	return o
}
