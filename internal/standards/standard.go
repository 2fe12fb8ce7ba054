package standards

// Standard captures the typesetting and timing constraints of one delivery
// specification. All durations are in seconds.
type Standard struct {
	// Line shape.
	MaxCharsPerLine int
	MaxLines        int

	// Cue durations.
	MinDuration       float64
	MaxDuration       float64
	MaxMergedDuration float64
	MinGap            float64

	// CPS rescue merge thresholds.
	MergeGapMin      float64
	MergeGapMax      float64
	DistressCPS      float64
	DistressDuration float64
	CPSImprovement   float64
	MergePasses      int

	// Split and balance search windows (characters around the midpoint).
	SplitWindow     int
	BalanceWindow   int
	MinBalancedLine int

	// Fragment rescue: maximum length of a leading fragment worth pulling back.
	MaxFragmentLength int
}

// Broadcast returns the default delivery standard: 2x42 characters,
// 1.0s minimum cue, 0.1s minimum gap.
func Broadcast() Standard {
	return Standard{
		MaxCharsPerLine:   42,
		MaxLines:          2,
		MinDuration:       1.0,
		MaxDuration:       7.0,
		MaxMergedDuration: 6.8,
		MinGap:            0.1,
		MergeGapMin:       -0.05,
		MergeGapMax:       0.35,
		DistressCPS:       20.0,
		DistressDuration:  0.9,
		CPSImprovement:    0.5,
		MergePasses:       2,
		SplitWindow:       20,
		BalanceWindow:     15,
		MinBalancedLine:   12,
		MaxFragmentLength: 4,
	}
}

// Teletext returns a tighter 2x37 variant used by teletext-derived delivery
// targets. Only the line cap differs from the broadcast default.
func Teletext() Standard {
	s := Broadcast()
	s.MaxCharsPerLine = 37
	return s
}

// MaxChars returns the total character budget of a cue (all lines).
func (s Standard) MaxChars() int {
	return s.MaxCharsPerLine * s.MaxLines
}
