package subtitle

import "strings"

// Cue is one finalized subtitle: balanced lines plus resolved timing.
type Cue struct {
	Start float64      `json:"start"`
	End   float64      `json:"end"`
	Lines []string     `json:"lines"`
	Words []WordTiming `json:"-"`
}

// Text joins the cue's lines with a space for measurement and rescue
// detection.
func (c Cue) Text() string {
	return strings.Join(c.Lines, " ")
}

// Duration returns the cue's on-screen time in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// CPS returns the cue's characters-per-second reading rate.
func (c Cue) CPS() float64 {
	d := c.Duration()
	if d <= 0 {
		return 1e9
	}
	return float64(charCount(c.Text())) / d
}
