package subtitle

import (
	"strings"

	"subweave/internal/standards"
)

const wordPunctuation = ".,:;!?…\"'»«"

// rescueOrphans moves a dangling stop-word conjunction from the end of each
// cue onto the front of the next one. A cue must keep at least one word, so
// two-word exchanges never empty the donor, and a move never pushes the
// receiver past the cue character budget.
func rescueOrphans(segments []Segment, std standards.Standard, stopSet map[string]struct{}) []Segment {
	if len(stopSet) == 0 {
		return segments
	}
	out := make([]Segment, len(segments))
	copy(out, segments)

	for i := 0; i < len(out)-1; i++ {
		// A cue may end in a run of stop words; move them one at a time so
		// the detector finds nothing on a re-scan.
		for {
			fields := strings.Fields(out[i].Text)
			if len(fields) < 2 {
				break
			}
			last := fields[len(fields)-1]
			key := strings.ToLower(strings.Trim(last, wordPunctuation))
			if _, ok := stopSet[key]; !ok {
				break
			}
			if charCount(out[i+1].Text)+1+charCount(last) > std.MaxChars() {
				break
			}

			out[i].Text = strings.Join(fields[:len(fields)-1], " ")
			out[i+1].Text = last + " " + out[i+1].Text

			if len(out[i].Words) > 0 {
				moved := out[i].Words[len(out[i].Words)-1]
				out[i].Words = cloneWords(out[i].Words[:len(out[i].Words)-1])
				out[i+1].Words = append([]WordTiming{moved}, cloneWords(out[i+1].Words)...)
				if len(out[i].Words) > 0 {
					out[i].End = out[i].Words[len(out[i].Words)-1].End
				}
				out[i+1].Start = moved.Start
			}
		}
	}
	return out
}

// rescueFragments pulls a short sentence-closing fragment back from the
// start of the next cue when the current cue lacks terminal punctuation.
// With word alignment the boundary moves exactly; without it a heuristic
// shift is applied to the adjoining boundary (zero in strict timing mode).
func rescueFragments(segments []Segment, std standards.Standard, shift float64) []Segment {
	out := make([]Segment, len(segments))
	copy(out, segments)

	for i := 0; i < len(out)-1; i++ {
		if endsTerminal(out[i].Text) {
			continue
		}
		nextFields := strings.Fields(out[i+1].Text)
		if len(nextFields) < 2 {
			continue
		}
		fragment := nextFields[0]
		stripped := strings.Trim(fragment, wordPunctuation)
		if charCount(stripped) > std.MaxFragmentLength || !endsTerminal(fragment) {
			continue
		}
		if charCount(out[i].Text)+1+charCount(fragment) > std.MaxChars() {
			continue
		}

		out[i].Text = out[i].Text + " " + fragment
		out[i+1].Text = strings.Join(nextFields[1:], " ")

		if len(out[i+1].Words) > 0 {
			moved := out[i+1].Words[0]
			out[i+1].Words = cloneWords(out[i+1].Words[1:])
			out[i].Words = append(cloneWords(out[i].Words), moved)
			out[i].End = moved.End
			if len(out[i+1].Words) > 0 {
				out[i+1].Start = out[i+1].Words[0].Start
			} else {
				out[i+1].Start = moved.End
			}
			continue
		}

		// No alignment: nudge the adjoining boundary later by the heuristic
		// shift, never past the receiving cue's end.
		out[i].End += shift
		newStart := out[i+1].Start + shift
		if newStart > out[i+1].End {
			newStart = out[i+1].End
		}
		out[i+1].Start = newStart
		if out[i].End < out[i].Start {
			out[i].End = out[i].Start
		}
	}
	return out
}

// endsTerminal reports whether text ends in sentence-terminal punctuation.
func endsTerminal(text string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(text), "\"'»«")
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '?', '!':
		return true
	}
	return false
}

// findTrailingOrphans returns the indexes of cues whose final word is in the
// stop-set. A final word carrying sentence-terminal punctuation closes its
// sentence and never dangles, so it is not counted. Used by the QA collector
// to verify the orphan pass left nothing behind.
func findTrailingOrphans(texts []string, stopSet map[string]struct{}) []int {
	if len(stopSet) == 0 {
		return nil
	}
	var hits []int
	for i, text := range texts {
		if i == len(texts)-1 {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			continue
		}
		last := fields[len(fields)-1]
		if endsTerminal(last) {
			continue
		}
		key := strings.ToLower(strings.Trim(last, wordPunctuation))
		if _, ok := stopSet[key]; ok {
			hits = append(hits, i)
		}
	}
	return hits
}
