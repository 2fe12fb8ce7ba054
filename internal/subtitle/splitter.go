package subtitle

import (
	"strings"

	"subweave/internal/standards"
)

// splitLong breaks every segment whose text exceeds the two-line character
// budget into fragments that fit. Fragments re-enter an explicit work queue
// rather than the call stack, so a segment may end up as three or more
// pieces.
func splitLong(segments []Segment, std standards.Standard) []Segment {
	maxChars := std.MaxChars()
	queue := make([]Segment, len(segments))
	copy(queue, segments)

	out := make([]Segment, 0, len(segments))
	for len(queue) > 0 {
		seg := queue[0]
		queue = queue[1:]

		if charCount(seg.Text) <= maxChars {
			out = append(out, seg)
			continue
		}

		left, right := splitSegment(seg, std.SplitWindow)
		// Both halves go back through the queue; either may still be long.
		queue = append([]Segment{left, right}, queue...)
	}
	return out
}

// splitSegment cuts one overlong segment at the best split point near its
// midpoint and derives the boundary timestamp from word alignment when
// available, otherwise by linear interpolation.
func splitSegment(seg Segment, window int) (Segment, Segment) {
	runes := []rune(seg.Text)
	offset, skip := findSplitOffset(runes, window)

	leftText := strings.TrimSpace(string(runes[:offset]))
	rightText := strings.TrimSpace(string(runes[offset+skip:]))

	boundary := boundaryTime(seg, offset)
	leftWords, rightWords := splitWords(seg.Words, offset)

	left := Segment{ID: seg.ID, Start: seg.Start, End: boundary, Text: leftText, Words: leftWords}
	right := Segment{ID: seg.ID, Start: boundary, End: seg.End, Text: rightText, Words: rightWords}
	return left, right
}

// findSplitOffset picks the split position within a window around the text
// midpoint. Returns the rune offset where the right half begins relative to
// the cut, plus how many runes at the cut are dropped (the separator).
// Preference order: sentence break, clause break, any space, hard cut.
func findSplitOffset(runes []rune, window int) (offset, skip int) {
	mid := len(runes) / 2
	lo := mid - window
	if lo < 1 {
		lo = 1
	}
	hi := mid + window
	if hi > len(runes)-1 {
		hi = len(runes) - 1
	}

	// Last ". " in the window: keep the period on the left, drop the space.
	if at := lastPattern(runes, lo, hi, '.', ' '); at >= 0 {
		return at + 1, 1
	}
	if at := lastPattern(runes, lo, hi, ',', ' '); at >= 0 {
		return at + 1, 1
	}
	for i := hi; i >= lo; i-- {
		if runes[i] == ' ' {
			return i, 1
		}
	}
	// No space anywhere near the midpoint: hard character split.
	return mid, 0
}

// lastPattern returns the highest index in [lo, hi] where runes[i] == a and
// runes[i+1] == b, or -1.
func lastPattern(runes []rune, lo, hi int, a, b rune) int {
	for i := hi; i >= lo; i-- {
		if i+1 < len(runes) && runes[i] == a && runes[i+1] == b {
			return i
		}
	}
	return -1
}

// boundaryTime computes the timestamp of a split at the given rune offset.
// With word alignment the boundary is the end of the word covering the
// offset; without it, time is interpolated proportionally.
func boundaryTime(seg Segment, offset int) float64 {
	if word, ok := wordAtOffset(seg.Words, offset); ok {
		return word.End
	}
	total := charCount(seg.Text)
	if total == 0 {
		return seg.Start
	}
	return seg.Start + seg.Duration()*float64(offset)/float64(total)
}

// wordAtOffset finds the word whose character span covers the rune offset,
// counting one separating space between words.
func wordAtOffset(words []WordTiming, offset int) (WordTiming, bool) {
	if len(words) == 0 {
		return WordTiming{}, false
	}
	covered := 0
	for _, word := range words {
		covered += charCount(word.Text)
		if covered >= offset {
			return word, true
		}
		covered++ // separating space
	}
	return words[len(words)-1], true
}

// splitWords partitions a word timing slice at the rune offset.
func splitWords(words []WordTiming, offset int) ([]WordTiming, []WordTiming) {
	if len(words) == 0 {
		return nil, nil
	}
	covered := 0
	for i, word := range words {
		covered += charCount(word.Text)
		if covered >= offset {
			return cloneWords(words[:i+1]), cloneWords(words[i+1:])
		}
		covered++
	}
	return cloneWords(words), nil
}
