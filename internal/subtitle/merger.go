package subtitle

import "subweave/internal/standards"

// rescueMerge joins adjacent fragments that are individually too fast to
// read or too short to register, when the merge stays inside the line and
// duration caps. Bounded at std.MergePasses fixed-point passes so a chain of
// distressed fragments cannot cascade into one giant cue.
// Returns the merged list and the number of merges performed.
func rescueMerge(segments []Segment, std standards.Standard) ([]Segment, int) {
	current := segments
	total := 0
	for pass := 0; pass < std.MergePasses; pass++ {
		next, merges := mergeOnce(current, std)
		total += merges
		current = next
		if merges == 0 {
			break
		}
	}
	return current, total
}

func mergeOnce(segments []Segment, std standards.Standard) ([]Segment, int) {
	out := make([]Segment, 0, len(segments))
	merges := 0
	i := 0
	for i < len(segments) {
		if i+1 < len(segments) && shouldMerge(segments[i], segments[i+1], std) {
			out = append(out, mergePair(segments[i], segments[i+1]))
			merges++
			i += 2
			continue
		}
		out = append(out, segments[i])
		i++
	}
	return out, merges
}

func shouldMerge(a, b Segment, std standards.Standard) bool {
	gap := b.Start - a.End
	if gap < std.MergeGapMin || gap > std.MergeGapMax {
		return false
	}
	if !distressed(a, std) && !distressed(b, std) {
		return false
	}
	mergedText := a.Text + " " + b.Text
	if charCount(mergedText) > std.MaxChars() {
		return false
	}
	mergedDuration := b.End - a.Start
	if mergedDuration > std.MaxMergedDuration {
		return false
	}
	mergedCPS := float64(charCount(mergedText)) / mergedDuration
	if mergedCPS <= std.DistressCPS {
		return true
	}
	worse := a.CPS()
	if bCPS := b.CPS(); bCPS > worse {
		worse = bCPS
	}
	return mergedCPS <= worse-std.CPSImprovement
}

func distressed(s Segment, std standards.Standard) bool {
	return s.CPS() > std.DistressCPS || s.Duration() < std.DistressDuration
}

func mergePair(a, b Segment) Segment {
	merged := Segment{
		ID:    a.ID,
		Start: a.Start,
		End:   b.End,
		Text:  a.Text + " " + b.Text,
	}
	if len(a.Words) > 0 || len(b.Words) > 0 {
		words := make([]WordTiming, 0, len(a.Words)+len(b.Words))
		words = append(words, a.Words...)
		words = append(words, b.Words...)
		merged.Words = words
	}
	return merged
}
