package subtitle

import (
	"strings"

	"subweave/internal/standards"
)

const clausePunctuation = ".,:;!?"

// balanceLines splits finalized cue text into at most two lines inside the
// per-line character cap. Candidate split points near the midpoint are
// scored for punctuation affinity, balance, and language-specific bad line
// starters; the best-scoring candidate wins.
func balanceLines(text string, std standards.Standard, badStarters map[string]struct{}) []string {
	runes := []rune(text)
	if len(runes) <= std.MaxCharsPerLine {
		return []string{text}
	}

	mid := len(runes) / 2
	lo := mid - std.BalanceWindow
	if lo < 1 {
		lo = 1
	}
	hi := mid + std.BalanceWindow
	if hi > len(runes)-1 {
		hi = len(runes) - 1
	}

	bestOffset := -1
	bestScore := 0.0
	for i := lo; i <= hi; i++ {
		if runes[i] != ' ' {
			continue
		}
		leftLen := i
		rightLen := len(runes) - i - 1
		if leftLen > std.MaxCharsPerLine || rightLen > std.MaxCharsPerLine {
			continue
		}

		score := float64(std.BalanceWindow - abs(i-mid))
		if strings.ContainsRune(clausePunctuation, runes[i-1]) {
			score += 20
		}
		if isBadStarter(runes[i+1:], badStarters) {
			score -= 20
		}
		imbalance := abs(leftLen - rightLen)
		if imbalance > 40 {
			imbalance = 40
		}
		score -= 0.6 * float64(imbalance)
		if leftLen < std.MinBalancedLine || rightLen < std.MinBalancedLine {
			score -= 15
		}

		if bestOffset < 0 || score > bestScore {
			bestOffset = i
			bestScore = score
		}
	}

	if bestOffset >= 0 {
		return []string{
			strings.TrimSpace(string(runes[:bestOffset])),
			strings.TrimSpace(string(runes[bestOffset+1:])),
		}
	}
	return fallbackSplit(runes, std)
}

// fallbackSplit handles texts with no scorable candidate: hard split at the
// line cap or midpoint, snapped backward to the nearest space, or a raw
// character cut as the last resort.
func fallbackSplit(runes []rune, std standards.Standard) []string {
	cut := std.MaxCharsPerLine
	if mid := len(runes) / 2; mid < cut {
		cut = mid
	}
	for i := cut; i > 0; i-- {
		if runes[i] == ' ' {
			return []string{
				strings.TrimSpace(string(runes[:i])),
				strings.TrimSpace(string(runes[i+1:])),
			}
		}
	}
	return []string{string(runes[:cut]), string(runes[cut:])}
}

// isBadStarter reports whether the first word of the remaining runes is in
// the language's bad-line-starter set.
func isBadStarter(rest []rune, badStarters map[string]struct{}) bool {
	if len(badStarters) == 0 {
		return false
	}
	fields := strings.Fields(string(rest))
	if len(fields) == 0 {
		return false
	}
	key := strings.ToLower(strings.Trim(fields[0], wordPunctuation))
	_, ok := badStarters[key]
	return ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
