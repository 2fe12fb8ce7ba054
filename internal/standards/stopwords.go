package standards

// Orphan stop-sets: single-word conjunctions that must not dangle at the end
// of a cue. Keyed by ISO 639-1 base language.
var orphanStopWords = map[string]map[string]struct{}{
	"is": wordSet("og", "en", "sem", "að", "því", "er", "var"),
}

// Bad line starters: words the line balancer penalizes at the start of a
// second line.
var badLineStarters = map[string]map[string]struct{}{
	"is": wordSet("og", "en", "sem", "að", "eða", "því"),
	"es": wordSet("y", "o", "que", "pero", "de", "en"),
}

// OrphanStopWords returns the orphan-rescue stop-set for a language.
// Languages without a curated set get an empty set, which disables the pass.
func OrphanStopWords(code string) map[string]struct{} {
	if set, ok := orphanStopWords[NormalizeLanguage(code)]; ok {
		return set
	}
	return nil
}

// BadLineStarters returns the line-balancer penalty set for a language.
func BadLineStarters(code string) map[string]struct{} {
	if set, ok := badLineStarters[NormalizeLanguage(code)]; ok {
		return set
	}
	return nil
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
