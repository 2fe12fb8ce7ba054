package standards

import (
	"strings"

	"golang.org/x/text/language"
)

// Policy is the reading-speed target for one subtitle language.
// IdealCPS is the comfortable characters-per-second rate the timing resolver
// extends cues toward; TightCPS is the rate above which a cue is flagged.
type Policy struct {
	IdealCPS float64
	TightCPS float64
}

// DefaultPolicy applies to languages without a table entry.
var DefaultPolicy = Policy{IdealCPS: 17.0, TightCPS: 20.0}

var policies = map[string]Policy{
	"is": {IdealCPS: 14.0, TightCPS: 17.0},
	"en": {IdealCPS: 17.0, TightCPS: 20.0},
	"es": {IdealCPS: 18.0, TightCPS: 21.0},
}

// PolicyFor resolves the timing policy for a language code. Any parseable
// tag resolves through its base language ("isl", "is-IS" -> "is").
// The second return is false when the default policy was applied.
func PolicyFor(code string) (Policy, bool) {
	base := NormalizeLanguage(code)
	if policy, ok := policies[base]; ok {
		return policy, true
	}
	return DefaultPolicy, false
}

// NormalizeLanguage reduces any parseable language tag to its ISO 639-1 base
// ("isl" -> "is", "en-GB" -> "en"). Unparseable input is lowercased as-is.
func NormalizeLanguage(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	base, conf := tag.Base()
	if conf == language.No {
		return trimmed
	}
	return base.String()
}
