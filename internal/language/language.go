// Package language normalizes language identifiers to the ISO 639-1 codes
// the external tools expect.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ToISO2 converts a language identifier ("is", "isl", "is-IS", "Icelandic"
// is not supported) to its two-letter base code. Unparseable values return
// an empty string so callers can omit the flag entirely.
func ToISO2(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}

// DisplayName returns the English display name for a language code,
// falling back to the input when the tag cannot be parsed.
func DisplayName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return value
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return value
}
