package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Verdict is the outcome of the language heuristic.
type Verdict int

const (
	// Unknown means the text carried no decisive marker.
	Unknown Verdict = iota
	// English means the text contains common English function words.
	English
	// NotEnglish means the text contains Spanish-only characters.
	NotEnglish
)

func (v Verdict) String() string {
	switch v {
	case English:
		return "english"
	case NotEnglish:
		return "not-english"
	default:
		return "unknown"
	}
}

var (
	lowerCaser = cases.Lower(language.Und)

	spanishMarkers = "áéíóúñ¿¡"
	englishWords   = []string{" the ", " and ", " you ", " is ", " are ", " i "}
)

// DetectEnglish classifies text by marker characters and words. Spanish-only
// characters win over English words.
func DetectEnglish(text string) Verdict {
	lowered := lowerCaser.String(text)
	if strings.ContainsAny(lowered, spanishMarkers) {
		return NotEnglish
	}
	for _, word := range englishWords {
		if strings.Contains(lowered, word) {
			return English
		}
	}
	return Unknown
}

// NeedsTranslation reports whether a line should be sent to a translator.
// Only lines that are clearly not English are skipped.
func NeedsTranslation(text string) bool {
	return DetectEnglish(text) != NotEnglish
}

// LanguageName turns a language tag such as "es", "spa", or "pt-BR" into its
// English display name. Anything that is not a known tag, including names
// that are already spelled out, is returned trimmed but otherwise unchanged.
func LanguageName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.ContainsRune(value, ' ') {
		return value
	}
	tag, err := language.Parse(value)
	if err != nil {
		return value
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return value
}
