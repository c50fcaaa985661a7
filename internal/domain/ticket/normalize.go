package ticket

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Any scheme://... token, mailto addresses, and bare http... tokens.
var linkPattern = regexp.MustCompile(`[a-z][a-z0-9+.-]*://\S+|mailto:\S+|http\S+`)

// NormalizeText prepares free text for the classifier: lowercase, links
// removed, only ASCII letters, digits and single spaces kept.
//
// Links are stripped a second time after the character filter because
// dropping punctuation can glue a fresh "http..." token together
// ("h.ttps" -> "https"). The second pass keeps the function idempotent.
func NormalizeText(s string) string {
	// cases.Caser keeps state, so one per call.
	s = cases.Lower(language.Und).String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
	s = linkPattern.ReplaceAllString(s, "")
	s = strings.Map(keepClassifierRune, s)
	s = linkPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func keepClassifierRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
		return r
	default:
		return -1
	}
}
