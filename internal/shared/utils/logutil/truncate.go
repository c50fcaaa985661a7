package logutil

import (
	"strings"
	"unicode/utf8"
)

// TruncateForLog trims s and cuts it to at most maxLen bytes, appending "..."
// when anything was dropped. The cut never splits a UTF-8 sequence.
func TruncateForLog(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
