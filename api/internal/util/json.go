package util

import "strings"

// BraceSpan returns the substring from the first '{' to the last '}'
// inclusive. Prose around a JSON object is dropped; when several objects are
// present the span covers all of them.
func BraceSpan(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return "", false
	}
	return s[start : end+1], true
}
