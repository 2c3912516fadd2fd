package extraction_engine

import (
	"regexp"
	"strings"
)

// label compiles a case-insensitive field pattern. The first capture group is the value.
func label(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// Match returns the trimmed value captured by the first occurrence of re in text.
// Later occurrences of the same label are ignored.
func Match(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
