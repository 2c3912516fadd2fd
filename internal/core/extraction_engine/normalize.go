package extraction_engine

import (
	"strconv"
	"strings"
)

// Normalize strips thousands separators and parses the rest as a base-10 integer.
// Callers only pass digit-and-comma runs captured by a pattern; a run too large
// for an int is reported as absent.
func Normalize(digits string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}
