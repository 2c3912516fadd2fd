package extraction_engine

import (
	"strconv"
	"strings"
)

// SplitBaths decomposes a "full.half" bathroom count. Anything other than two
// integer groups around a single dot yields (nil, nil).
func SplitBaths(raw *string) (full, half *int) {
	if raw == nil {
		return nil, nil
	}
	parts := strings.Split(*raw, ".")
	if len(parts) != 2 {
		return nil, nil
	}
	f, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, nil
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, nil
	}
	return &f, &h
}
