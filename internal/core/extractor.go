package core

import (
	"context"
)

// TextExtractor reads a staged document and returns its text one page at a time.
// A page without extractable text is returned as an empty string, never skipped.
type TextExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]string, error)
}
