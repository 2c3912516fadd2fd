// Package staging writes uploaded comps somewhere the text extractor can open them.
package staging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/markdave123-py/Comparo/internal/core"
	"github.com/markdave123-py/Comparo/internal/models"
)

var _ core.Stager = (*DiskStager)(nil)

// DiskStager stages each batch in its own subdirectory of root, so two requests
// uploading the same filename never share a path.
type DiskStager struct {
	root   string
	keep   bool
	logger *slog.Logger
}

func NewDiskStager(root string, keep bool, logger *slog.Logger) (*DiskStager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if root == "" {
		return nil, fmt.Errorf("staging dir is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir %q: %w", root, err)
	}
	return &DiskStager{root: root, keep: keep, logger: logger}, nil
}

// Stage copies doc.Body to <root>/<batchID>/<seq>_<name>.
func (s *DiskStager) Stage(ctx context.Context, batchID string, seq int, doc models.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc.Body == nil {
		return "", fmt.Errorf("document %q has no body", doc.Filename)
	}

	dir := filepath.Join(s.root, batchID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create batch dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%03d_%s", seq, safeName(doc.Filename)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	n, err := io.Copy(f, doc.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write staged file: %w", err)
	}

	s.logger.Debug("document staged", "batch", batchID, "file", doc.Filename, "path", path, "bytes", n)
	return path, nil
}

// Release removes the batch directory unless staged files are kept.
func (s *DiskStager) Release(_ context.Context, batchID string) error {
	if s.keep {
		return nil
	}
	return os.RemoveAll(filepath.Join(s.root, batchID))
}

// safeName drops any directory components from an uploaded filename.
func safeName(filename string) string {
	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." || base == "" {
		return "document.pdf"
	}
	return base
}
