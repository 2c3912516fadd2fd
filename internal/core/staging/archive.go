package staging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/markdave123-py/Comparo/internal/core"
	"github.com/markdave123-py/Comparo/internal/models"
)

var _ core.Stager = (*ArchivingStager)(nil)

// ArchivingStager stages through next and keeps a copy of every staged
// document in object storage under <prefix>/<batchID>/.
type ArchivingStager struct {
	next   core.Stager
	obj    core.ObjectClient
	bucket string
	prefix string
	logger *slog.Logger
}

func NewArchivingStager(next core.Stager, obj core.ObjectClient, bucket, prefix string, logger *slog.Logger) *ArchivingStager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchivingStager{next: next, obj: obj, bucket: bucket, prefix: prefix, logger: logger}
}

func (s *ArchivingStager) Stage(ctx context.Context, batchID string, seq int, doc models.Document) (string, error) {
	local, err := s.next.Stage(ctx, batchID, seq, doc)
	if err != nil {
		return "", err
	}

	f, err := os.Open(local)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	key := path.Join(s.prefix, batchID, filepath.Base(local))
	url, err := s.obj.UploadFile(ctx, s.bucket, key, f, doc.ContentType)
	if err != nil {
		return "", fmt.Errorf("archive %q: %w", doc.Filename, err)
	}

	s.logger.Info("document archived", "batch", batchID, "file", doc.Filename, "url", url)
	return local, nil
}

func (s *ArchivingStager) Release(ctx context.Context, batchID string) error {
	return s.next.Release(ctx, batchID)
}
