package core

import (
	"context"
	"io"

	"github.com/markdave123-py/Comparo/internal/models"
)

// ObjectClient defines interactions with S3 or any object storage.
type ObjectClient interface {
	UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType string) (url string, err error)
}

// Stager persists uploaded documents where the text extractor can read them.
// Everything staged for one batch lives under batchID and is dropped by Release.
type Stager interface {
	Stage(ctx context.Context, batchID string, seq int, doc models.Document) (path string, err error)
	Release(ctx context.Context, batchID string) error
}
