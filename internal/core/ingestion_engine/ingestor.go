package ingestion_engine

import (
	"context"

	"github.com/markdave123-py/Comparo/internal/models"
)

type Ingestor interface {
	Run(ctx context.Context, docs []models.Document) (models.BatchResult, error)
}
