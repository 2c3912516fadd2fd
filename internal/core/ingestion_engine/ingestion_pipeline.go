package ingestion_engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/markdave123-py/Comparo/internal/core"
	"github.com/markdave123-py/Comparo/internal/core/extraction_engine"
	"github.com/markdave123-py/Comparo/internal/models"
)

// ErrNoDocuments is returned when a batch carries no documents at all.
var ErrNoDocuments = errors.New("no documents supplied")

// DocumentError names the document that aborted a batch. Err may carry local
// staging paths and is meant for logs, not for clients.
type DocumentError struct {
	Filename string
	Err      error
}

func (e *DocumentError) Error() string { return e.Filename + ": " + e.Err.Error() }

func (e *DocumentError) Unwrap() error { return e.Err }

var _ Ingestor = (*DocumentIngestor)(nil)

func NewDocumentIngestor(stager core.Stager, extractor core.TextExtractor, assembler *extraction_engine.Assembler, logger *slog.Logger) *DocumentIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	if assembler == nil {
		assembler = extraction_engine.NewAssembler(nil)
	}
	return &DocumentIngestor{stager: stager, extractor: extractor, assembler: assembler, logger: logger}
}

// Run processes docs one at a time in input order. Documents without a filename
// are skipped. The first staging or extraction failure aborts the batch and no
// partial result is returned.
func (i *DocumentIngestor) Run(ctx context.Context, docs []models.Document) (models.BatchResult, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	batchID := uuid.NewString()
	logger := i.logger.With("batch", batchID)
	defer func() {
		if err := i.stager.Release(context.WithoutCancel(ctx), batchID); err != nil {
			logger.Warn("failed to release staged documents", "error", err)
		}
	}()

	out := make(models.BatchResult, 0, len(docs))
	for seq, doc := range docs {
		if doc.Filename == "" {
			logger.Debug("skipping document without filename", "position", seq)
			continue
		}

		rec, err := i.processOne(ctx, batchID, seq, doc)
		if err != nil {
			logger.Error("batch aborted", "file", doc.Filename, "error", err)
			return nil, &DocumentError{Filename: doc.Filename, Err: err}
		}
		out = append(out, rec)
	}

	logger.Info("batch extracted", "documents", len(docs), "records", len(out))
	return out, nil
}

// processOne stages, extracts and assembles a single document.
func (i *DocumentIngestor) processOne(ctx context.Context, batchID string, seq int, doc models.Document) (models.PropertyRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.PropertyRecord{}, err
	}

	path, err := i.stager.Stage(ctx, batchID, seq, doc)
	if err != nil {
		return models.PropertyRecord{}, fmt.Errorf("stage: %w", err)
	}

	pages, err := i.extractor.ExtractPages(ctx, path)
	if err != nil {
		return models.PropertyRecord{}, fmt.Errorf("extract text: %w", err)
	}

	rec := i.assembler.Assemble(strings.Join(pages, ""))
	rec.Filename = doc.Filename
	return rec, nil
}
