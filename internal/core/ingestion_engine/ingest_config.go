package ingestion_engine

import (
	"log/slog"

	"github.com/markdave123-py/Comparo/internal/core"
	"github.com/markdave123-py/Comparo/internal/core/extraction_engine"
)

// IngestConfig tunes text extraction.
//
// PageWorkers:    pages of one document converted concurrently (documents themselves are sequential).
// UseReadability: passed through to docconv.
type IngestConfig struct {
	PageWorkers    int
	UseReadability bool
}

// DocumentIngestor runs a batch of uploaded comps through staging, text
// extraction and field assembly.
type DocumentIngestor struct {
	stager    core.Stager
	extractor core.TextExtractor
	assembler *extraction_engine.Assembler
	logger    *slog.Logger
}

// DocconvExtractor implements core.TextExtractor with pdfcpu page splitting and sajari/docconv.
type DocconvExtractor struct {
	useReadability bool
	workers        int
	logger         *slog.Logger

	// convertPage turns one single-page PDF into text; defaults to docconv.
	convertPage func(path string) (string, error)
}
