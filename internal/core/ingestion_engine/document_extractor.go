package ingestion_engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"code.sajari.com/docconv"
	"github.com/markdave123-py/Comparo/internal/core"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"
)

const pdfContentType = "application/pdf"

// splitBase is the name the source PDF is copied to before splitting. pdfcpu
// derives page file names from the input name and only strips a lowercase
// ".pdf", so the uploaded name is never used here.
const splitBase = "source"

var _ core.TextExtractor = (*DocconvExtractor)(nil)

func NewDocconvExtractor(cfg *IngestConfig, logger *slog.Logger) *DocconvExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.PageWorkers
	if workers <= 0 {
		workers = 1
	}
	e := &DocconvExtractor{useReadability: cfg.UseReadability, workers: workers, logger: logger}
	e.convertPage = e.convert
	return e
}

// ExtractPages splits the PDF at path into single pages and converts each to text.
// The result is indexed by page, so concurrency never reorders pages.
func (e *DocconvExtractor) ExtractPages(ctx context.Context, path string) ([]string, error) {
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}
	if pageCount <= 1 {
		text, err := e.convertPage(path)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	workDir, err := os.MkdirTemp("", "comps-pages-*")
	if err != nil {
		return nil, fmt.Errorf("create page dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	source := filepath.Join(workDir, splitBase+".pdf")
	if err := copyFile(path, source); err != nil {
		return nil, fmt.Errorf("copy for split: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.SplitFile(source, workDir, 1, conf); err != nil {
		return nil, fmt.Errorf("split pages: %w", err)
	}

	pages := make([]string, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range pageCount {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := e.convertPage(pagePath(workDir, i+1))
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			pages[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("docconv: pages extracted", "path", path, "pages", pageCount)
	return pages, nil
}

// pagePath is where pdfcpu writes page n (1-based) of the split source.
func pagePath(workDir string, n int) string {
	return filepath.Join(workDir, fmt.Sprintf("%s_%d.pdf", splitBase, n))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// convert returns the text of one PDF file, or "" when it has none.
func (e *DocconvExtractor) convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	res, err := docconv.Convert(f, pdfContentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv: %w", err)
	}
	if res.Body == "" {
		e.logger.Debug("docconv: page has no extractable text", "path", path)
	}
	return res.Body, nil
}
