package ingestion_engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/markdave123-py/Comparo/internal/models"
)

type fakeStager struct {
	staged   []string
	released []string
}

func (s *fakeStager) Stage(_ context.Context, batchID string, _ int, doc models.Document) (string, error) {
	if _, err := io.ReadAll(doc.Body); err != nil {
		return "", err
	}
	s.staged = append(s.staged, doc.Filename)
	return "staged/" + doc.Filename, nil
}

func (s *fakeStager) Release(_ context.Context, batchID string) error {
	s.released = append(s.released, batchID)
	return nil
}

// fakeExtractor returns fixed pages per staged path.
type fakeExtractor struct {
	pages map[string][]string
	fail  map[string]error
}

func (e *fakeExtractor) ExtractPages(_ context.Context, path string) ([]string, error) {
	if err := e.fail[path]; err != nil {
		return nil, err
	}
	return e.pages[path], nil
}

func doc(name string) models.Document {
	return models.Document{Filename: name, ContentType: "application/pdf", Body: strings.NewReader("pdf")}
}

func TestRun_SkipsUnnamedAndKeepsOrder(t *testing.T) {
	stager := &fakeStager{}
	extractor := &fakeExtractor{pages: map[string][]string{
		"staged/a.pdf": {"SP: $300,000 Beds: 3"},
		"staged/c.pdf": {"LP: 410,000", "", "Beds: 5"},
	}}
	ing := NewDocumentIngestor(stager, extractor, nil, nil)

	got, err := ing.Run(context.Background(), []models.Document{doc("a.pdf"), doc(""), doc("c.pdf")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Run() returned %d records, want 2", len(got))
	}
	if got[0].Filename != "a.pdf" || got[1].Filename != "c.pdf" {
		t.Errorf("filenames = %q, %q; want a.pdf, c.pdf", got[0].Filename, got[1].Filename)
	}
	if got[0].PriceSource != models.PriceSourceSold || *got[0].Price != 300000 {
		t.Errorf("first record price = %v %q", got[0].Price, got[0].PriceSource)
	}
	if got[1].PriceSource != models.PriceSourceList || got[1].Bedrooms == nil || *got[1].Bedrooms != "5" {
		t.Errorf("second record = %+v", got[1])
	}
	if len(stager.staged) != 2 {
		t.Errorf("staged %v, unnamed document must not be staged", stager.staged)
	}
	if len(stager.released) != 1 {
		t.Errorf("Release called %d times, want 1", len(stager.released))
	}
}

func TestRun_ConcatenatesPagesWithoutSeparator(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"staged/split.pdf": {"Year Built: 19", "", "98 Beds: ", "4"},
	}}
	ing := NewDocumentIngestor(&fakeStager{}, extractor, nil, nil)

	got, err := ing.Run(context.Background(), []models.Document{doc("split.pdf")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	rec := got[0]
	if rec.YearBuilt == nil || *rec.YearBuilt != "1998" {
		t.Errorf("YearBuilt = %v, want 1998", rec.YearBuilt)
	}
	if rec.Bedrooms == nil || *rec.Bedrooms != "4" {
		t.Errorf("Bedrooms = %v, want 4", rec.Bedrooms)
	}
}

func TestRun_NoDocuments(t *testing.T) {
	ing := NewDocumentIngestor(&fakeStager{}, &fakeExtractor{}, nil, nil)

	got, err := ing.Run(context.Background(), nil)
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("Run() error = %v, want ErrNoDocuments", err)
	}
	if got != nil {
		t.Errorf("Run() = %v, want nil", got)
	}
}

func TestRun_AllUnnamedIsEmptySuccess(t *testing.T) {
	ing := NewDocumentIngestor(&fakeStager{}, &fakeExtractor{}, nil, nil)

	got, err := ing.Run(context.Background(), []models.Document{doc(""), doc("")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Run() = %#v, want empty non-nil result", got)
	}
}

func TestRun_ExtractionFailureAbortsBatch(t *testing.T) {
	boom := errors.New("unreadable pdf")
	stager := &fakeStager{}
	extractor := &fakeExtractor{
		pages: map[string][]string{"staged/a.pdf": {"Beds: 2"}},
		fail:  map[string]error{"staged/b.pdf": boom},
	}
	ing := NewDocumentIngestor(stager, extractor, nil, nil)

	got, err := ing.Run(context.Background(), []models.Document{doc("a.pdf"), doc("b.pdf"), doc("c.pdf")})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, boom)
	}
	var docErr *DocumentError
	if !errors.As(err, &docErr) || docErr.Filename != "b.pdf" {
		t.Errorf("Run() error = %#v, want DocumentError for b.pdf", err)
	}
	if got != nil {
		t.Errorf("Run() returned partial result %v", got)
	}
	if len(stager.staged) != 2 {
		t.Errorf("staged %v, documents after the failure must not be processed", stager.staged)
	}
	if len(stager.released) != 1 {
		t.Errorf("staging not released after failure")
	}
}
