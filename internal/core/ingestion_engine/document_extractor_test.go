package ingestion_engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// writePDF writes a minimal PDF with the given number of blank pages.
func writePDF(t *testing.T, path string, pages int) {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for range pages {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
}

// recordingConverter answers each page with its file name and remembers the
// split directory it was called from.
type recordingConverter struct {
	mu   sync.Mutex
	dirs map[string]bool
	fail string
}

func (c *recordingConverter) convert(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	c.mu.Lock()
	if c.dirs == nil {
		c.dirs = map[string]bool{}
	}
	c.dirs[filepath.Dir(path)] = true
	c.mu.Unlock()

	if c.fail != "" && filepath.Base(path) == c.fail {
		return "", errors.New("no text layer")
	}
	return filepath.Base(path), nil
}

func newTestExtractor(conv *recordingConverter) *DocconvExtractor {
	e := NewDocconvExtractor(&IngestConfig{PageWorkers: 2}, nil)
	e.convertPage = conv.convert
	return e
}

func TestExtractPages_SplitsAnyStagedName(t *testing.T) {
	names := []string{"000_comp.pdf", "000_comp.PDF", "001_comp.Pdf", "002_scan", "003_scan.tmp"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			writePDF(t, path, 3)
			conv := &recordingConverter{}

			pages, err := newTestExtractor(conv).ExtractPages(context.Background(), path)
			if err != nil {
				t.Fatalf("ExtractPages() error = %v", err)
			}

			want := []string{"source_1.pdf", "source_2.pdf", "source_3.pdf"}
			if strings.Join(pages, ",") != strings.Join(want, ",") {
				t.Errorf("pages = %v, want %v", pages, want)
			}
			for dir := range conv.dirs {
				if _, err := os.Stat(dir); !os.IsNotExist(err) {
					t.Errorf("split directory %s was not removed", dir)
				}
			}
		})
	}
}

func TestExtractPages_SinglePageConvertsInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "000_one.PDF")
	writePDF(t, path, 1)
	conv := &recordingConverter{}

	pages, err := newTestExtractor(conv).ExtractPages(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}
	if len(pages) != 1 || pages[0] != "000_one.PDF" {
		t.Errorf("pages = %v, want the staged file converted directly", pages)
	}
	if !conv.dirs[dir] {
		t.Errorf("converted from %v, want %s", conv.dirs, dir)
	}
}

func TestExtractPages_PageFailureNamesPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "000_comp.pdf")
	writePDF(t, path, 3)
	conv := &recordingConverter{fail: "source_2.pdf"}

	pages, err := newTestExtractor(conv).ExtractPages(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), "page 2") {
		t.Fatalf("ExtractPages() error = %v, want page 2 failure", err)
	}
	if pages != nil {
		t.Errorf("pages = %v, want nil", pages)
	}
}

func TestExtractPages_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "000_notes.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := newTestExtractor(&recordingConverter{}).ExtractPages(context.Background(), path); err == nil {
		t.Fatal("ExtractPages() error = nil, want page count failure")
	}
}

func TestExtractPages_Docconv(t *testing.T) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		t.Skip("pdftotext not installed")
	}

	path := filepath.Join(t.TempDir(), "000_comp.PDF")
	writePDF(t, path, 2)

	pages, err := NewDocconvExtractor(&IngestConfig{PageWorkers: 2}, nil).ExtractPages(context.Background(), path)
	if err != nil {
		t.Fatalf("ExtractPages() error = %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("got %d pages, want 2", len(pages))
	}
}
