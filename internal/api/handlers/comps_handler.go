package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/markdave123-py/Comparo/internal/config"
	"github.com/markdave123-py/Comparo/internal/core/export"
	"github.com/markdave123-py/Comparo/internal/core/ingestion_engine"
	"github.com/markdave123-py/Comparo/internal/models"
)

// FilesField is the multipart field carrying the comp PDFs.
const FilesField = "files[]"

const (
	msgNoFiles = "No files found"
	xlsxType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type CompsHandler struct {
	ingestor       ingestion_engine.Ingestor
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewCompsHandler(ing ingestion_engine.Ingestor, cfg *config.Config, logger *slog.Logger) *CompsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompsHandler{ingestor: ing, maxUploadBytes: cfg.MaxUploadBytes(), logger: logger}
}

// Upload extracts one record per uploaded comp and answers {"comps": [...]}.
func (h *CompsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	comps, ok := h.extract(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, models.CompsResponse{Comps: comps})
}

// UploadXLSX is Upload rendered as a spreadsheet download.
func (h *CompsHandler) UploadXLSX(w http.ResponseWriter, r *http.Request) {
	comps, ok := h.extract(w, r)
	if !ok {
		return
	}

	book, err := export.CompsWorkbook(comps)
	if err != nil {
		h.logger.Error("failed to build workbook", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="comps.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(book)
}

// extract reads the upload and runs the batch. On failure it has already
// written the error response and returns false.
func (h *CompsHandler) extract(w http.ResponseWriter, r *http.Request) (models.BatchResult, bool) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	docs, err := readDocuments(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		case errors.Is(err, http.ErrNotMultipart):
			writeError(w, http.StatusBadRequest, msgNoFiles)
		default:
			h.logger.Debug("rejected multipart body", "error", err)
			writeError(w, http.StatusBadRequest, "invalid multipart form")
		}
		return nil, false
	}
	if docs == nil {
		writeError(w, http.StatusBadRequest, msgNoFiles)
		return nil, false
	}

	comps, err := h.ingestor.Run(r.Context(), docs)
	if errors.Is(err, ingestion_engine.ErrNoDocuments) {
		writeError(w, http.StatusBadRequest, msgNoFiles)
		return nil, false
	}
	if err != nil {
		h.logger.Error("comp extraction failed", "error", err)
		msg := "failed to process documents"
		var docErr *ingestion_engine.DocumentError
		if errors.As(err, &docErr) {
			msg = "failed to process " + docErr.Filename
		}
		writeError(w, http.StatusInternalServerError, msg)
		return nil, false
	}
	return comps, true
}

// readDocuments streams the multipart body and keeps the file parts of
// FilesField in order. A part is a file when its Content-Disposition carries a
// filename parameter, even an empty one; text fields sharing the name are
// ignored. It returns nil when no file part was sent.
func readDocuments(r *http.Request) ([]models.Document, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}

		if p.FormName() != FilesField || !isFilePart(p) {
			_ = p.Close()
			continue
		}

		body, err := io.ReadAll(p)
		_ = p.Close()
		if err != nil {
			return nil, err
		}

		contentType := p.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		docs = append(docs, models.Document{Filename: p.FileName(), ContentType: contentType, Body: bytes.NewReader(body)})
	}
}

func isFilePart(p *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}
