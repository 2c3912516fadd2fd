package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markdave123-py/Comparo/internal/config"
	"github.com/markdave123-py/Comparo/internal/models"
)

type stubIngestor struct{}

func (stubIngestor) Run(_ context.Context, docs []models.Document) (models.BatchResult, error) {
	out := models.BatchResult{}
	for _, d := range docs {
		if d.Filename != "" {
			out = append(out, models.PropertyRecord{Filename: d.Filename, PriceSource: models.PriceSourceNone})
		}
	}
	return out, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		AllowedOrigins: []string{"*"},
		MaxUploadMB:    4,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_Healthz(t *testing.T) {
	srv := NewServer(testConfig(), stubIngestor{}, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := NewServer(testConfig(), stubIngestor{}, quietLogger())

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost) {
		t.Errorf("Access-Control-Allow-Methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestServer_UploadRequiresTokenWhenSecretSet(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "s3cret"
	srv := NewServer(cfg, stubIngestor{}, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rec.Code)
	}
}

func TestServer_UploadOpenWithoutSecret(t *testing.T) {
	srv := NewServer(testConfig(), stubIngestor{}, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("x")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
