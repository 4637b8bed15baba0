package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tublisher/internal/book"
	"tublisher/internal/config"
	"tublisher/internal/logging"
	"tublisher/internal/pipeline"
	"tublisher/internal/videoid"
)

type stubCreator struct {
	book pipeline.Book
	err  error
}

func (s stubCreator) CreateBook(ctx context.Context, rawURL string) (pipeline.Book, error) {
	return s.book, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

func testServer(t *testing.T, creator BookCreator) *apiServer {
	t.Helper()
	d, err := New(testConfig(t), creator, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d.api
}

func TestHandleRoot(t *testing.T) {
	srv := testServer(t, stubCreator{})
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tublisher Server is Running!") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestHandleCreateBookServesAttachment(t *testing.T) {
	staged := filepath.Join(t.TempDir(), "staged.epub")
	if err := os.WriteFile(staged, []byte("epub bytes"), 0o644); err != nil {
		t.Fatalf("write staged book: %v", err)
	}
	creator := stubCreator{book: pipeline.Book{
		Path:     staged,
		Filename: "summary_dQw4w9WgXcQ.epub",
		VideoID:  videoid.ID("dQw4w9WgXcQ"),
	}}
	srv := testServer(t, creator)

	body := strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create_book", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/epub+zip" {
		t.Fatalf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="summary_dQw4w9WgXcQ.epub"`) {
		t.Fatalf("content disposition = %q", got)
	}
	if rec.Body.String() != "epub bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Error("staged book should be removed after transmission")
	}
}

func TestHandleCreateBookInvalidReference(t *testing.T) {
	srv := testServer(t, stubCreator{err: videoid.ErrInvalidReference})

	body := strings.NewReader(`{"url":"https://example.com/nope"}`)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create_book", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload["error"] != "invalid video reference" {
		t.Fatalf("error = %q", payload["error"])
	}
}

func TestHandleCreateBookPackagingFailure(t *testing.T) {
	srv := testServer(t, stubCreator{err: book.ErrPackaging})

	body := strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create_book", body))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleCreateBookMalformedBody(t *testing.T) {
	srv := testServer(t, stubCreator{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create_book", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleCreateBookRejectsGet(t *testing.T) {
	srv := testServer(t, stubCreator{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/create_book", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := testServer(t, stubCreator{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if payload.Running {
		t.Error("daemon not started, running should be false")
	}
	if len(payload.Dependencies) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(payload.Dependencies))
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	cfg := testConfig(t)
	first, err := New(cfg, stubCreator{}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := first.Start(t.Context()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Stop()

	second, err := New(cfg, stubCreator{}, logging.NewNop())
	if err != nil {
		t.Fatalf("New second: %v", err)
	}
	if err := second.Start(t.Context()); err == nil {
		second.Stop()
		t.Fatal("second instance should fail to acquire lock")
	}
}

func TestDaemonErrorCollapsesWithoutDetail(t *testing.T) {
	srv := testServer(t, stubCreator{err: errors.New("internal secret detail")})

	body := strings.NewReader(`{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/create_book", body))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Error("internal error detail leaked to the client")
	}
}
