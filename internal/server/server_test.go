package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/crimson-sun/collate/internal/config"
	"github.com/crimson-sun/collate/internal/engine/merge"
	"github.com/crimson-sun/collate/internal/ingest"
	"github.com/crimson-sun/collate/internal/pipeline"
	"github.com/crimson-sun/collate/internal/report"

	_ "github.com/crimson-sun/collate/internal/ingest/csvfile"
)

func newTestServer(t *testing.T, maxUpload int64) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	outDir := t.TempDir()
	pipe := pipeline.New(
		ingest.New(t.TempDir(), log),
		merge.New(log),
		report.New(outDir, log),
		outDir,
		log,
	)
	return New(pipe, config.ServerConfig{MaxUploadBytes: maxUpload}, log)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func TestUploadSuccess(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	router := srv.Router()

	body, contentType := multipartBody(t, map[string]string{
		"usage.csv": "User Email,Item Path\na.b.cics@ust.edu.ph,/u/file.psd\nx@gmail.com,/u/doc.pdf\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool           `json:"success"`
		FileCount int            `json:"file_count"`
		Preview   report.Preview `json:"preview"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.FileCount != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Preview.TotalUsers != 2 || resp.Preview.USTStudentUsers != 1 {
		t.Fatalf("unexpected preview: %+v", resp.Preview)
	}
}

func TestUploadNoFiles(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	router := srv.Router()

	body, contentType := multipartBody(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No files selected") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUploadNoValidFormats(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	router := srv.Router()

	body, contentType := multipartBody(t, map[string]string{"notes.txt": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No valid CSV or XLSX files selected") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUploadMissingColumn(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	router := srv.Router()

	body, contentType := multipartBody(t, map[string]string{
		"usage.csv": "User Email\na.b.cics@ust.edu.ph\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Item Path") {
		t.Fatalf("error should name the missing column: %s", rec.Body.String())
	}
}

func TestUploadTooLarge(t *testing.T) {
	srv := newTestServer(t, 64) // tiny cap
	router := srv.Router()

	body, contentType := multipartBody(t, map[string]string{
		"usage.csv": strings.Repeat("User Email,Item Path\n", 100),
	})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestDownloadBeforeAnyRun(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDownloadAfterRun(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	router := srv.Router()

	body, contentType := multipartBody(t, map[string]string{
		"usage.csv": "User Email,Item Path\na.b.cics@ust.edu.ph,/u/file.psd\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/download", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, report.ArtifactName) {
		t.Fatalf("expected attachment name in Content-Disposition, got %q", cd)
	}
}
