package uploads_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/web-quickstart/internal/uploads"
	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/logging"
	"github.com/JaimeStill/web-quickstart/pkg/pagination"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	"github.com/JaimeStill/web-quickstart/pkg/storage"
	"github.com/JaimeStill/web-quickstart/pkg/web"
)

var templateFS = fstest.MapFS{
	"layouts/layout.html": {Data: []byte(`{{ block "content" . }}{{ end }}`)},
	"pages/upload.html":   {Data: []byte(`{{ define "content" }}<form action="{{ .action }}"><input type="file" name="the_file"></form>{{ end }}`)},
}

type fixture struct {
	mux     *http.ServeMux
	h       *uploads.Handler
	sys     uploads.System
	baseDir string
}

func newFixture(t *testing.T, maxUploadSize int64) *fixture {
	t.Helper()

	baseDir := t.TempDir()
	store, err := storage.New(&storage.Config{BasePath: baseDir}, logging.Discard())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	templates, err := web.NewTemplateSet(templateFS, "layouts/*.html", "pages", "layout.html", []string{uploads.UploadPage}, nil)
	if err != nil {
		t.Fatalf("NewTemplateSet() error = %v", err)
	}

	pageCfg := pagination.Config{}
	if err := pageCfg.Finalize(nil); err != nil {
		t.Fatalf("pagination Finalize() error = %v", err)
	}

	sys := uploads.New(store, uploads.NewMemoryLedger(), logging.Discard())
	h := uploads.NewHandler(sys, templates, logging.Discard(), pageCfg, maxUploadSize)

	mux := http.NewServeMux()
	routes.Register(mux, routes.NewRegistry(), h.Routes(), h.APIRoutes())

	return &fixture{mux: mux, h: h, sys: sys, baseDir: baseDir}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, target, field, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_Form(t *testing.T) {
	f := newFixture(t, 1<<20)

	for _, target := range []string{"/upload", "/upload2"} {
		t.Run(target, func(t *testing.T) {
			w := f.do(httptest.NewRequest(http.MethodGet, target, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			body := w.Body.String()
			if !strings.Contains(body, `name="the_file"`) {
				t.Errorf("body = %q, want file input", body)
			}
			if !strings.Contains(body, `action="`+target+`"`) {
				t.Errorf("body = %q, want action %s", body, target)
			}
		})
	}
}

func TestUpload_FixedKey(t *testing.T) {
	f := newFixture(t, 1<<20)

	w := f.do(uploadRequest(t, "/upload", "the_file", "notes.txt", "hello upload"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if w.Body.String() != "Saved" {
		t.Errorf("body = %q, want Saved", w.Body.String())
	}

	data, err := os.ReadFile(filepath.Join(f.baseDir, uploads.FixedKey))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "hello upload" {
		t.Errorf("stored = %q, want %q", string(data), "hello upload")
	}
}

func TestUploadSecure_SanitisesFilename(t *testing.T) {
	f := newFixture(t, 1<<20)

	w := f.do(uploadRequest(t, "/upload2", "the_file", "../../etc/passwd", "root"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(f.baseDir, "etc_passwd")); err != nil {
		t.Errorf("sanitised file not stored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.baseDir, "passwd")); !os.IsNotExist(err) {
		t.Errorf("file stored under base name: %v", err)
	}

	result, err := f.sys.List(context.Background(), pagination.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(result.Data))
	}
	if result.Data[0].Filename != "../../etc/passwd" {
		t.Errorf("Filename = %q, want client filename", result.Data[0].Filename)
	}
	if result.Data[0].Key != "etc_passwd" {
		t.Errorf("Key = %q, want etc_passwd", result.Data[0].Key)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	f := newFixture(t, 1<<20)

	result := f.h.Upload(uploadRequest(t, "/upload", "other", "a.txt", "x"))

	err, ok := result.(error)
	if !ok {
		t.Fatalf("Upload() = %T, want error", result)
	}
	if !errors.Is(err, uploads.ErrNoFile) {
		t.Errorf("Upload() error = %v, want ErrNoFile", err)
	}
	if got := handlers.StatusOf(err); got != http.StatusBadRequest {
		t.Errorf("StatusOf() = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		field    string
		filename string
		content  string
		limit    int64
		want     int
	}{
		{"missing file", "/upload", "", "", "", 1 << 20, http.StatusBadRequest},
		{"wrong field", "/upload", "other", "a.txt", "x", 1 << 20, http.StatusBadRequest},
		{"empty secure name", "/upload2", "the_file", "../..", "x", 1 << 20, http.StatusBadRequest},
		{"non ascii name", "/upload2", "the_file", "日本語", "x", 1 << 20, http.StatusBadRequest},
		{"too large", "/upload", "the_file", "big.txt", strings.Repeat("x", 8192), 1024, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.limit)

			w := f.do(uploadRequest(t, tt.target, tt.field, tt.filename, tt.content))

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestList(t *testing.T) {
	f := newFixture(t, 1<<20)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if w := f.do(uploadRequest(t, "/upload2", "the_file", name, name)); w.Code != http.StatusOK {
			t.Fatalf("upload %s status = %d", name, w.Code)
		}
	}

	w := f.do(httptest.NewRequest(http.MethodGet, "/uploads?page=1&page_size=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var result pagination.PageResult[uploads.Upload]
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if result.Total != 3 {
		t.Errorf("Total = %d, want 3", result.Total)
	}
	if result.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", result.TotalPages)
	}
	if len(result.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(result.Data))
	}
	if result.Data[0].Key != "c.txt" {
		t.Errorf("Data[0].Key = %q, want newest c.txt", result.Data[0].Key)
	}
	if result.Data[0].Size != int64(len("c.txt")) {
		t.Errorf("Data[0].Size = %d, want %d", result.Data[0].Size, len("c.txt"))
	}
}

type failingLedger struct {
	uploads.Ledger
	fail bool
}

func (l *failingLedger) Record(ctx context.Context, u uploads.Upload) (*uploads.Upload, error) {
	if l.fail {
		return nil, errors.New("ledger unavailable")
	}
	return l.Ledger.Record(ctx, u)
}

func TestSave_LedgerFailure(t *testing.T) {
	baseDir := t.TempDir()
	store, err := storage.New(&storage.Config{BasePath: baseDir}, logging.Discard())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	ledger := &failingLedger{Ledger: uploads.NewMemoryLedger()}
	sys := uploads.New(store, ledger, logging.Discard())
	ctx := context.Background()

	if _, err := sys.Save(ctx, uploads.FixedKey, "first.txt", strings.NewReader("first")); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	ledger.fail = true
	if _, err := sys.Save(ctx, uploads.FixedKey, "second.txt", strings.NewReader("second")); err == nil {
		t.Fatal("second Save() error = nil, want ledger error")
	}
	if _, err := sys.Save(ctx, "report.txt", "report.txt", strings.NewReader("data")); err == nil {
		t.Fatal("Save() error = nil, want ledger error")
	}

	data, err := os.ReadFile(filepath.Join(baseDir, uploads.FixedKey))
	if err != nil {
		t.Fatalf("recorded upload lost after ledger failure: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("stored = %q, want first", string(data))
	}
	if _, err := os.Stat(filepath.Join(baseDir, "report.txt")); !os.IsNotExist(err) {
		t.Errorf("unrecorded file stored: %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, uploads.StagingDir)); !os.IsNotExist(err) {
		t.Errorf("staged files left behind: %v", err)
	}

	result, err := sys.List(ctx, pagination.PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 || result.Data[0].Filename != "first.txt" {
		t.Errorf("ledger = %+v, want only first.txt", result.Data)
	}
}

func TestMemoryLedger_Duplicate(t *testing.T) {
	ledger := uploads.NewMemoryLedger()
	u := uploads.Upload{Key: "a.txt"}

	if _, err := ledger.Record(context.Background(), u); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := ledger.Record(context.Background(), u); !errors.Is(err, uploads.ErrDuplicate) {
		t.Errorf("Record() error = %v, want ErrDuplicate", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{uploads.ErrNoFile, http.StatusBadRequest},
		{uploads.ErrInvalidFilename, http.StatusBadRequest},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{uploads.ErrNotFound, http.StatusNotFound},
		{uploads.ErrDuplicate, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := uploads.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
