package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/web-quickstart/pkg/web"
)

func newRouter() *web.Router {
	r := web.NewRouter()
	r.HandleFunc("GET /ok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Handler", "ok")
		w.Write([]byte("ok"))
	})
	r.HandleFunc("GET /missing-item", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Leak", "yes")
		http.NotFound(w, r)
	})
	r.HandleFunc("POST /only-post", func(w http.ResponseWriter, r *http.Request) {})
	r.HandleFunc("GET /empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Empty", "1")
	})
	r.SetFallback(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Something", "A Value")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("custom 404"))
	}))
	return r
}

func TestRouter_Fallback(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
		wantHeader [2]string
	}{
		{"matched", "GET", "/ok", http.StatusOK, "ok", [2]string{"X-Handler", "ok"}},
		{"unmatched", "GET", "/nope", http.StatusNotFound, "custom 404", [2]string{"X-Something", "A Value"}},
		{"handler 404", "GET", "/missing-item", http.StatusNotFound, "custom 404", [2]string{"X-Leak", ""}},
		{"method not allowed", "GET", "/only-post", http.StatusMethodNotAllowed, "", [2]string{"Allow", "POST"}},
		{"implicit ok", "GET", "/empty", http.StatusOK, "", [2]string{"X-Empty", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(w.Result().Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", string(body), tt.wantBody)
				}
			}
			if got := w.Header().Get(tt.wantHeader[0]); got != tt.wantHeader[1] {
				t.Errorf("%s = %q, want %q", tt.wantHeader[0], got, tt.wantHeader[1])
			}
		})
	}
}

func TestRouter_NoFallback(t *testing.T) {
	r := web.NewRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestStatic(t *testing.T) {
	fsys := fstest.MapFS{
		"style.css":    {Data: []byte("body {}")},
		"img/logo.svg": {Data: []byte("<svg/>")},
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/{filename...}", web.Static(fsys))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/static/style.css", http.StatusOK, "body {}"},
		{"/static/img/logo.svg", http.StatusOK, "<svg/>"},
		{"/static/missing.css", http.StatusNotFound, ""},
		{"/static/img", http.StatusNotFound, ""},
		{"/static/", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
