package app_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/web-quickstart/internal/app"
	"github.com/JaimeStill/web-quickstart/internal/config"
	"github.com/JaimeStill/web-quickstart/internal/infrastructure"
	"github.com/JaimeStill/web-quickstart/pkg/logging"
	"github.com/JaimeStill/web-quickstart/pkg/module"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
)

func newServer(t *testing.T) (http.Handler, *app.App) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.BasePath = t.TempDir()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Auth.Users = []config.UserConfig{{Username: "john", Password: "secret"}}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.NewWithLogger(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("infrastructure.NewWithLogger() error = %v", err)
	}

	a, err := app.New(cfg, infra)
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(a.API())
	router.HandleNativeHandler("/", a.Handler())
	return router, a
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestApp_Views(t *testing.T) {
	h, _ := newServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, "The Index Page."},
		{"/hello", http.StatusOK, "Hello, World!"},
		{"/hello/Ada", http.StatusOK, "Hello Ada!"},
		{"/user/John%20Doe", http.StatusOK, "User John Doe"},
		{"/post/12", http.StatusOK, "Post 12"},
		{"/path/a/b", http.StatusOK, "Subpath a/b"},
		{"/projects/", http.StatusOK, "The Project Page."},
		{"/about", http.StatusOK, "The About Page."},
		{"/login", http.StatusOK, "login"},
		{"/login3", http.StatusOK, "Hello, World!"},
		{"/upload", http.StatusOK, `name="the_file"`},
		{"/read_cookies", http.StatusOK, "setting your cookies?"},
		{"/responses/string", http.StatusOK, "Hello from a string."},
		{"/login4", http.StatusUnauthorized, "401 Unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(h, tt.path)

			if w.Code != tt.wantStatus {
				t.Fatalf("GET %s status = %d, want %d", tt.path, w.Code, tt.wantStatus)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("GET %s body = %q, want %q", tt.path, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestApp_LayoutLinks(t *testing.T) {
	h, _ := newServer(t)

	body := get(h, "/hello/").Body.String()

	for _, want := range []string{
		`href="/static/style.css"`,
		`href="/"`,
		`href="/hello/"`,
		`href="/login3"`,
		`href="/upload"`,
		`href="/read_cookies"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("layout missing %s", want)
		}
	}
}

func TestApp_NotFound(t *testing.T) {
	h, _ := newServer(t)

	for _, path := range []string{"/missing", "/about/", "/post/abc", "/static/missing.css"} {
		t.Run(path, func(t *testing.T) {
			w := get(h, path)

			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
			if got := w.Header().Get("X-Something"); got != "A Value" {
				t.Errorf("X-Something = %q, want A Value", got)
			}
			if !strings.Contains(w.Body.String(), "The requested URL was not found on the server.") {
				t.Errorf("body = %q, want custom 404 page", w.Body.String())
			}
		})
	}
}

func TestApp_Static(t *testing.T) {
	h, _ := newServer(t)

	w := get(h, "/static/style.css")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
}

func TestApp_Redirects(t *testing.T) {
	h, _ := newServer(t)

	tests := []struct {
		path         string
		wantStatus   int
		wantLocation string
	}{
		{"/projects", http.StatusPermanentRedirect, "/projects/"},
		{"/redirect", http.StatusFound, "/login4"},
		{"/api/urls/", http.StatusPermanentRedirect, "/api/urls"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(h, tt.path)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if loc := w.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
		})
	}
}

func TestApp_URLMap(t *testing.T) {
	h, a := newServer(t)

	w := get(h, "/api/urls")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var entries []routes.Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}

	found := make(map[string]routes.Entry)
	for _, e := range entries {
		found[e.Rule] = e
	}

	for rule, endpoint := range map[string]string{
		"/":                     "index",
		"/login3":               "login3",
		"/user/{username}":      "profile",
		"/static/{filename...}": "static",
	} {
		if found[rule].Endpoint != endpoint {
			t.Errorf("rule %s endpoint = %q, want %q", rule, found[rule].Endpoint, endpoint)
		}
	}

	got, err := a.Registry().URLFor("login", map[string]string{"next": "/"})
	if err != nil {
		t.Fatalf("URLFor() error = %v", err)
	}
	if got != "/login?next=%2F" {
		t.Errorf("URLFor(login, next=/) = %q, want /login?next=%%2F", got)
	}
}

func TestApp_APINotFound(t *testing.T) {
	h, _ := newServer(t)

	w := get(h, "/api/nothing")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestApp_UploadListed(t *testing.T) {
	h, _ := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("the_file", "Report 2024.txt")
	fw.Write([]byte("quarterly"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload2", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "Saved" {
		t.Fatalf("upload = %d %q, want 200 Saved", w.Code, w.Body.String())
	}

	w = get(h, "/api/uploads")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}

	var result struct {
		Data []struct {
			Key      string `json:"key"`
			Filename string `json:"filename"`
		} `json:"data"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Fatalf("result = %+v, want one upload", result)
	}
	if result.Data[0].Key != "Report_2024.txt" {
		t.Errorf("Key = %q, want Report_2024.txt", result.Data[0].Key)
	}
	if result.Data[0].Filename != "Report 2024.txt" {
		t.Errorf("Filename = %q, want original name", result.Data[0].Filename)
	}
}
