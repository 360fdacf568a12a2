package main

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/web-quickstart/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.BasePath = t.TempDir()
	cfg.Auth.BcryptCost = bcrypt.MinCost
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func TestPrintURLs(t *testing.T) {
	reg, err := buildRegistry(testConfig(t))
	if err != nil {
		t.Fatalf("buildRegistry() error = %v", err)
	}

	var buf bytes.Buffer
	if err := printURLs(&buf, reg, urlExamples); err != nil {
		t.Fatalf("printURLs() error = %v", err)
	}

	want := "/\n/login\n/login?next=%2F\n/user/John%20Doe\n/static/style.css\n"
	if buf.String() != want {
		t.Errorf("printURLs() = %q, want %q", buf.String(), want)
	}
}

func TestPrintRoutes(t *testing.T) {
	reg, err := buildRegistry(testConfig(t))
	if err != nil {
		t.Fatalf("buildRegistry() error = %v", err)
	}

	var buf bytes.Buffer
	if err := printRoutes(&buf, reg.Entries()); err != nil {
		t.Fatalf("printRoutes() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "ENDPOINT") {
		t.Errorf("output missing header: %q", out)
	}
	for _, want := range []string{"login2", "GET,POST", "/user/{username}", "/static/{filename...}"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := loadEnvFile(t.TempDir() + "/absent.env"); err != nil {
		t.Errorf("loadEnvFile() error = %v, want nil for missing file", err)
	}
}

func TestNewServer_Routes(t *testing.T) {
	cfg := testConfig(t)

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if srv.modules.API.Prefix() != cfg.API.BasePath {
		t.Errorf("API prefix = %q, want %q", srv.modules.API.Prefix(), cfg.API.BasePath)
	}
}
