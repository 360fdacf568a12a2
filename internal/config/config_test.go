package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/web-quickstart/pkg/logging"
	"golang.org/x/crypto/bcrypt"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := cfg.Server.Addr(); got != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:5000", got)
	}
	if !cfg.Development() {
		t.Error("Development() = false, want true")
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Database.Enabled {
		t.Error("Database.Enabled = true, want false")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want /api", cfg.API.BasePath)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[server\nport = ")

	if _, err := Load(path); err == nil {
		t.Error("Load() with malformed TOML succeeded, want error")
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "config.toml", `
version = "1.2.3"

[server]
host = "0.0.0.0"
port = 8080

[logging]
format = "json"
`)
	writeFile(t, dir, "config.production.toml", `
[server]
port = 9090
`)

	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	t.Setenv(EnvServiceEnv, "production")

	cfg, err := Load(base)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", cfg.Version)
	}
	if cfg.Development() {
		t.Error("Development() = true, want false")
	}
	if cfg.Logging.Level != logging.LevelInfo {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != logging.FormatJSON {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestFinalize_EnvOverrides(t *testing.T) {
	t.Setenv(EnvServerPort, "7000")
	t.Setenv("STORAGE_MAX_UPLOAD_SIZE", "2MB")
	t.Setenv(EnvRateLimitBurst, "3")

	cfg := &Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Storage.MaxUploadSizeBytes() != 2_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 2000000", cfg.Storage.MaxUploadSizeBytes())
	}
	if cfg.RateLimit.Burst != 3 {
		t.Errorf("RateLimit.Burst = %d, want 3", cfg.RateLimit.Burst)
	}
}

func TestServerConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
	}{
		{"port too large", ServerConfig{Port: 70000}},
		{"bad read timeout", ServerConfig{ReadTimeout: "soon"}},
		{"bad shutdown timeout", ServerConfig{ShutdownTimeout: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestAuthConfig_HashesPasswords(t *testing.T) {
	cfg := AuthConfig{
		BcryptCost: bcrypt.MinCost,
		Users:      []UserConfig{{Username: "john", Password: "secret"}},
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Users[0].Password != "" {
		t.Error("plain password retained after Finalize")
	}
	hash := cfg.Credentials()["john"]
	if err := bcrypt.CompareHashAndPassword(hash, []byte("secret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestAuthConfig_KeepsHash(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	cfg := AuthConfig{Users: []UserConfig{{Username: "ann", PasswordHash: string(hash)}}}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if got := string(cfg.Credentials()["ann"]); got != string(hash) {
		t.Errorf("hash = %q, want %q", got, string(hash))
	}
}

func TestAuthConfig_EnvUsers(t *testing.T) {
	t.Setenv(EnvAuthUsers, "john:secret, ann:pw ,broken")

	cfg := AuthConfig{BcryptCost: bcrypt.MinCost}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	creds := cfg.Credentials()
	if len(creds) != 2 {
		t.Fatalf("credentials = %d, want 2", len(creds))
	}
	if err := bcrypt.CompareHashAndPassword(creds["ann"], []byte("pw")); err != nil {
		t.Errorf("ann hash mismatch: %v", err)
	}
}

func TestAuthConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  AuthConfig
	}{
		{"missing username", AuthConfig{Users: []UserConfig{{Password: "x"}}}},
		{"missing password", AuthConfig{Users: []UserConfig{{Username: "john"}}}},
		{"duplicate", AuthConfig{BcryptCost: bcrypt.MinCost, Users: []UserConfig{
			{Username: "john", Password: "a"},
			{Username: "john", Password: "b"},
		}}},
		{"bad hash", AuthConfig{Users: []UserConfig{{Username: "john", PasswordHash: "plain"}}}},
		{"bad cost", AuthConfig{BcryptCost: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestRateLimitConfig_Defaults(t *testing.T) {
	cfg := RateLimitConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Disabled || cfg.RequestsPerMinute != 10 || cfg.Burst != 5 {
		t.Errorf("RateLimitConfig = %+v, want enabled 10/min burst 5", cfg)
	}
}

func TestRateLimitConfig_TrustedProxies(t *testing.T) {
	t.Setenv(EnvRateLimitTrustedProxies, "10.0.0.0/8, 192.0.2.7")

	cfg := RateLimitConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if got := len(cfg.Proxies()); got != 2 {
		t.Errorf("len(Proxies()) = %d, want 2", got)
	}

	bad := RateLimitConfig{TrustedProxies: []string{"not-a-network"}}
	if err := bad.Finalize(); err == nil {
		t.Error("Finalize() with invalid trusted proxy succeeded, want error")
	}
}

func TestAPIConfig_InvalidBasePath(t *testing.T) {
	cfg := APIConfig{BasePath: "/api/v1"}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() with nested base_path succeeded, want error")
	}
}
