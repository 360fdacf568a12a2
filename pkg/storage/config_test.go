package storage_test

import (
	"testing"

	"github.com/JaimeStill/web-quickstart/pkg/storage"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := &storage.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.BasePath != ".data/uploads" {
		t.Errorf("BasePath = %q, want .data/uploads", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 16_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 16000000", cfg.MaxUploadSizeBytes())
	}
}

func TestConfig_Env(t *testing.T) {
	t.Setenv("TEST_STORAGE_BASE_PATH", "/tmp/uploads")
	t.Setenv("TEST_STORAGE_MAX_UPLOAD_SIZE", "1KB")

	cfg := &storage.Config{}
	env := &storage.Env{
		BasePath:      "TEST_STORAGE_BASE_PATH",
		MaxUploadSize: "TEST_STORAGE_MAX_UPLOAD_SIZE",
	}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.BasePath != "/tmp/uploads" {
		t.Errorf("BasePath = %q, want /tmp/uploads", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 1000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 1000", cfg.MaxUploadSizeBytes())
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := &storage.Config{BasePath: "a", MaxUploadSize: "1MB"}
	cfg.Merge(&storage.Config{MaxUploadSize: "2MB"})

	if cfg.BasePath != "a" {
		t.Errorf("BasePath = %q, want a", cfg.BasePath)
	}
	if cfg.MaxUploadSize != "2MB" {
		t.Errorf("MaxUploadSize = %q, want 2MB", cfg.MaxUploadSize)
	}
}

func TestConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		size string
	}{
		{"not a size", "lots"},
		{"zero", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &storage.Config{MaxUploadSize: tt.size}
			if err := cfg.Finalize(nil); err == nil {
				t.Errorf("Finalize() with max_upload_size %q succeeded, want error", tt.size)
			}
		})
	}
}
