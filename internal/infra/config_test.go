package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("ARCHIVE_BACKEND", "")
	t.Setenv("ARCHIVE_REPORTS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ARCHIVE_INTERVAL_MINUTES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.ArchiveBackend != "fs" {
		t.Fatalf("ArchiveBackend mismatch: got %q", cfg.ArchiveBackend)
	}
	if cfg.ArchiveInterval != 24*time.Hour {
		t.Fatalf("ArchiveInterval mismatch: got %s", cfg.ArchiveInterval)
	}
	if len(cfg.ArchiveReports) != 2 || cfg.ArchiveReports[0] != "monthly-summary" {
		t.Fatalf("ArchiveReports mismatch: %#v", cfg.ArchiveReports)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigParsesLists(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org, ,https://b.example.org")
	t.Setenv("ARCHIVE_REPORTS", "donations")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	want := []string{"https://a.example.org", "https://b.example.org"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Fatalf("CORSAllowedOrigins[%d] = %q want %q", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
	if len(cfg.ArchiveReports) != 1 || cfg.ArchiveReports[0] != "donations" {
		t.Fatalf("ArchiveReports mismatch: %#v", cfg.ArchiveReports)
	}
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoadConfigValidatesArchiveBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")

	t.Setenv("ARCHIVE_BACKEND", "S3")
	t.Setenv("ARCHIVE_S3_BUCKET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for s3 without bucket")
	}

	t.Setenv("ARCHIVE_S3_BUCKET", "reports-bucket")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ArchiveBackend != "s3" {
		t.Fatalf("ArchiveBackend mismatch: got %q", cfg.ArchiveBackend)
	}

	t.Setenv("ARCHIVE_BACKEND", "gcs")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
