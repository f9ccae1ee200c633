package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/receipts/internal/config"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "data", "expenses.db")
	cfg.ProfilePath = filepath.Join(dir, "data", "profile.yaml")
	cfg.ExtractCachePath = filepath.Join(dir, "data", "extract.cache")

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Extractor != nil {
		t.Error("extractor should be nil without an API key")
	}
	if a.Authenticator.Enabled() {
		t.Error("admin auth should be disabled without a hash")
	}
	if a.LedgerService() == nil || a.AdminService() == nil {
		t.Error("services should be built")
	}

	families, err := a.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered collectors")
	}
}

func TestNewWithExtraction(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "expenses.db")
	cfg.ProfilePath = filepath.Join(dir, "profile.yaml")
	cfg.ExtractCachePath = filepath.Join(dir, "extract.cache")
	cfg.GeminiAPIKey = "test-key"

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	if a.Extractor == nil {
		t.Fatal("extractor should be configured")
	}
}

func TestNewRejectsBadHash(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "expenses.db")
	cfg.AdminPasswordHash = "not-a-hash"
	cfg.JWTSecret = "secret"

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected an error")
	}
}
