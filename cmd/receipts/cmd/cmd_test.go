package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/receipts/internal/models"
)

// setupEnv points the CLI at a fresh data directory.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("RECEIPTS_DB_PATH", filepath.Join(dir, "expenses.db"))
	t.Setenv("RECEIPTS_PROFILE_PATH", filepath.Join(dir, "profile.yaml"))
	t.Setenv("GEMINI_API_KEY", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v", args, err)
	}
	return out
}

func TestStockAndBill(t *testing.T) {
	dir := setupEnv(t)

	mustRun(t, "init")
	if out := mustRun(t, "stock", "add", "Rice", "10"); !strings.Contains(out, "Rice: 10 in stock") {
		t.Errorf("unexpected output: %q", out)
	}

	out := mustRun(t, "bill", "--store", "ACME", "--date", "2024-06-01", "--item", "Rice:3:4", "--pdf", "bill.pdf")
	if !strings.Contains(out, "Bill 1 recorded: ACME 12.00") {
		t.Errorf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "bill.pdf"))
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected a PDF file, err=%v", err)
	}

	if out := mustRun(t, "stock", "get", "Rice"); !strings.Contains(out, "Rice: 6 in stock") {
		t.Errorf("unexpected output: %q", out)
	}

	_, err = run(t, "bill", "--store", "ACME", "--item", "Rice:3:7")
	if err == nil || !strings.Contains(err.Error(), "insufficient stock") {
		t.Errorf("expected a stock error, got %v", err)
	}

	out = mustRun(t, "expenses", "list", "--month", "2024-06")
	if !strings.Contains(out, "ACME") || !strings.Contains(out, "12.00") {
		t.Errorf("unexpected list: %q", out)
	}

	mustRun(t, "report", "--month", "2024-06", "--out", "june.pdf")
	if _, err := os.Stat(filepath.Join(dir, "june.pdf")); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestBarcodes(t *testing.T) {
	setupEnv(t)

	mustRun(t, "stock", "add", "Soap", "3")
	mustRun(t, "stock", "barcode", "Soap", "8901234")
	if out := mustRun(t, "stock", "find", "8901234"); !strings.Contains(out, "Soap: 3") {
		t.Errorf("unexpected output: %q", out)
	}
	if out := mustRun(t, "stock", "list", "--low"); !strings.Contains(out, "Soap") {
		t.Errorf("Soap should be low: %q", out)
	}
	if _, err := run(t, "stock", "barcode", "Ghee", "1"); err == nil {
		t.Error("expected an error for an untracked item")
	}
}

func TestDeleteAllNeedsConfirmation(t *testing.T) {
	setupEnv(t)

	mustRun(t, "bill", "--store", "ACME", "--item", "Soap:2")
	if _, err := run(t, "expenses", "delete-all"); err == nil {
		t.Fatal("expected an error without --yes")
	}
	if out := mustRun(t, "expenses", "delete-all", "--yes"); !strings.Contains(out, "1 expenses deleted") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestProfile(t *testing.T) {
	setupEnv(t)

	mustRun(t, "profile", "set", "--name", "Corner Mart", "--gst", "29abcde1234f1z5")
	out := mustRun(t, "profile")
	if !strings.Contains(out, "Corner Mart") || !strings.Contains(out, "29ABCDE1234F1Z5") {
		t.Errorf("unexpected profile: %q", out)
	}
}

func TestHashPassword(t *testing.T) {
	out := mustRun(t, "hash-password", "correct horse")
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Errorf("hash does not match: %v", err)
	}

	if _, err := run(t, "hash-password", "short"); err == nil {
		t.Error("expected a weak password error")
	}
}

func TestExtractNeedsKey(t *testing.T) {
	dir := setupEnv(t)
	img := filepath.Join(dir, "receipt.png")
	os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n"), 0o644)

	if _, err := run(t, "extract", img); err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected a missing key error, got %v", err)
	}
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		raw     string
		want    models.LineItem
		wantErr bool
	}{
		{raw: "Rice:3:4", want: models.LineItem{Name: "Rice", Price: 3, Quantity: 4}},
		{raw: "Soap:2.5", want: models.LineItem{Name: "Soap", Price: 2.5, Quantity: 1}},
		{raw: "Tea: Green:1.5:2", want: models.LineItem{Name: "Tea: Green", Price: 1.5, Quantity: 2}},
		{raw: "Soap", wantErr: true},
		{raw: "Soap:cheap", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseItem(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
