package extract

import (
	"context"
	"path/filepath"
	"testing"
)

type countingExtractor struct {
	text  string
	calls int
}

func (c *countingExtractor) Extract(ctx context.Context, img Image) (string, error) {
	c.calls++
	return c.text, nil
}

func TestCachingExtractor(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache", "extract.db")

	t.Run("second extraction of the same image is cached", func(t *testing.T) {
		next := &countingExtractor{text: `{"store":"ACME"}`}
		cache, err := NewCache(path, next)
		if err != nil {
			t.Fatalf("NewCache failed: %v", err)
		}
		defer cache.Close()

		img := Image{Data: []byte("receipt-1")}
		for i := 0; i < 2; i++ {
			text, err := cache.Extract(ctx, img)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if text != `{"store":"ACME"}` {
				t.Errorf("unexpected text: %q", text)
			}
		}
		if next.calls != 1 {
			t.Errorf("expected 1 upstream call, got %d", next.calls)
		}
		if text, ok, err := cache.Cached(img); err != nil || !ok || text != `{"store":"ACME"}` {
			t.Errorf("Cached() = %q, %v, %v", text, ok, err)
		}
		if _, ok, _ := cache.Cached(Image{Data: []byte("receipt-2")}); ok {
			t.Error("receipt-2 should not be cached yet")
		}

		if _, err := cache.Extract(ctx, Image{Data: []byte("receipt-2")}); err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if next.calls != 2 {
			t.Errorf("expected a different image to miss, got %d calls", next.calls)
		}
	})

	t.Run("cache survives reopen", func(t *testing.T) {
		next := &countingExtractor{text: "unused"}
		cache, err := NewCache(path, next)
		if err != nil {
			t.Fatalf("NewCache failed: %v", err)
		}
		defer cache.Close()

		n, err := cache.Len()
		if err != nil || n != 2 {
			t.Errorf("Len() = %d, %v; want 2, nil", n, err)
		}
		if _, err := cache.Extract(ctx, Image{Data: []byte("receipt-1")}); err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if next.calls != 0 {
			t.Errorf("expected no upstream calls, got %d", next.calls)
		}
	})

	t.Run("unparsable text is not cached", func(t *testing.T) {
		next := &countingExtractor{text: "sorry, no receipt here"}
		cache, err := NewCache(filepath.Join(t.TempDir(), "other.db"), next)
		if err != nil {
			t.Fatalf("NewCache failed: %v", err)
		}
		defer cache.Close()

		img := Image{Data: []byte("blurry")}
		cache.Extract(ctx, img)
		cache.Extract(ctx, img)
		if next.calls != 2 {
			t.Errorf("expected 2 upstream calls, got %d", next.calls)
		}
	})
}
