package extract

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiExtractor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGemini(context.Background(), GeminiConfig{
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    5 * time.Second,
		Attempts:   3,
		RetryDelay: time.Millisecond,
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewGemini failed: %v", err)
	}
	return g
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
}

func TestGeminiExtract(t *testing.T) {
	var gotPath, gotBody string
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		writeCandidate(w, "```json\n{\"store\":\"ACME\"}\n```")
	})

	text, err := g.Extract(context.Background(), Image{Data: []byte("fake-png"), MIMEType: "image/png"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "```json\n{\"store\":\"ACME\"}\n```" {
		t.Errorf("unexpected text: %q", text)
	}
	if !strings.HasSuffix(gotPath, "models/test-model:generateContent") {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if !strings.Contains(gotBody, `"mimeType":"image/png"`) {
		t.Errorf("request did not carry the image: %s", gotBody)
	}
}

func TestGeminiRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":{"code":503,"message":"overloaded"}}`, http.StatusServiceUnavailable)
			return
		}
		writeCandidate(w, `{"store":"ACME"}`)
	})

	if _, err := g.Extract(context.Background(), Image{Data: []byte("img")}); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestGeminiDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"code":400,"message":"bad image"}}`, http.StatusBadRequest)
	})

	if _, err := g.Extract(context.Background(), Image{Data: []byte("img")}); err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestGeminiEmptyResponse(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[]}`)
	})

	_, err := g.Extract(context.Background(), Image{Data: []byte("img")})
	if err != ErrNothingExtracted {
		t.Errorf("expected ErrNothingExtracted, got %v", err)
	}
}
