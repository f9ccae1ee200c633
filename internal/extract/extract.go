// Package extract turns receipt images into structured bill data using a
// generative model.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/receipts/internal/models"
)

// Defaults applied to fields the model could not read.
const (
	DefaultStore    = "Unknown"
	DefaultCategory = "Uncategorized"
)

// ErrNothingExtracted is returned when the model produced no text or
// reported that the receipt could not be read.
var ErrNothingExtracted = errors.New("nothing could be extracted from the receipt")

// ParseError is returned when the model's text is not the expected JSON.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse extracted receipt: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Image is an uploaded receipt.
type Image struct {
	Data     []byte
	MIMEType string
}

// ContentType returns the declared MIME type, sniffing it when unset.
func (img Image) ContentType() string {
	if img.MIMEType != "" {
		return img.MIMEType
	}
	return http.DetectContentType(img.Data)
}

// Extractor reads a receipt image and returns the model's raw text.
type Extractor interface {
	Extract(ctx context.Context, img Image) (string, error)
}

// Receipt is the structured content of a receipt.
type Receipt struct {
	Store    string
	Date     string
	Items    []models.LineItem
	Amount   float64
	Category string
}

// Read extracts and parses a receipt in one step.
func Read(ctx context.Context, ex Extractor, img Image, now time.Time) (*Receipt, error) {
	text, err := ex.Extract(ctx, img)
	if err != nil {
		return nil, err
	}
	return Parse(text, now)
}

// Parse decodes model output. A surrounding code fence is removed first.
// Missing fields get defaults; the date defaults to now's date.
func Parse(text string, now time.Time) (*Receipt, error) {
	text = StripFences(text)
	if text == "" {
		return nil, ErrNothingExtracted
	}

	var raw struct {
		Store    *string           `json:"store"`
		Date     *string           `json:"date"`
		Items    []models.LineItem `json:"items"`
		Amount   *float64          `json:"amount"`
		Category *string           `json:"category"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	if raw.Store == nil && raw.Date == nil && raw.Items == nil && raw.Amount == nil && raw.Category == nil {
		return nil, ErrNothingExtracted
	}

	receipt := &Receipt{
		Store:    valueOr(raw.Store, DefaultStore),
		Date:     valueOr(raw.Date, now.Format(time.DateOnly)),
		Items:    raw.Items,
		Category: valueOr(raw.Category, DefaultCategory),
	}
	if raw.Amount != nil {
		receipt.Amount = *raw.Amount
	}
	return receipt, nil
}

// StripFences removes a Markdown code fence wrapped around text, along
// with its language tag.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	_, body, found := strings.Cut(text, "\n")
	if !found {
		return ""
	}
	if i := strings.LastIndex(body, "```"); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

func valueOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return strings.TrimSpace(*s)
}
