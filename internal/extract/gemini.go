package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"google.golang.org/genai"
)

// Prompt instructs the model to answer with the receipt JSON only.
const Prompt = `You are an expense extraction assistant. Given a photo of a receipt, extract the following fields in JSON:
{
  "store": string,
  "date": string (YYYY-MM-DD),
  "items": [ {"name": string, "price": float, "quantity": integer} ],
  "amount": float,
  "category": string
}
Only output valid JSON. Do not include any explanation or text before or after the JSON. If you cannot extract, return: {"store": null, "date": null, "items": null, "amount": null, "category": null}`

// GeminiConfig configures a GeminiExtractor.
type GeminiConfig struct {
	APIKey string
	Model  string

	// Timeout bounds one Extract call including retries.
	Timeout time.Duration

	// Attempts is the number of tries for rate-limited or failed calls.
	Attempts uint

	// RetryDelay is the base delay between attempts.
	RetryDelay time.Duration

	// BaseURL and HTTPClient override the API endpoint and transport.
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiExtractor extracts receipts with the Gemini generateContent API.
type GeminiExtractor struct {
	client     *genai.Client
	model      string
	timeout    time.Duration
	attempts   uint
	retryDelay time.Duration
}

// NewGemini creates a GeminiExtractor.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiExtractor{
		client:     client,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		attempts:   cfg.Attempts,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Extract sends the image and prompt to the model and returns its text.
func (g *GeminiExtractor) Extract(ctx context.Context, img Image) (string, error) {
	if len(img.Data) == 0 {
		return "", errors.New("receipt image is empty")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(Prompt),
			genai.NewPartFromBytes(img.Data, img.ContentType()),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	var resp *genai.GenerateContentResponse
	err := retry.Do(
		func() error {
			var err error
			resp, err = g.client.Models.GenerateContent(ctx, g.model, contents, config)
			return err
		},
		retry.RetryIf(func(err error) bool {
			code, ok := apiErrorCode(err)
			if ok && (code == http.StatusTooManyRequests || code >= http.StatusInternalServerError) {
				slog.WarnContext(ctx, "Gemini call failed, will retry", "code", code)
				return true
			}
			return false
		}),
		retry.Attempts(g.attempts),
		retry.Delay(g.retryDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrNothingExtracted
	}
	return text, nil
}

// apiErrorCode returns the HTTP status carried by a Gemini API error.
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		// The first candidate with content is the answer.
		if sb.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(sb.String())
}
