package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	googleai "google.golang.org/genai"
)

const (
	TextModel     = "gemini-2.5-flash"
	ImageModel    = "gemini-2.5-flash-image"
	FallbackModel = "imagen-4.0-generate-001"
)

// ErrNotConfigured is returned by every call when no API key was provided.
var ErrNotConfigured = errors.New("generative language API key is not set")

// Client talks to the Gemini API through the official SDK. A Client built
// without a key stays usable and answers ErrNotConfigured.
type Client struct {
	sdk *googleai.Client
}

type Option func(*googleai.ClientConfig)

// WithBaseURL points the client at another endpoint, e.g. a test server.
func WithBaseURL(url string) Option {
	return func(cfg *googleai.ClientConfig) { cfg.HTTPOptions.BaseURL = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *googleai.ClientConfig) { cfg.HTTPClient = hc }
}

func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return &Client{}, nil
	}

	cfg := &googleai.ClientConfig{
		APIKey:     apiKey,
		Backend:    googleai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	sdk, err := googleai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{sdk: sdk}, nil
}

func (c *Client) Configured() bool {
	return c != nil && c.sdk != nil
}

func (c *Client) generate(ctx context.Context, model string, contents []*googleai.Content, config *googleai.GenerateContentConfig) (*googleai.GenerateContentResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	return c.sdk.Models.GenerateContent(ctx, model, contents, config)
}

// inlineImage returns the first binary part of the first candidate.
func inlineImage(resp *googleai.GenerateContentResponse) *googleai.Blob {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData
		}
	}
	return nil
}

// apiError finds the SDK error in err, whichever form it was returned in.
func apiError(err error) (googleai.APIError, bool) {
	var value googleai.APIError
	if errors.As(err, &value) {
		return value, true
	}
	var ptr *googleai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return googleai.APIError{}, false
}
