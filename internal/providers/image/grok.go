package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultGrokBaseURL = "https://api.x.ai/v1"
	defaultGrokModel   = "grok-2-image"
)

// GrokOptions controls how the Grok generator is configured.
type GrokOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GrokGenerator renders posters through the xAI image generation endpoint.
// Grok picks its own output dimensions; width/height are not sent.
type GrokGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

type grokImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type grokImageResponse struct {
	Data []struct {
		B64JSON       string `json:"b64_json"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// NewGrokGenerator constructs a Grok-backed poster generator.
func NewGrokGenerator(opts GrokOptions) *GrokGenerator {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGrokBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGrokModel
	}
	return &GrokGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  defaultHTTPClient(opts.HTTPClient),
		now:     time.Now,
	}
}

// Model returns the configured Grok model identifier.
func (g *GrokGenerator) Model() string {
	return g.model
}

// Generate requests a single base64-encoded image for the prompt.
func (g *GrokGenerator) Generate(ctx context.Context, req GenerateRequest) (*GeneratedImage, error) {
	payload := grokImageRequest{
		Model:          g.model,
		Prompt:         req.Prompt,
		N:              1,
		ResponseFormat: "b64_json",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("grok: marshal request: %w", err)
	}

	endpoint := g.baseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("grok: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: "grok", Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{Provider: "grok", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out grokImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ProviderError{Provider: "grok", Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if len(out.Data) == 0 || out.Data[0].B64JSON == "" {
		return nil, &ProviderError{Provider: "grok", Reason: "no image data in response"}
	}
	data, err := base64.StdEncoding.DecodeString(out.Data[0].B64JSON)
	if err != nil {
		return nil, &ProviderError{Provider: "grok", Reason: fmt.Sprintf("decode image data: %v", err)}
	}

	return &GeneratedImage{
		Data:              data,
		MIME:              "image/png",
		SuggestedFilename: suggestFilename(g.now()),
	}, nil
}

var _ Generator = (*GrokGenerator)(nil)
