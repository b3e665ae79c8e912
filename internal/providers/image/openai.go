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
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "dall-e-3"

	openAISizeSquare = "1024x1024"
	openAISizeWide   = "1792x1024"
	openAISizeTall   = "1024x1792"
)

// OpenAIOptions controls how the OpenAI generator is configured.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAIGenerator renders posters through the OpenAI image generation
// endpoint. The API supports only three fixed sizes, so the requested
// dimensions are bucketed by aspect ratio.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON       string `json:"b64_json"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// NewOpenAIGenerator constructs an OpenAI-backed poster generator.
func NewOpenAIGenerator(opts OpenAIOptions) *OpenAIGenerator {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  defaultHTTPClient(opts.HTTPClient),
		now:     time.Now,
	}
}

// Model returns the configured OpenAI model identifier.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate requests a single high-quality base64-encoded image.
func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (*GeneratedImage, error) {
	payload := openAIImageRequest{
		Model:          g.model,
		Prompt:         req.Prompt,
		N:              1,
		Size:           bucketOpenAISize(req.Width, req.Height),
		Quality:        "hd",
		ResponseFormat: "b64_json",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	endpoint := g.baseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &ProviderError{Provider: "openai", Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{Provider: "openai", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out openAIImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ProviderError{Provider: "openai", Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if len(out.Data) == 0 || out.Data[0].B64JSON == "" {
		return nil, &ProviderError{Provider: "openai", Reason: "no image data in response"}
	}
	data, err := base64.StdEncoding.DecodeString(out.Data[0].B64JSON)
	if err != nil {
		return nil, &ProviderError{Provider: "openai", Reason: fmt.Sprintf("decode image data: %v", err)}
	}

	return &GeneratedImage{
		Data:              data,
		MIME:              "image/png",
		SuggestedFilename: suggestFilename(g.now()),
	}, nil
}

// bucketOpenAISize maps arbitrary target dimensions onto the three sizes the
// API accepts. The inequalities are strict: a ratio of exactly 1.5 stays square.
func bucketOpenAISize(width, height int) string {
	if width <= 0 || height <= 0 {
		return openAISizeSquare
	}
	ratio := float64(width) / float64(height)
	switch {
	case ratio > 1.5:
		return openAISizeWide
	case ratio < 0.67:
		return openAISizeTall
	default:
		return openAISizeSquare
	}
}

var _ Generator = (*OpenAIGenerator)(nil)
