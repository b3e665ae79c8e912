package image

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// GenerateRequest describes a normalized request passed to any poster provider.
// Width and height express the caller's target format; providers that cannot
// honor exact dimensions may ignore or approximate them.
type GenerateRequest struct {
	Prompt  string
	Width   int
	Height  int
	StyleID string
}

// GeneratedImage is a single rendered poster returned by a provider.
type GeneratedImage struct {
	Data              []byte
	MIME              string
	SuggestedFilename string
}

// Generator is the contract implemented by all poster image providers. Each
// call performs exactly one outbound HTTP request; there are no retries and no
// state retained between calls beyond the configured credential and model.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GeneratedImage, error)
}

// ProviderError reports a failed provider call. The vendor HTTP status and
// response body are preserved verbatim so the per-style failure summary stays
// diagnosable without server-side log access.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Reason     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

const defaultHTTPTimeout = 120 * time.Second

func defaultHTTPClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// suggestFilename names a freshly received poster. The timestamp is taken at
// image receipt, not at invocation start, so siblings within one run differ.
func suggestFilename(now time.Time) string {
	return fmt.Sprintf("poster-%d.png", now.UnixMilli())
}
