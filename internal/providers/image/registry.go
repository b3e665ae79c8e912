package image

import (
	"net/http"
	"os"
	"strings"
)

// Provider identifiers accepted by the registry.
const (
	ProviderGemini = "gemini"
	ProviderGrok   = "grok"
	ProviderOpenAI = "openai"
)

// Descriptor is the immutable configuration for one provider. A disabled
// descriptor or a missing credential makes the provider unavailable at
// runtime regardless of descriptor presence.
type Descriptor struct {
	APIKeyEnv    string
	AltAPIKeyEnv string
	Enabled      bool
	DefaultModel string
	Models       []string
}

// CredentialLookup resolves a named credential, typically from the process
// environment. It is injected so tests can supply fake credentials without
// touching real environment variables.
type CredentialLookup func(name string) string

// AdapterConfig is what a Factory receives to build a bound adapter.
type AdapterConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Factory builds a provider adapter bound to a credential and model. Adding a
// provider means registering one more factory and descriptor; the orchestrator
// never changes.
type Factory func(cfg AdapterConfig) Generator

// RegistryOptions configures a Registry. Zero values fall back to the built-in
// descriptor set, environment credential lookup, and vendor default base URLs.
type RegistryOptions struct {
	Descriptors map[string]Descriptor
	Factories   map[string]Factory
	Credentials CredentialLookup
	HTTPClient  *http.Client
	BaseURLs    map[string]string
	Models      map[string]string
}

// Registry maps provider identifiers to adapter factories, gated by
// per-provider credentials.
type Registry struct {
	descriptors map[string]Descriptor
	factories   map[string]Factory
	credentials CredentialLookup
	httpClient  *http.Client
	baseURLs    map[string]string
	models      map[string]string
}

// DefaultDescriptors returns the built-in provider configuration. Gemini
// accepts GOOGLE_API_KEY as an alternate credential name.
func DefaultDescriptors() map[string]Descriptor {
	return map[string]Descriptor{
		ProviderGemini: {
			APIKeyEnv:    "GEMINI_API_KEY",
			AltAPIKeyEnv: "GOOGLE_API_KEY",
			Enabled:      true,
			DefaultModel: defaultGeminiModel,
			Models:       []string{defaultGeminiModel, "gemini-2.5-flash-image"},
		},
		ProviderGrok: {
			APIKeyEnv:    "XAI_API_KEY",
			Enabled:      true,
			DefaultModel: defaultGrokModel,
			Models:       []string{defaultGrokModel},
		},
		ProviderOpenAI: {
			APIKeyEnv:    "OPENAI_API_KEY",
			Enabled:      true,
			DefaultModel: defaultOpenAIModel,
			Models:       []string{defaultOpenAIModel, "gpt-image-1"},
		},
	}
}

func defaultFactories() map[string]Factory {
	return map[string]Factory{
		ProviderGemini: func(cfg AdapterConfig) Generator {
			return NewGeminiGenerator(GeminiOptions{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, HTTPClient: cfg.HTTPClient})
		},
		ProviderGrok: func(cfg AdapterConfig) Generator {
			return NewGrokGenerator(GrokOptions{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, HTTPClient: cfg.HTTPClient})
		},
		ProviderOpenAI: func(cfg AdapterConfig) Generator {
			return NewOpenAIGenerator(OpenAIOptions{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL, HTTPClient: cfg.HTTPClient})
		},
	}
}

// NewRegistry constructs a Registry from the given options.
func NewRegistry(opts RegistryOptions) *Registry {
	descriptors := opts.Descriptors
	if descriptors == nil {
		descriptors = DefaultDescriptors()
	}
	factories := opts.Factories
	if factories == nil {
		factories = defaultFactories()
	}
	credentials := opts.Credentials
	if credentials == nil {
		credentials = func(name string) string {
			return strings.TrimSpace(os.Getenv(name))
		}
	}
	return &Registry{
		descriptors: descriptors,
		factories:   factories,
		credentials: credentials,
		httpClient:  opts.HTTPClient,
		baseURLs:    opts.BaseURLs,
		models:      opts.Models,
	}
}

// Resolve returns an adapter bound to the provider's credential and model, or
// false when the provider is unknown, disabled, or has no credential
// configured. Absence of a credential is a normal "not configured" outcome,
// never an error.
func (r *Registry) Resolve(providerID string) (Generator, bool) {
	desc, ok := r.descriptors[providerID]
	if !ok || !desc.Enabled {
		return nil, false
	}
	factory, ok := r.factories[providerID]
	if !ok {
		return nil, false
	}

	key := r.credentials(desc.APIKeyEnv)
	if key == "" && desc.AltAPIKeyEnv != "" {
		key = r.credentials(desc.AltAPIKeyEnv)
	}
	if key == "" {
		return nil, false
	}

	return factory(AdapterConfig{
		APIKey:     key,
		Model:      r.modelFor(providerID, desc),
		BaseURL:    r.baseURLs[providerID],
		HTTPClient: r.httpClient,
	}), true
}

// modelFor applies a configured model override when it is one of the
// descriptor's known models; anything else falls back to the default.
func (r *Registry) modelFor(providerID string, desc Descriptor) string {
	override := strings.TrimSpace(r.models[providerID])
	if override == "" {
		return desc.DefaultModel
	}
	for _, m := range desc.Models {
		if m == override {
			return override
		}
	}
	return desc.DefaultModel
}
