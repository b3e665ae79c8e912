package image

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubImageGenerator struct{}

func (*stubImageGenerator) Generate(context.Context, GenerateRequest) (*GeneratedImage, error) {
	return &GeneratedImage{Data: []byte("x"), MIME: "image/png", SuggestedFilename: "poster-0.png"}, nil
}

func credsFrom(m map[string]string) CredentialLookup {
	return func(name string) string { return m[name] }
}

func TestRegistryResolveWithCredential(t *testing.T) {
	registry := NewRegistry(RegistryOptions{
		Credentials: credsFrom(map[string]string{"GEMINI_API_KEY": "g-key"}),
	})

	gen, ok := registry.Resolve(ProviderGemini)
	require.True(t, ok)
	gemini, isGemini := gen.(*GeminiGenerator)
	require.True(t, isGemini)
	assert.Equal(t, "g-key", gemini.apiKey)
	assert.Equal(t, defaultGeminiModel, gemini.Model())
}

func TestRegistryResolveAlternateCredentialName(t *testing.T) {
	registry := NewRegistry(RegistryOptions{
		Credentials: credsFrom(map[string]string{"GOOGLE_API_KEY": "alt-key"}),
	})

	gen, ok := registry.Resolve(ProviderGemini)
	require.True(t, ok)
	assert.Equal(t, "alt-key", gen.(*GeminiGenerator).apiKey)
}

func TestRegistryResolvePrimaryCredentialWins(t *testing.T) {
	registry := NewRegistry(RegistryOptions{
		Credentials: credsFrom(map[string]string{
			"GEMINI_API_KEY": "primary",
			"GOOGLE_API_KEY": "alternate",
		}),
	})

	gen, ok := registry.Resolve(ProviderGemini)
	require.True(t, ok)
	assert.Equal(t, "primary", gen.(*GeminiGenerator).apiKey)
}

func TestRegistryResolveMissingCredential(t *testing.T) {
	registry := NewRegistry(RegistryOptions{Credentials: credsFrom(nil)})

	for _, id := range []string{ProviderGemini, ProviderGrok, ProviderOpenAI} {
		_, ok := registry.Resolve(id)
		assert.Falsef(t, ok, "%s must be unavailable without a credential", id)
	}
}

func TestRegistryResolveUnknownProvider(t *testing.T) {
	registry := NewRegistry(RegistryOptions{
		Credentials: credsFrom(map[string]string{"GEMINI_API_KEY": "g-key"}),
	})
	_, ok := registry.Resolve("midjourney")
	assert.False(t, ok)
}

func TestRegistryResolveDisabledProvider(t *testing.T) {
	descriptors := DefaultDescriptors()
	desc := descriptors[ProviderOpenAI]
	desc.Enabled = false
	descriptors[ProviderOpenAI] = desc

	registry := NewRegistry(RegistryOptions{
		Descriptors: descriptors,
		Credentials: credsFrom(map[string]string{"OPENAI_API_KEY": "o-key"}),
	})
	_, ok := registry.Resolve(ProviderOpenAI)
	assert.False(t, ok)
}

func TestRegistryModelOverride(t *testing.T) {
	registry := NewRegistry(RegistryOptions{
		Credentials: credsFrom(map[string]string{"GEMINI_API_KEY": "g-key"}),
		Models:      map[string]string{ProviderGemini: "gemini-2.5-flash-image"},
	})

	gen, ok := registry.Resolve(ProviderGemini)
	require.True(t, ok)
	assert.Equal(t, "gemini-2.5-flash-image", gen.(*GeminiGenerator).Model())
}

func TestRegistryModelOverrideUnknownFallsBack(t *testing.T) {
	registry := NewRegistry(RegistryOptions{
		Credentials: credsFrom(map[string]string{"XAI_API_KEY": "x-key"}),
		Models:      map[string]string{ProviderGrok: "grok-experimental"},
	})

	gen, ok := registry.Resolve(ProviderGrok)
	require.True(t, ok)
	assert.Equal(t, defaultGrokModel, gen.(*GrokGenerator).Model())
}

func TestRegistryCustomFactory(t *testing.T) {
	var received AdapterConfig
	registry := NewRegistry(RegistryOptions{
		Descriptors: map[string]Descriptor{
			"custom": {APIKeyEnv: "CUSTOM_KEY", Enabled: true, DefaultModel: "custom-1", Models: []string{"custom-1"}},
		},
		Factories: map[string]Factory{
			"custom": func(cfg AdapterConfig) Generator {
				received = cfg
				return &stubImageGenerator{}
			},
		},
		Credentials: credsFrom(map[string]string{"CUSTOM_KEY": "c-key"}),
		BaseURLs:    map[string]string{"custom": "http://custom.test"},
	})

	_, ok := registry.Resolve("custom")
	require.True(t, ok)
	assert.Equal(t, "c-key", received.APIKey)
	assert.Equal(t, "custom-1", received.Model)
	assert.Equal(t, "http://custom.test", received.BaseURL)
}
