package poster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postergen/internal/providers/image"
	"postergen/internal/storage"
)

type stubGenerator struct {
	errs     []error
	calls    int
	requests []image.GenerateRequest
	onCall   func(call int)
}

func (s *stubGenerator) Generate(_ context.Context, req image.GenerateRequest) (*image.GeneratedImage, error) {
	call := s.calls
	s.calls++
	s.requests = append(s.requests, req)
	if s.onCall != nil {
		s.onCall(call)
	}
	if call < len(s.errs) && s.errs[call] != nil {
		return nil, s.errs[call]
	}
	return &image.GeneratedImage{
		Data:              []byte(fmt.Sprintf("png-bytes-%d", call)),
		MIME:              "image/png",
		SuggestedFilename: fmt.Sprintf("poster-%d.png", 1700000000000+call),
	}, nil
}

type stubResolver struct {
	generator image.Generator
	ok        bool
	resolved  []string
}

func (s *stubResolver) Resolve(providerID string) (image.Generator, bool) {
	s.resolved = append(s.resolved, providerID)
	if !s.ok {
		return nil, false
	}
	return s.generator, true
}

type progressRecord struct {
	index, total int
	styleName    string
}

func newTestOrchestrator(t *testing.T, resolver Resolver) (*Orchestrator, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFileStore(root)
	require.NoError(t, err)
	orch, err := New(Config{
		Providers: resolver,
		Store:     store,
		Now: func() time.Time {
			return time.Date(2025, 3, 22, 15, 30, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)
	return orch, root
}

func TestNewRequiresResolverAndStore(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing resolver")
	}
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	if _, err := New(Config{Store: store}); err == nil {
		t.Fatal("expected error for missing resolver")
	}
	if _, err := New(Config{Providers: &stubResolver{}}); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestRunSingleStyleSuccess(t *testing.T) {
	gen := &stubGenerator{}
	orch, _ := newTestOrchestrator(t, &stubResolver{generator: gen, ok: true})

	result, err := orch.Run(context.Background(), Request{
		EventInfo: "Outdoor concert, 2025-03-22 15:30, Riverside Park",
		StyleIDs:  []string{"tjc-style"},
		SizeKey:   "instagram",
	}, nil)
	require.NoError(t, err)

	require.Len(t, result.Details.Results, 1)
	outcome := result.Details.Results[0]
	assert.True(t, outcome.Success)
	assert.Equal(t, "tjc-style", outcome.StyleID)
	assert.Empty(t, outcome.Error)
	assert.Equal(t, 1, result.Details.Successful)
	assert.Equal(t, 0, result.Details.Failed)

	// The written file carries the style id prefix and lives in the
	// per-invocation directory.
	assert.Equal(t, "20250322-153000", filepath.Base(result.Details.OutputDir))
	assert.Equal(t, "tjc-style-poster-1700000000000.png", filepath.Base(outcome.OutputPath))
	data, err := os.ReadFile(outcome.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes-0"), data)

	// Prompt substitution and size resolution reach the provider call.
	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].Prompt, "Outdoor concert")
	assert.NotContains(t, gen.requests[0].Prompt, "{EVENT_INFO}")
	assert.Equal(t, 1080, gen.requests[0].Width)
	assert.Equal(t, 1080, gen.requests[0].Height)

	// Content: one text summary block followed by one image block.
	require.Len(t, result.Content, 2)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Contains(t, result.Content[0].Text, "成功：1 張")
	assert.Equal(t, "image", result.Content[1].Type)
	assert.NotEmpty(t, result.Content[1].Data)

	// Details carry paths only, never inline image bytes.
	assert.Empty(t, outcome.ImageData)
}

func TestRunPartialFailureContinues(t *testing.T) {
	gen := &stubGenerator{
		errs: []error{&image.ProviderError{Provider: "openai", StatusCode: 500, Body: "overloaded"}},
	}
	orch, _ := newTestOrchestrator(t, &stubResolver{generator: gen, ok: true})

	result, err := orch.Run(context.Background(), Request{
		EventInfo: "Bake sale",
		StyleIDs:  []string{"tjc-style", "creative-free"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, result.Details.Results, 2)
	assert.False(t, result.Details.Results[0].Success)
	assert.Contains(t, result.Details.Results[0].Error, "status 500")
	assert.True(t, result.Details.Results[1].Success)
	assert.Equal(t, 1, result.Details.Successful)
	assert.Equal(t, 1, result.Details.Failed)
	assert.Equal(t, 2, gen.calls)

	// Summary reports both the failure and the surviving success.
	assert.Contains(t, result.Content[0].Text, "成功：1 張")
	assert.Contains(t, result.Content[0].Text, "失敗：1 張")
	assert.Contains(t, result.Content[0].Text, "overloaded")
}

func TestRunNoMatchingStyles(t *testing.T) {
	gen := &stubGenerator{}
	orch, root := newTestOrchestrator(t, &stubResolver{generator: gen, ok: true})

	_, err := orch.Run(context.Background(), Request{
		EventInfo: "Bake sale",
		StyleIDs:  []string{"no-such-style"},
	}, nil)
	assert.ErrorIs(t, err, ErrNoMatchingStyles)
	assert.Zero(t, gen.calls)
	assertNoOutputDirs(t, root)
}

func TestRunProviderUnavailable(t *testing.T) {
	orch, root := newTestOrchestrator(t, &stubResolver{ok: false})

	_, err := orch.Run(context.Background(), Request{
		EventInfo: "Bake sale",
		Provider:  "openai",
	}, nil)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "openai")
	assertNoOutputDirs(t, root)
}

func TestRunDefaultsProviderWhenUnset(t *testing.T) {
	resolver := &stubResolver{generator: &stubGenerator{}, ok: true}
	orch, _ := newTestOrchestrator(t, resolver)

	_, err := orch.Run(context.Background(), Request{
		EventInfo: "Bake sale",
		StyleIDs:  []string{"tjc-style"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, resolver.resolved, 1)
	assert.Equal(t, image.ProviderGemini, resolver.resolved[0])
}

func TestRunCancellationBetweenStyles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &stubGenerator{}
	gen.onCall = func(call int) {
		if call == 0 {
			cancel()
		}
	}
	orch, _ := newTestOrchestrator(t, &stubResolver{generator: gen, ok: true})

	result, err := orch.Run(ctx, Request{EventInfo: "Bake sale"}, nil)
	require.NoError(t, err)

	// The in-flight first style completed and was kept; no further style was
	// attempted after the cancellation.
	require.Len(t, result.Details.Results, 1)
	assert.True(t, result.Details.Results[0].Success)
	assert.Equal(t, 1, gen.calls)
}

func TestRunProgressPrecedesEachProviderCall(t *testing.T) {
	var events []string
	gen := &stubGenerator{}
	gen.onCall = func(call int) {
		events = append(events, fmt.Sprintf("generate %d", call+1))
	}
	orch, _ := newTestOrchestrator(t, &stubResolver{generator: gen, ok: true})

	var records []progressRecord
	notifier := NotifierFunc(func(index, total int, styleName string) {
		events = append(events, fmt.Sprintf("notify %d", index))
		records = append(records, progressRecord{index, total, styleName})
	})

	result, err := orch.Run(context.Background(), Request{
		EventInfo: "Bake sale",
		StyleIDs:  []string{"tjc-style", "modern-minimal", "creative-free"},
	}, notifier)
	require.NoError(t, err)
	require.Len(t, result.Details.Results, 3)

	require.Len(t, records, 3)
	for i, record := range records {
		assert.Equal(t, i+1, record.index)
		assert.Equal(t, 3, record.total)
		assert.NotEmpty(t, record.styleName)
	}
	assert.Equal(t, []string{
		"notify 1", "generate 1",
		"notify 2", "generate 2",
		"notify 3", "generate 3",
	}, events)
}

func TestRunOutcomesFollowCatalogOrder(t *testing.T) {
	gen := &stubGenerator{}
	orch, _ := newTestOrchestrator(t, &stubResolver{generator: gen, ok: true})

	result, err := orch.Run(context.Background(), Request{
		EventInfo: "Bake sale",
		StyleIDs:  []string{"creative-free", "warm-community", "tjc-style"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, result.Details.Results, 3)
	assert.Equal(t, "tjc-style", result.Details.Results[0].StyleID)
	assert.Equal(t, "warm-community", result.Details.Results[1].StyleID)
	assert.Equal(t, "creative-free", result.Details.Results[2].StyleID)
}

func assertNoOutputDirs(t *testing.T, root string) {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output directory may be created for rejected requests")
}
