package poster

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"postergen/internal/providers/image"
	"postergen/internal/storage"
)

// Configuration errors, detected before any network or filesystem activity.
var (
	ErrNoMatchingStyles    = errors.New("no matching styles")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Resolver yields a bound provider adapter for a provider identifier, or
// false when that provider is not usable.
type Resolver interface {
	Resolve(providerID string) (image.Generator, bool)
}

// Config assembles an Orchestrator. It is an explicit value so that multiple
// independent configurations can exist side by side (e.g. in tests); there is
// no package-level default.
type Config struct {
	Providers       Resolver
	Store           *storage.FileStore
	DefaultProvider string
	Logger          *zerolog.Logger
	Now             func() time.Time
}

// Orchestrator runs the sequential multi-style generation loop. One logical
// task per invocation; styles are generated strictly one after another, which
// keeps partial-failure bookkeeping trivial and progress ordering monotonic.
type Orchestrator struct {
	providers       Resolver
	store           *storage.FileStore
	defaultProvider string
	logger          zerolog.Logger
	now             func() time.Time
}

// New validates the config and builds an Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Providers == nil {
		return nil, errors.New("poster: provider resolver is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("poster: file store is required")
	}
	defaultProvider := cfg.DefaultProvider
	if defaultProvider == "" {
		defaultProvider = image.ProviderGemini
	}
	logger := zerolog.New(io.Discard)
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		providers:       cfg.Providers,
		store:           cfg.Store,
		defaultProvider: defaultProvider,
		logger:          logger,
		now:             now,
	}, nil
}

// Run generates one poster per selected style, sequentially, and aggregates
// per-style outcomes. A single style's provider failure never aborts sibling
// styles; the only early exit from the loop is cancellation of ctx, which
// yields the outcomes recorded so far.
func (o *Orchestrator) Run(ctx context.Context, req Request, notifier Notifier) (*Result, error) {
	styles := SelectStyles(req.StyleIDs)
	if len(styles) == 0 {
		return nil, ErrNoMatchingStyles
	}

	providerID := req.Provider
	if providerID == "" {
		providerID = o.defaultProvider
	}
	generator, ok := o.providers.Resolve(providerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, providerID)
	}

	size := ResolveSize(req.SizeKey)

	invocationDir := o.now().Format("20060102-150405")
	outputDir, err := o.store.EnsureDir(ctx, invocationDir)
	if err != nil {
		return nil, fmt.Errorf("poster: create output directory: %w", err)
	}

	o.logger.Info().
		Str("provider", providerID).
		Str("size", size.Key).
		Int("styles", len(styles)).
		Msg("poster: generation started")

	outcomes := make([]Outcome, 0, len(styles))
	for i, style := range styles {
		if notifier != nil {
			notifier.Progress(i+1, len(styles), style.Name)
		}
		// Cancellation is polled between styles only; an in-flight provider
		// call is allowed to finish or fail naturally, and its outcome is
		// still recorded.
		if ctx.Err() != nil {
			o.logger.Warn().Int("completed", len(outcomes)).Msg("poster: generation cancelled")
			break
		}

		outcomes = append(outcomes, o.generateOne(ctx, generator, style, size, req.EventInfo, invocationDir))
	}

	successful, failed := 0, 0
	for _, outcome := range outcomes {
		if outcome.Success {
			successful++
		} else {
			failed++
		}
	}

	summary := renderSummary(req.Locale, size, outcomes)
	content := make([]ContentBlock, 0, successful+1)
	content = append(content, ContentBlock{Type: "text", Text: summary})
	for _, outcome := range outcomes {
		if outcome.Success {
			content = append(content, ContentBlock{Type: "image", Data: outcome.ImageData, MIME: outcome.MIME})
		}
	}

	o.logger.Info().
		Int("successful", successful).
		Int("failed", failed).
		Str("output_dir", outputDir).
		Msg("poster: generation finished")

	return &Result{
		Content: content,
		Details: Details{
			OutputDir:  outputDir,
			Size:       size,
			Results:    stripImageData(outcomes),
			Successful: successful,
			Failed:     failed,
		},
	}, nil
}

func (o *Orchestrator) generateOne(ctx context.Context, generator image.Generator, style Style, size Size, eventInfo, invocationDir string) Outcome {
	outcome := Outcome{StyleID: style.ID, StyleName: style.Name}

	img, err := generator.Generate(ctx, image.GenerateRequest{
		Prompt:  style.BuildPrompt(eventInfo),
		Width:   size.Width,
		Height:  size.Height,
		StyleID: style.ID,
	})
	if err != nil {
		o.logger.Warn().Err(err).Str("style", style.ID).Msg("poster: style generation failed")
		outcome.Error = err.Error()
		return outcome
	}

	key := path.Join(invocationDir, style.ID+"-"+img.SuggestedFilename)
	written, err := o.store.Write(ctx, key, img.Data)
	if err != nil {
		o.logger.Warn().Err(err).Str("style", style.ID).Msg("poster: write failed")
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Success = true
	outcome.OutputPath = written
	outcome.MIME = img.MIME
	outcome.ImageData = base64.StdEncoding.EncodeToString(img.Data)
	return outcome
}

func stripImageData(outcomes []Outcome) []Outcome {
	out := make([]Outcome, len(outcomes))
	copy(out, outcomes)
	for i := range out {
		out[i].ImageData = ""
	}
	return out
}
