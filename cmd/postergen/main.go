// Command postergen performs a single poster-generation run from the shell:
// one provider, one size, one or more styles, progress on stderr, summary on
// stdout. SIGINT cancels between styles; completed posters are kept.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"postergen/internal/infra"
	"postergen/internal/poster"
	"postergen/internal/providers/image"
	"postergen/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "postergen:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var (
		eventInfo = flag.String("event", "", "event description to render (required)")
		styleIDs  = flag.String("styles", "", "comma-separated style ids (default: all styles)")
		sizeKey   = flag.String("size", "", "target size key (default: a4)")
		provider  = flag.String("provider", "", "provider id: gemini, grok, or openai")
		locale    = flag.String("locale", "", "summary locale (default: zh-TW)")
		outDir    = flag.String("out", "", "output root directory (default: OUTPUT_ROOT)")
		zipPath   = flag.String("zip", "", "also bundle successful posters into this zip file")
	)
	flag.Parse()

	if strings.TrimSpace(*eventInfo) == "" {
		flag.Usage()
		return errors.New("-event is required")
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(cfg.AppEnv)

	root := cfg.OutputRoot
	if *outDir != "" {
		root = *outDir
	}
	store, err := storage.NewFileStore(root)
	if err != nil {
		return err
	}

	registry := image.NewRegistry(image.RegistryOptions{
		BaseURLs: map[string]string{
			image.ProviderGemini: cfg.GeminiBaseURL,
			image.ProviderGrok:   cfg.GrokBaseURL,
			image.ProviderOpenAI: cfg.OpenAIBaseURL,
		},
		Models: map[string]string{
			image.ProviderGemini: cfg.GeminiModel,
			image.ProviderGrok:   cfg.GrokModel,
			image.ProviderOpenAI: cfg.OpenAIModel,
		},
	})

	orchestrator, err := poster.New(poster.Config{
		Providers:       registry,
		Store:           store,
		DefaultProvider: cfg.DefaultProvider,
		Logger:          &logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := poster.NotifierFunc(func(index, total int, styleName string) {
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", index, total, styleName)
	})

	result, err := orchestrator.Run(ctx, poster.Request{
		EventInfo: *eventInfo,
		StyleIDs:  splitStyles(*styleIDs),
		SizeKey:   *sizeKey,
		Provider:  *provider,
		Locale:    orDefault(*locale, cfg.DefaultLocale),
	}, notifier)
	if err != nil {
		return err
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			fmt.Println(block.Text)
		}
	}

	if *zipPath != "" {
		if err := writeArchive(*zipPath, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "archive written to %s\n", *zipPath)
	}
	return nil
}

func splitStyles(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
