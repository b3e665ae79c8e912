package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"postergen/internal/http/handlers"
	"postergen/internal/http/httpapi"
	"postergen/internal/infra"
	"postergen/internal/poster"
	"postergen/internal/providers/image"
	"postergen/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewFileStore(cfg.OutputRoot)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
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
		logger.Fatal().Err(err).Msg("failed to configure orchestrator")
	}

	app := handlers.NewApp(orchestrator, logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
