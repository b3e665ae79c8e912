package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"postergen/internal/infra"
	"postergen/internal/poster"
)

// Runner is the orchestration surface the handlers depend on.
type Runner interface {
	Run(ctx context.Context, req poster.Request, notifier poster.Notifier) (*poster.Result, error)
}

// App bundles handler dependencies.
type App struct {
	Runner Runner
	Logger infra.Logger
}

// NewApp constructs the handler container.
func NewApp(runner Runner, logger infra.Logger) *App {
	return &App{Runner: runner, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
