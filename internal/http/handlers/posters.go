package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"postergen/internal/middleware"
	"postergen/internal/poster"
	"postergen/pkg/zip"
)

type generateRequest struct {
	EventInfo string   `json:"event_info"`
	Styles    []string `json:"styles,omitempty"`
	Size      string   `json:"size,omitempty"`
	Provider  string   `json:"provider,omitempty"`
}

// PostersGenerate runs one generation invocation. The response is the mixed
// content-block sequence plus the details payload; with Accept:
// text/event-stream, progress notifications are streamed before the final
// result; with ?format=zip, successful posters come back as an archive.
func (a *App) PostersGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.EventInfo) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "event_info is required")
		return
	}

	run := poster.Request{
		EventInfo: req.EventInfo,
		StyleIDs:  req.Styles,
		SizeKey:   req.Size,
		Provider:  req.Provider,
		Locale:    middleware.LocaleFromContext(r.Context()),
	}

	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		a.streamGenerate(w, r, run)
		return
	}

	result, err := a.Runner.Run(r.Context(), run, nil)
	if err != nil {
		a.generateError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "zip" {
		a.writeZip(w, result)
		return
	}
	a.json(w, http.StatusOK, result)
}

func (a *App) generateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, poster.ErrNoMatchingStyles):
		a.error(w, http.StatusBadRequest, "no_matching_styles", err.Error())
	case errors.Is(err, poster.ErrProviderUnavailable):
		a.error(w, http.StatusBadRequest, "provider_unavailable", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("handlers: generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "generation failed")
	}
}

// streamGenerate delivers the incremental-update channel as server-sent
// events: one progress event per style, then a single result (or error) event.
func (a *App) streamGenerate(w http.ResponseWriter, r *http.Request, run poster.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.error(w, http.StatusNotAcceptable, "not_acceptable", "streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	notifier := poster.NotifierFunc(func(index, total int, styleName string) {
		payload, _ := json.Marshal(map[string]any{
			"progress": index,
			"total":    total,
			"style":    styleName,
		})
		fmt.Fprintf(w, "event: progress\ndata: %s\n\n", payload)
		flusher.Flush()
	})

	result, err := a.Runner.Run(r.Context(), run, notifier)
	if err != nil {
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
		flusher.Flush()
		return
	}
	payload, _ := json.Marshal(result)
	fmt.Fprintf(w, "event: result\ndata: %s\n\n", payload)
	flusher.Flush()
}

// writeZip archives the successful posters. Content blocks carry the image
// bytes; details carry the filenames, in the same success order.
func (a *App) writeZip(w http.ResponseWriter, result *poster.Result) {
	var names []string
	for _, outcome := range result.Details.Results {
		if outcome.Success {
			names = append(names, filepath.Base(outcome.OutputPath))
		}
	}
	var assets []zip.Asset
	i := 0
	for _, block := range result.Content {
		if block.Type != "image" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(block.Data)
		if err != nil || i >= len(names) {
			break
		}
		assets = append(assets, zip.Asset{Filename: names[i], MIME: block.MIME, Data: data})
		i++
	}
	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename=posters.zip")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// PostersStyles lists the style catalog: ids, display names, descriptions.
func (a *App) PostersStyles(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": poster.Styles()})
}

// PostersSizes lists the size mapping: keys, names, dimensions.
func (a *App) PostersSizes(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": poster.Sizes()})
}
