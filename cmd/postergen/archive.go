package main

import (
	"encoding/base64"
	"os"
	"path/filepath"

	"postergen/internal/poster"
	"postergen/pkg/zip"
)

// writeArchive bundles the run's successful posters into a zip on disk.
// Image bytes come from the content blocks; filenames come from the details,
// which list successes in the same order.
func writeArchive(path string, result *poster.Result) error {
	var names []string
	for _, outcome := range result.Details.Results {
		if outcome.Success {
			names = append(names, filepath.Base(outcome.OutputPath))
		}
	}

	var assets []zip.Asset
	i := 0
	for _, block := range result.Content {
		if block.Type != "image" || i >= len(names) {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(block.Data)
		if err != nil {
			continue
		}
		assets = append(assets, zip.Asset{Filename: names[i], MIME: block.MIME, Data: data})
		i++
	}

	return os.WriteFile(path, zip.ArchiveAssets(assets), 0o644)
}
