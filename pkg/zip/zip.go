package zip

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// Asset is one file to place into an archive.
type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets bundles the assets into a single in-memory zip. Missing or
// colliding filenames are repaired rather than rejected, since the archive is
// a convenience download, not a system of record.
func ArchiveAssets(assets []Asset) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]int, len(assets))
	for i, asset := range assets {
		base := strings.TrimSpace(asset.Filename)
		if base == "" {
			base = fmt.Sprintf("asset-%d%s", i+1, extensionForMIME(asset.MIME))
		}
		name := base
		if n := seen[base]; n > 0 {
			name = fmt.Sprintf("%d-%s", n+1, base)
		}
		seen[base]++
		w, err := zw.Create(name)
		if err != nil {
			continue
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}

func extensionForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
