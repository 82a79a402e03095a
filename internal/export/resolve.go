package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// EmbeddedImage is a photo payload carried inside a snapshot document, fully
// self-contained so the rendered page needs no network access.
type EmbeddedImage struct {
	MimeType string
	Data     []byte
}

// DataURI returns the image as a data URI. Typed template.URL so html/template
// accepts it inside src/href attributes.
func (img EmbeddedImage) DataURI() template.URL {
	return template.URL("data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data))
}

// PhotoResolver turns one photo reference URL into an embedded payload.
// Implementations either fetch over the network or read a previously
// persisted local copy.
type PhotoResolver interface {
	Resolve(ctx context.Context, entryID int64, index int, url string) (EmbeddedImage, error)
}

// candidateExts is the fixed probe order for cached photo files.
var candidateExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// photoFileName is the deterministic per-entry-indexed name photos are
// persisted under, e.g. entry-12-photo-1.jpg. Index is 1-based in submission
// order.
func photoFileName(entryID int64, index int, ext string) string {
	return fmt.Sprintf("entry-%d-photo-%d%s", entryID, index, ext)
}

// FetchResolver downloads photos over the network and persists a local copy
// under the deterministic name, so later offline runs can use CacheResolver.
type FetchResolver struct {
	Client   *http.Client
	PhotoDir string
}

func (r *FetchResolver) Resolve(ctx context.Context, entryID int64, index int, url string) (EmbeddedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return EmbeddedImage{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return EmbeddedImage{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EmbeddedImage{}, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return EmbeddedImage{}, fmt.Errorf("read %s: %w", url, err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	ext, ok := extByMime[mimeType]
	if !ok {
		// Unknown declared type: keep the bytes, default to jpeg.
		ext = ".jpg"
		mimeType = "image/jpeg"
	}

	path := filepath.Join(r.PhotoDir, photoFileName(entryID, index, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return EmbeddedImage{}, fmt.Errorf("persist %s: %w", path, err)
	}

	return EmbeddedImage{MimeType: mimeType, Data: data}, nil
}

// CacheResolver reads photos persisted by a previous run, probing the
// candidate extensions in fixed order until one exists. Used for offline
// re-runs against an unchanged photo directory.
type CacheResolver struct {
	PhotoDir string
}

func (r *CacheResolver) Resolve(_ context.Context, entryID int64, index int, _ string) (EmbeddedImage, error) {
	for _, ext := range candidateExts {
		path := filepath.Join(r.PhotoDir, photoFileName(entryID, index, ext))
		data, err := os.ReadFile(path)
		if err == nil {
			return EmbeddedImage{MimeType: mimeByExt[ext], Data: data}, nil
		}
	}
	return EmbeddedImage{}, fmt.Errorf("no cached photo for entry %d photo %d", entryID, index)
}
