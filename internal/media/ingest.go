package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxFileSize is the per-file upload limit, checked before any transform or upload.
const MaxFileSize = 25 << 20 // 25 MB

var (
	// ErrUnsupportedMediaType is returned for mime types outside jpeg/png/gif/webp.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrPayloadTooLarge is returned for files above MaxFileSize.
	ErrPayloadTooLarge = errors.New("file too large")
	// ErrUploadFailed wraps object store failures.
	ErrUploadFailed = errors.New("upload failed")
)

// extByMime maps the accepted image mime types to file extensions.
var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Ingestor validates uploaded image bytes, applies a best-effort bounding
// resize, and externalizes them to object storage.
type Ingestor struct {
	store  ObjectStore
	logger *zap.SugaredLogger
}

// NewIngestor creates a new media ingestor
func NewIngestor(store ObjectStore, logger *zap.SugaredLogger) *Ingestor {
	return &Ingestor{store: store, logger: logger}
}

// Ingest stores one uploaded image and returns its stable reference URL.
func (in *Ingestor) Ingest(ctx context.Context, data []byte, mimeType string) (string, error) {
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(data))
	}
	ext, ok := extByMime[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mimeType)
	}

	// Best-effort storage-cost optimization; the original bytes are kept on
	// any resize failure.
	resized, err := boundImage(data, mimeType)
	if err != nil {
		in.logger.Warnw("image resize failed, storing original", "error", err)
		resized = data
	}

	key := fmt.Sprintf("photos/%s%s", uuid.New().String(), ext)
	url, err := in.store.Put(ctx, key, resized, mimeType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return url, nil
}
