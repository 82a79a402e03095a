package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// maxDimension bounds the longer side of stored photos.
const maxDimension = 1200

// boundImage downscales jpeg/png images so neither dimension exceeds
// maxDimension, preserving aspect ratio. Images already within bounds, and
// gif/webp payloads, pass through unchanged.
func boundImage(data []byte, mimeType string) ([]byte, error) {
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return data, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	w, h := boundedSize(cfg.Width, cfg.Height)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch mimeType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	case "image/png":
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// boundedSize scales (w, h) down so the longer side equals maxDimension.
func boundedSize(w, h int) (int, int) {
	if w >= h {
		return maxDimension, max(1, h*maxDimension/w)
	}
	return max(1, w*maxDimension/h), maxDimension
}
