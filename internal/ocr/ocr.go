// Package ocr provides pluggable text recognition for image-only pages.
package ocr

import "context"

// Provider transcribes the text visible in a rendered page image (PNG).
// An empty string with a nil error means the page holds no readable text.
type Provider interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// Noop recognizes nothing; it disables the OCR fallback.
type Noop struct{}

func (Noop) Recognize(ctx context.Context, png []byte) (string, error) { return "", nil }
