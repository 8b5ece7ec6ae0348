// Package ocr wraps the on-device text recognizer. The pipeline treats
// extraction as an opaque capability: no word order, layout, or noise
// correction guarantees beyond what the engine returns.
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	apperrors "go-nutriscan/internal/errors"
)

// Extractor produces the recognized text of an image. An empty string
// with a nil error is a valid outcome meaning nothing was recognized.
type Extractor interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
}

// TesseractExtractor implements Extractor on top of the Tesseract
// engine via gosseract.
type TesseractExtractor struct {
	languages []string
}

// NewTesseractExtractor creates an extractor for the given recognition
// languages; with none given the engine default applies.
func NewTesseractExtractor(languages ...string) *TesseractExtractor {
	return &TesseractExtractor{languages: languages}
}

// ExtractText runs recognition over the image. The image is handed to
// the engine as an in-memory PNG so callers can pass any decoded image.
func (e *TesseractExtractor) ExtractText(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.NewExtractionError("text extraction cancelled", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.NewExtractionError("failed to encode image for recognition", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return "", apperrors.NewExtractionError("failed to configure recognition languages", err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", apperrors.NewExtractionError("failed to load image into recognizer", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", apperrors.NewExtractionError("text recognition failed", err)
	}

	return strings.TrimSpace(text), nil
}
