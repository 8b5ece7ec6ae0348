// Package acquire obtains a decoded label photo from one of several
// backends: a local file (the camera/gallery analog), an HTTP URL, or an
// Azure blob.
package acquire

import (
	"context"
	"image"
	"os"
	"strings"

	apperrors "go-nutriscan/internal/errors"
)

// Source produces a decoded raster image exactly once per call.
type Source interface {
	Acquire(ctx context.Context) (image.Image, error)
}

// Azure credentials come from the standard environment so blob refs need
// no extra flags.
const (
	azureAccountEnv = "AZURE_STORAGE_ACCOUNT"
	azureKeyEnv     = "AZURE_STORAGE_KEY"
)

// ForRef selects a source from the reference's scheme: http(s):// URLs
// use the HTTP fetcher, azblob://container/blob uses Azure blob storage,
// anything else is treated as a local file path.
func ForRef(ref string) (Source, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return NewHTTPSource(ref), nil
	case strings.HasPrefix(ref, "azblob://"):
		account := os.Getenv(azureAccountEnv)
		key := os.Getenv(azureKeyEnv)
		if account == "" || key == "" {
			return nil, apperrors.NewValidationError(
				"azure blob refs require "+azureAccountEnv+" and "+azureKeyEnv, nil)
		}
		return NewBlobSource(account, key, ref)
	default:
		return NewFileSource(ref), nil
	}
}
