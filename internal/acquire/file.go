package acquire

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	apperrors "go-nutriscan/internal/errors"
)

// FileSource reads a photo from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local image path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Acquire opens and decodes the image file.
func (s *FileSource) Acquire(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewAcquisitionError("image acquisition cancelled", err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to open image file", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to decode image file", err)
	}
	return img, nil
}
