package acquire

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-nutriscan/internal/errors"
)

// BlobSource downloads a photo from Azure blob storage. Refs use the
// form azblob://container/path/to/blob.
type BlobSource struct {
	client    *azblob.Client
	container string
	blob      string
}

// NewBlobSource creates a blob source from shared key credentials and a
// blob reference.
func NewBlobSource(accountName, accountKey, ref string) (*BlobSource, error) {
	container, blob, err := splitBlobRef(ref)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob reference", err)
	}

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid azure credentials", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create azure client", err)
	}

	return &BlobSource{client: client, container: container, blob: blob}, nil
}

// Acquire downloads and decodes the blob.
func (s *BlobSource) Acquire(ctx context.Context) (image.Image, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("blob download failed", err)
	}

	body := resp.Body
	defer body.Close()

	img, _, err := image.Decode(body)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to decode blob image", err)
	}
	return img, nil
}

func splitBlobRef(ref string) (container, blob string, err error) {
	trimmed := strings.TrimPrefix(ref, "azblob://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected azblob://container/blob, got %q", ref)
	}
	return parts[0], parts[1], nil
}
