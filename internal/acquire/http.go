package acquire

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	apperrors "go-nutriscan/internal/errors"
)

const fetchAttempts = 3

// HTTPSource downloads a photo over HTTP. The transport is tuned for a
// single image download per invocation.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for an image URL.
func NewHTTPSource(url string) *HTTPSource {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPSource{
		url: url,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// Acquire fetches and decodes the image. Transient failures and 5xx
// statuses are retried a bounded number of times; 4xx statuses are not.
func (s *HTTPSource) Acquire(ctx context.Context) (image.Image, error) {
	resp, err := s.fetch(ctx)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to fetch image", err)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to decode fetched image", err)
	}
	return img, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, */*")
	req.Header.Set("User-Agent", "go-nutriscan/1.0")

	var lastErr error
	for attempt := 0; attempt < fetchAttempts; attempt++ {
		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
		} else {
			switch {
			case resp.StatusCode == http.StatusOK:
				return resp, nil
			case resp.StatusCode >= 400 && resp.StatusCode < 500:
				resp.Body.Close()
				return nil, fmt.Errorf("client error: status code %d", resp.StatusCode)
			default:
				resp.Body.Close()
				lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			}
		}

		if attempt < fetchAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("failed to fetch image after %d attempts: %w", fetchAttempts, lastErr)
}
