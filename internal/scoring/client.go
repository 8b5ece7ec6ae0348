// Package scoring talks to the remote ingredient scoring service. The
// service's algorithm is a black box; only its wire contract is known
// here.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "go-nutriscan/internal/errors"
	"go-nutriscan/pkg/models"
)

// DefaultProductName is the hint sent when the caller has none.
const DefaultProductName = "Scanned Product"

// Client is the HTTP client for the scoring service. It sends at most
// one request per Analyze call: no retries, no idempotency assumptions.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a scoring client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Analyze submits sanitized ingredient text and a product name hint to
// POST /analyze. Success requires transport success, a 2xx status and a
// non-empty, parseable body; every other outcome is a transport error.
// A parseable body carrying a service error indicator is returned as a
// valid document; the renderer degrades it.
func (c *Client) Analyze(ctx context.Context, ingredients, productName string) (*models.AnalysisResult, error) {
	if productName == "" {
		productName = DefaultProductName
	}

	payload, err := json.Marshal(models.AnalyzeRequest{
		Ingredients: ingredients,
		ProductName: productName,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode analysis request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build analysis request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "go-nutriscan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("analysis request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to read analysis response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("scoring service returned status %d", resp.StatusCode), nil)
	}

	// A success status with nothing in it is still a failure.
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.NewTransportError("scoring service returned an empty body", nil)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.NewTransportError("malformed analysis response", err)
	}

	return &result, nil
}

// Health probes GET / on the scoring service. No response schema is
// consumed; any 2xx status counts as alive.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build health request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError("health probe failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewTransportError(
			fmt.Sprintf("health probe returned status %d", resp.StatusCode), nil)
	}
	return nil
}
