// Package noaa fetches the SWPC 3-day forecast text product.
package noaa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// FetchError describes a failed forecast fetch: a transport-level error
// (StatusCode zero) or a non-2xx response. Fetch failures are contained
// by the caller; a cycle that cannot fetch is skipped, not fatal.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch forecast %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch forecast %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client performs a single GET of the forecast product per cycle. No
// retries: a failed fetch skips the cycle and the next day tries again.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a forecast client for the given product URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchForecast retrieves the raw forecast text. Any transport error or
// non-2xx status is returned as a *FetchError.
func (c *Client) FetchForecast(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &FetchError{URL: c.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: c.url, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("forecast fetched", "url", c.url, "bytes", len(body))
	return string(body), nil
}
