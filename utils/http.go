package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"amazon-reviews-scraper/internal/types"
)

// ErrFetchFailed is returned once every attempt for a URL has failed
var ErrFetchFailed = errors.New("fetch failed")

// HTTPClient fetches pages with retries and linear backoff
type HTTPClient struct {
	client *resty.Client
	config *types.Config
	logger types.Logger
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config *types.Config, logger types.Logger) *HTTPClient {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = types.DefaultUserAgent
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")
	if config.Proxy != "" {
		client.SetProxy(config.Proxy)
	}

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}
}

// Get performs a GET request and returns the body of a 200 response.
// Transport errors and any other status are retried up to MaxRetries attempts,
// sleeping RetryBackoff*attempt between them.
func (h *HTTPClient) Get(ctx context.Context, url string) (string, error) {
	attempts := h.config.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		h.logger.Debugf("Making request to %s (attempt %d/%d)", url, attempt, attempts)

		resp, err := h.client.R().SetContext(ctx).Get(url)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("request failed: %w", err)
			h.logger.Warnf("Request error (attempt %d): %v", attempt, err)
		case resp.StatusCode() != http.StatusOK:
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode())
			h.logger.Warnf("HTTP %d for %s (attempt %d)", resp.StatusCode(), url, attempt)
		default:
			body := resp.String()
			h.logger.Debugf("Successfully retrieved %d bytes from %s", len(body), url)
			return body, nil
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt < attempts {
			if err := Sleep(ctx, h.config.RetryBackoff*time.Duration(attempt)); err != nil {
				return "", err
			}
		}
	}

	h.logger.Errorf("Failed to GET %s after %d attempts: %v", url, attempts, lastErr)
	return "", fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, lastErr)
}

// Sleep blocks for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
