// Package boards fetches raw job postings from the supported remote-job
// boards. Every board shares one rate-limited HTTP client; each fetcher knows
// its board's endpoint and wire format and emits the normalizer's input shape.
package boards

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout matches the per-request budget the boards tolerate well.
	DefaultTimeout = 15 * time.Second

	// DefaultUserAgent is a browser-like agent; several boards reject requests
	// without one.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// DefaultRPS is the shared request rate across all boards.
	DefaultRPS = 2
)

// Options configures the shared board client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// RPS caps requests per second across every board sharing the client.
	RPS float64
}

// DefaultOptions returns the standard client configuration.
func DefaultOptions() Options {
	return Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		RPS:       DefaultRPS,
	}
}

// Client is the HTTP client shared by all board fetchers: one timeout, one
// user agent, one rate limiter.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *zap.Logger
}

// NewClient builds a shared board client. Zero option fields fall back to the
// defaults; a nil logger discards debug output.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RPS <= 0 {
		opts.RPS = DefaultRPS
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(opts.RPS), 1),
		userAgent: opts.UserAgent,
		logger:    logger.Named("boards"),
	}
}

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, source, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Source: source, URL: url, Message: "rate limiter wait interrupted", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	c.logger.Debug("fetching", zap.String("source", source), zap.String("url", url))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var reader io.Reader = resp.Body
	// Some boards gzip regardless of Accept-Encoding when a browser UA is set.
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{Source: source, URL: url, Message: "failed to open gzip body", Cause: err}
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{Source: source, URL: url, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: source, URL: url, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return body, nil
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, source, url string, target any) error {
	body, err := c.get(ctx, source, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &FetchError{Source: source, URL: url, Message: "failed to decode response", Cause: err}
	}
	return nil
}
