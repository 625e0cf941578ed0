// Package fetch retrieves theme definitions over HTTP.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the tool to registries.
	DefaultUserAgent = "themekit"
	// DefaultMaxBytes caps the accepted response size.
	DefaultMaxBytes = 5 << 20
)

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Client downloads theme definitions.
type Client struct {
	fetcher HTTPFetcher
	opts    Options
}

// NewClient creates a Client with real HTTP for production use
func NewClient(opts Options) *Client {
	opts = withDefaults(opts)
	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
	return NewClientWithFetcher(opts, NewRealHTTPFetcher(client))
}

// NewClientWithFetcher creates a Client with injectable HTTP for testing
func NewClientWithFetcher(opts Options, fetcher HTTPFetcher) *Client {
	return &Client{fetcher: fetcher, opts: withDefaults(opts)}
}

func withDefaults(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return opts
}

// Fetch returns the body of a successful GET for rawURL.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, application/yaml, text/plain;q=0.8, */*;q=0.5")

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Wrapped: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBytes+1))
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Wrapped: err}
	}
	if int64(len(body)) > c.opts.MaxBytes {
		return nil, &NetworkError{URL: rawURL, Wrapped: ErrTooLarge}
	}
	return body, nil
}
