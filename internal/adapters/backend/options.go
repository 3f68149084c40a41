// Package backend implements the HTTP client for the monitored backend.
package backend

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL sets the backend base URL, e.g. "http://localhost:8000".
func WithBaseURL(url string) Option {
	return func(c *HTTPClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithLightTimeout bounds the lightweight probes (liveness, diagnostics).
func WithLightTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.lightTimeout = timeout
		}
	}
}

// WithHeavyTimeout bounds the heavier probes (general health, capability listing).
func WithHeavyTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.heavyTimeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}
