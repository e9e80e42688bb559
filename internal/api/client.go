// Package api is the HTTP gateway to the document-management REST server.
package api

import (
	"net/http"
	"strings"

	"dms-go/internal/dms"
)

// DefaultBaseURL is the server origin used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// Client implements dms.Gateway over HTTP. Calls are never retried and carry
// no client-side timeout; cancellation comes from the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     dms.Logger
	ids        dms.IDGenerator
}

var _ dms.Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l dms.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithIDGenerator sets the source of X-Request-ID values.
func WithIDGenerator(g dms.IDGenerator) Option {
	return func(c *Client) { c.ids = g }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     dms.NewNopLogger(),
		ids:        dms.UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
