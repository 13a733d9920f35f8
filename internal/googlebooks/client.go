// Package googlebooks provides a search client for the Google Books volumes API.
package googlebooks

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/books/v1"
	defaultDomainHint = "manga"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client looks up manga volumes on Google Books.
type Client struct {
	baseURL    string
	domainHint string
	httpClient HTTPDoer
	logger     *slog.Logger
}

// NewClient creates a new Google Books client.
// The default HTTP client has no timeout of its own; the transport defaults apply.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		domainHint: defaultDomainHint,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the Google Books API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithDomainHint sets the word appended to every query to narrow results.
func WithDomainHint(hint string) Option {
	return func(client *Client) {
		client.domainHint = hint
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}
