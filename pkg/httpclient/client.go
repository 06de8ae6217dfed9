package httpclient

import (
	"net/http"
)

// Client is the subset of *http.Client the clinic API client depends on.
// Tests substitute a fake; production uses NewStandardClient.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient wraps the standard http.Client
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient creates a client without an overall timeout: requests wait
// for the transport's own limits and are bounded by the request context.
func NewStandardClient() Client {
	return &StandardHTTPClient{
		client: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			// Redirects from the API are not followed; a 3xx is surfaced as-is.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Do executes an HTTP request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// ClientFunc adapts a function to Client
type ClientFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req)
func (f ClientFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
