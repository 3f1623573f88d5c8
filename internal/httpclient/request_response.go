package httpclient

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"
)

// HTTPRequest represents an outbound request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Query   url.Values
	Body    io.Reader
	Context context.Context
	// Timeout bounds this request only; zero falls back to the client timeout.
	Timeout time.Duration
}

// NewFormRequest builds a POST carrying url-encoded form data
func NewFormRequest(ctx context.Context, rawURL string, query, form url.Values) *HTTPRequest {
	return &HTTPRequest{
		URL:     rawURL,
		Method:  "POST",
		Query:   query,
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Body:    strings.NewReader(form.Encode()),
		Context: ctx,
	}
}

// HTTPResponse represents a fully read response
type HTTPResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	FinalURL   string
	Truncated  bool
}

// IsSuccess reports a 2xx status
func (r *HTTPResponse) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the Content-Type header
func (r *HTTPResponse) ContentType() string {
	return r.Headers["Content-Type"]
}
