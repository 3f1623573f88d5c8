// Package httpclienttest provides helpers for pointing real host names at a
// local httptest server.
package httpclienttest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/rs/zerolog"
)

// RerouteTransport sends every request to target while keeping the original
// host in the Host header and in OriginalHost, so handlers can dispatch on it.
type RerouteTransport struct {
	target *url.URL
	base   http.RoundTripper

	mu    sync.Mutex
	count int
}

// OriginalHostHeader carries the host the client asked for
const OriginalHostHeader = "X-Original-Host"

// NewRerouteTransport reroutes to the given server
func NewRerouteTransport(server *httptest.Server) *RerouteTransport {
	u, err := url.Parse(server.URL)
	if err != nil {
		panic(err)
	}
	return &RerouteTransport{target: u, base: server.Client().Transport}
}

// RoundTrip implements http.RoundTripper
func (t *RerouteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.count++
	t.mu.Unlock()

	out := req.Clone(req.Context())
	out.Header.Set(OriginalHostHeader, req.URL.Host)
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = req.URL.Host
	return t.base.RoundTrip(out)
}

// Count returns the number of requests sent
func (t *RerouteTransport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// NewClient builds an httpclient.HTTPClient whose requests all land on server
func NewClient(server *httptest.Server) (*httpclient.HTTPClient, *RerouteTransport) {
	rt := NewRerouteTransport(server)
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).WithTransport(rt).Build()
	if err != nil {
		panic(err)
	}
	return client, rt
}
