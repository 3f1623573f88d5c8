package httpclient

import (
	"time"

	"github.com/aleister1102/linkchecker/internal/config"
)

// HTTPClientConfig holds configuration for the HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration     // Upper bound for any request without its own timeout
	InsecureSkipVerify    bool              // Skip TLS verification
	FollowRedirects       bool              // Whether to follow redirects
	MaxRedirects          int               // Maximum number of redirects to follow
	Proxy                 string            // Proxy URL
	CustomHeaders         map[string]string // Headers added to all requests
	UserAgent             string            // User-Agent header
	MaxContentSize        int               // Body bytes kept per response, 0 for no limit
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	EnableHTTP2           bool
}

// DefaultHTTPClientConfig returns the default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               30 * time.Second,
		InsecureSkipVerify:    false,
		FollowRedirects:       true,
		MaxRedirects:          10,
		UserAgent:             config.DefaultHTTPUserAgent,
		MaxContentSize:        config.DefaultHTTPMaxContentSizeMB * 1024 * 1024,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		EnableHTTP2:           true,
		CustomHeaders: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

// FromAppConfig maps the user facing config section onto the client config
func FromAppConfig(cfg config.HTTPClientConfig) HTTPClientConfig {
	c := DefaultHTTPClientConfig()
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	c.FollowRedirects = cfg.FollowRedirects
	c.MaxRedirects = cfg.MaxRedirects
	c.InsecureSkipVerify = cfg.InsecureSkipVerify
	c.EnableHTTP2 = cfg.EnableHTTP2
	c.MaxContentSize = cfg.MaxContentSizeMB * 1024 * 1024
	c.Proxy = cfg.Proxy
	for k, v := range cfg.CustomHeaders {
		c.CustomHeaders[k] = v
	}
	return c
}
