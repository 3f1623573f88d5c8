package config

// HTTPClientConfig defines the transport settings shared by every outbound request
type HTTPClientConfig struct {
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"omitempty,min=0"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	MaxContentSizeMB   int               `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"omitempty,min=0"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultHTTPClientConfig creates default HTTP client configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		UserAgent:          DefaultHTTPUserAgent,
		FollowRedirects:    DefaultHTTPFollowRedirects,
		MaxRedirects:       DefaultHTTPMaxRedirects,
		InsecureSkipVerify: DefaultHTTPInsecureSkipVerify,
		EnableHTTP2:        DefaultHTTPEnableHTTP2,
		MaxContentSizeMB:   DefaultHTTPMaxContentSizeMB,
		CustomHeaders:      make(map[string]string),
	}
}
