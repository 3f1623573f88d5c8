package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientBuilder(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(15 * time.Second).
		WithUserAgent("test-agent").
		WithFollowRedirects(false).
		WithInsecureSkipVerify(true).
		WithMaxRedirects(5).
		WithMaxContentSize(1024).
		WithHTTP2(false).
		Build()

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, client.config.Timeout)
	assert.Equal(t, "test-agent", client.config.UserAgent)
	assert.False(t, client.config.FollowRedirects)
	assert.True(t, client.config.InsecureSkipVerify)
	assert.Equal(t, 5, client.config.MaxRedirects)
	assert.Equal(t, 1024, client.config.MaxContentSize)
	assert.False(t, client.config.EnableHTTP2)
}

func TestHTTPClientBuilder_DefaultValues(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	defaults := DefaultHTTPClientConfig()
	assert.Equal(t, defaults.Timeout, client.config.Timeout)
	assert.Equal(t, defaults.UserAgent, client.config.UserAgent)
	assert.Equal(t, defaults.FollowRedirects, client.config.FollowRedirects)
	assert.Equal(t, defaults.MaxRedirects, client.config.MaxRedirects)
	_, isTransport := client.client.Transport.(*http.Transport)
	assert.True(t, isTransport)
}

func TestHTTPClientBuilder_WithTransport(t *testing.T) {
	rt := http.DefaultTransport
	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithTransport(rt).Build()
	require.NoError(t, err)
	assert.Same(t, rt, client.client.Transport)
}

func TestHTTPClientBuilder_BadProxy(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.Proxy = "://bad"
	_, err := NewHTTPClientBuilder(zerolog.Nop()).WithConfig(cfg).Build()
	assert.Error(t, err)
}
