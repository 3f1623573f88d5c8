package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-value", r.Header.Get("X-Test-Header"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithUserAgent("test-agent").Build()
	require.NoError(t, err)

	resp, err := client.Do(&HTTPRequest{
		URL:     server.URL,
		Method:  "GET",
		Headers: map[string]string{"X-Test-Header": "test-value"},
	})
	require.NoError(t, err)

	assert.True(t, resp.IsSuccess())
	assert.Equal(t, `{"status":"ok"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.ContentType())
	assert.False(t, resp.Truncated)
}

func TestHTTPClient_FormRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		assert.Equal(t, "keep", r.URL.Query().Get("existing"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "a=g&p=abc", string(body))
		_, _ = w.Write([]byte(`[0]`))
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	req := NewFormRequest(context.Background(), server.URL+"?existing=keep",
		url.Values{"id": {"42"}}, url.Values{"a": {"g"}, "p": {"abc"}})
	resp, err := client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, `[0]`, string(resp.Body))
}

func TestHTTPClient_Redirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/redirect" {
			http.Redirect(w, r, "/final", http.StatusFound)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer ts.Close()

	clientFollow, err := NewHTTPClientBuilder(zerolog.Nop()).WithFollowRedirects(true).Build()
	require.NoError(t, err)
	resp, err := clientFollow.Get(context.Background(), ts.URL+"/redirect", 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ts.URL+"/final", resp.FinalURL)

	clientNoFollow, err := NewHTTPClientBuilder(zerolog.Nop()).WithFollowRedirects(false).Build()
	require.NoError(t, err)
	resp, err = clientNoFollow.Get(context.Background(), ts.URL+"/redirect", 0)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
}

func TestHTTPClient_MaxContentSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is some very long content"))
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithMaxContentSize(10).Build()
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, "this is so", string(resp.Body))
	assert.True(t, resp.Truncated)
}

func TestHTTPClient_RequestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Get(context.Background(), server.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, errors.Is(err, errorwrapper.ErrNetworkFailure))
}

func TestHTTPClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	_, err = client.Get(context.Background(), addr, time.Second)
	var netErr *errorwrapper.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, addr, netErr.URL)
}

func TestFromAppConfig(t *testing.T) {
	app := config.NewDefaultHTTPClientConfig()
	app.UserAgent = "custom"
	app.MaxContentSizeMB = 2
	app.CustomHeaders = map[string]string{"X-A": "b"}

	cfg := FromAppConfig(app)
	assert.Equal(t, "custom", cfg.UserAgent)
	assert.Equal(t, 2*1024*1024, cfg.MaxContentSize)
	assert.Equal(t, "b", cfg.CustomHeaders["X-A"])
	assert.Equal(t, "en-US,en;q=0.9", cfg.CustomHeaders["Accept-Language"])
}
