package paste

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aleister1102/linkchecker/internal/extractor"
	"github.com/aleister1102/linkchecker/internal/hosts"
	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/rs/zerolog"
)

// Fetcher performs a single HTTP request
type Fetcher interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// Expander unwraps paste-site links into the links they contain
type Expander struct {
	registry  *hosts.Registry
	extractor *extractor.Extractor
	fetcher   Fetcher
	timeout   time.Duration
	logger    zerolog.Logger
}

// New creates a paste expander
func New(reg *hosts.Registry, ext *extractor.Extractor, fetcher Fetcher, timeout time.Duration, logger zerolog.Logger) *Expander {
	return &Expander{
		registry:  reg,
		extractor: ext,
		fetcher:   fetcher,
		timeout:   timeout,
		logger:    logger.With().Str("component", "PasteExpander").Logger(),
	}
}

// Expand returns the links found inside a paste page. A non-paste url, or a
// depth of zero or less, yields url itself. A page that cannot be fetched
// yields nothing. Links found in the page are never expanded further.
func (e *Expander) Expand(ctx context.Context, url string, depth int) []string {
	if depth <= 0 || !e.registry.IsPaste(url) {
		return []string{url}
	}

	rawURL := e.registry.Rewrite(url)
	resp, err := e.fetcher.Do(&httpclient.HTTPRequest{
		URL:     rawURL,
		Method:  http.MethodGet,
		Context: ctx,
		Timeout: e.timeout,
	})
	if err != nil {
		e.logger.Warn().Err(err).Str("url", url).Str("raw_url", rawURL).Msg("Failed to fetch paste")
		return nil
	}
	if !resp.IsSuccess() {
		e.logger.Warn().Str("url", url).Str("raw_url", rawURL).Int("status_code", resp.StatusCode).Msg("Paste fetch returned non-success status")
		return nil
	}

	text := string(resp.Body)
	if isHTML(resp.ContentType()) {
		flat, err := FlattenHTML(text)
		if err != nil {
			e.logger.Warn().Err(err).Str("url", url).Msg("Failed to parse paste HTML, using raw body")
		} else {
			text = flat
		}
	}

	links := e.extractor.Extract(text)
	e.logger.Debug().Str("url", url).Int("links", len(links)).Msg("Paste expanded")
	return links
}

func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}
