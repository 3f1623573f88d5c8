package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	neturl "net/url"
	"strings"
	"time"

	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/rs/zerolog"
)

// megaMissingCode is the API answer for a file or folder that no longer exists
const megaMissingCode = -2

// MegaLink is a parsed /<type>/<id>[#key] Mega URL
type MegaLink struct {
	Type string // "file" or "folder"
	ID   string
	Key  string
}

// IsFolder reports whether the link points at a folder
func (l MegaLink) IsFolder() bool {
	return l.Type == "folder"
}

// ParseMegaLink extracts the type and identifier from a canonical Mega URL
func ParseMegaLink(rawURL string) (MegaLink, error) {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return MegaLink{}, err
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return MegaLink{}, fmt.Errorf("mega link %q has no type/id path", rawURL)
	}

	return MegaLink{Type: parts[0], ID: parts[1], Key: u.Fragment}, nil
}

// MegaProber asks the Mega API whether a link still resolves
type MegaProber struct {
	fetcher Fetcher
	apiURL  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewMegaProber creates a prober against apiURL
func NewMegaProber(fetcher Fetcher, apiURL string, timeout time.Duration, logger zerolog.Logger) *MegaProber {
	return &MegaProber{
		fetcher: fetcher,
		apiURL:  apiURL,
		timeout: timeout,
		logger:  logger.With().Str("component", "MegaProber").Logger(),
	}
}

// Probe returns false only when the API answers with the missing code.
// Any other answer, including one that is not valid JSON, counts as present.
func (p *MegaProber) Probe(ctx context.Context, link MegaLink) (bool, error) {
	query := neturl.Values{
		"id": {sessionToken()},
		"n":  {link.ID},
	}

	form := neturl.Values{"a": {"g"}, "p": {link.ID}}
	if link.IsFolder() {
		form = neturl.Values{"a": {"f"}, "c": {"1"}, "r": {"1"}, "ca": {"1"}}
	}

	req := httpclient.NewFormRequest(ctx, p.apiURL, query, form)
	req.Timeout = p.timeout

	resp, err := p.fetcher.Do(req)
	if err != nil {
		return false, err
	}

	missing := isMissingAnswer(resp.Body)
	p.logger.Debug().
		Str("type", link.Type).
		Str("id", link.ID).
		Int("status_code", resp.StatusCode).
		Bool("missing", missing).
		Msg("Mega probe answered")

	return !missing, nil
}

func isMissingAnswer(body []byte) bool {
	var answer any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&answer); err != nil {
		return false
	}
	n, ok := answer.(json.Number)
	if !ok {
		return false
	}
	v, err := n.Int64()
	return err == nil && v == megaMissingCode
}

// sessionToken returns a random 10-digit numeric string
func sessionToken() string {
	var b strings.Builder
	b.Grow(10)
	for range 10 {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}
