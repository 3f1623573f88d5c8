package verifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/hosts"
	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
)

// Fetcher performs a single HTTP request
type Fetcher interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// Reasons attached to a VerificationResult
const (
	ReasonUnsupportedHost = "unsupported_host"
	ReasonPasteRejected   = "paste_rejected"
	ReasonRequestFailed   = "request_failed"
	ReasonStatusOK        = "status_ok"
	ReasonMegaUnparseable = "mega_unparseable"
	ReasonMegaFailed      = "mega_probe_failed"
	ReasonMegaMissing     = "mega_missing"
	ReasonMegaPresent     = "mega_present"
	ReasonDeadBodyLength  = "dead_body_length"
	ReasonDeadSignal      = "dead_signal"
	ReasonNegativeSignal  = "negative_signal"
	ReasonContentOK       = "content_ok"
	ReasonTimeout         = "timeout"
	ReasonPanic           = "panic"
	ReasonCanceled        = "canceled"
)

// Engine classifies a single URL as Good or Bad. It is safe for concurrent use.
type Engine struct {
	registry       *hosts.Registry
	fetcher        Fetcher
	mega           *MegaProber
	verifyTimeout  time.Duration
	requestTimeout time.Duration
	logger         zerolog.Logger
}

// New creates a verification engine
func New(reg *hosts.Registry, fetcher Fetcher, cfg config.VerifierConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		registry:       reg,
		fetcher:        fetcher,
		mega:           NewMegaProber(fetcher, cfg.MegaAPIURL, cfg.MegaTimeout(), logger),
		verifyTimeout:  cfg.VerifyTimeout(),
		requestTimeout: cfg.RequestTimeout(),
		logger:         logger.With().Str("component", "Verifier").Logger(),
	}
}

type verdict struct {
	outcome models.Outcome
	reason  string
	err     error
}

func good(reason string) verdict { return verdict{outcome: models.OutcomeGood, reason: reason} }

func bad(reason string, err error) verdict {
	return verdict{outcome: models.OutcomeBad, reason: reason, err: err}
}

// Verify classifies url within the per-URL deadline. Errors, panics and
// deadline expiry all come back as Bad; Verify itself never fails.
func (e *Engine) Verify(ctx context.Context, url string) models.VerificationResult {
	start := time.Now()

	if e.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.verifyTimeout)
		defer cancel()
	}

	done := make(chan verdict, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- bad(ReasonPanic, fmt.Errorf("panic during verification: %v", r))
			}
		}()
		done <- e.dispatch(ctx, url)
	}()

	var v verdict
	select {
	case v = <-done:
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			v = bad(ReasonTimeout, errorwrapper.WrapError(errorwrapper.ErrTimeout, fmt.Sprintf("verification exceeded %s", e.verifyTimeout)))
		} else {
			v = bad(ReasonCanceled, ctx.Err())
		}
	}

	result := models.VerificationResult{
		URL:      url,
		Outcome:  v.outcome,
		Reason:   v.reason,
		Err:      v.err,
		Duration: time.Since(start),
	}

	ev := e.logger.Debug()
	if v.err != nil {
		ev = e.logger.Warn().Err(v.err)
	}
	ev.Str("url", url).
		Str("outcome", result.Outcome.String()).
		Str("reason", result.Reason).
		Dur("duration", result.Duration).
		Msg("URL verified")

	return result
}

func (e *Engine) dispatch(ctx context.Context, url string) verdict {
	entry, ok := e.registry.Classify(url)
	if !ok {
		return bad(ReasonUnsupportedHost, nil)
	}
	if entry.Strategy == hosts.StrategyPasteUnwrap {
		return bad(ReasonPasteRejected, nil)
	}

	target := e.registry.Rewrite(url)
	resp, err := e.fetcher.Do(&httpclient.HTTPRequest{
		URL:     target,
		Method:  http.MethodGet,
		Context: ctx,
		Timeout: e.requestTimeout,
	})
	if err != nil {
		return bad(ReasonRequestFailed, err)
	}
	if !resp.IsSuccess() {
		return bad(fmt.Sprintf("status_%d", resp.StatusCode),
			errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, http.StatusText(resp.StatusCode), target))
	}

	if entry.Strategy == hosts.StrategyStatusOnly {
		return good(ReasonStatusOK)
	}

	return e.applyRule(ctx, entry.Rule, target, string(resp.Body))
}

func (e *Engine) applyRule(ctx context.Context, rule hosts.Rule, target, body string) verdict {
	if rule.Handshake == hosts.HandshakeMega {
		link, err := ParseMegaLink(target)
		if err != nil {
			return bad(ReasonMegaUnparseable, err)
		}
		present, err := e.mega.Probe(ctx, link)
		if err != nil {
			return bad(ReasonMegaFailed, err)
		}
		if !present {
			return bad(ReasonMegaMissing, nil)
		}
		return good(ReasonMegaPresent)
	}

	if rule.IsZero() {
		if containsAny(body, e.registry.NegativeSignals()) {
			return bad(ReasonNegativeSignal, nil)
		}
		return good(ReasonContentOK)
	}

	if rule.DeadBodyLength > 0 && utf8.RuneCountInString(body) == rule.DeadBodyLength {
		return bad(ReasonDeadBodyLength, nil)
	}
	if containsAny(body, rule.DeadSignals) {
		return bad(ReasonDeadSignal, nil)
	}
	return good(ReasonContentOK)
}

func containsAny(body string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(body, n) {
			return true
		}
	}
	return false
}
