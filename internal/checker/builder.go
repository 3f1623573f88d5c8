package checker

import (
	"net/http"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/datastore"
	"github.com/aleister1102/linkchecker/internal/extractor"
	"github.com/aleister1102/linkchecker/internal/hosts"
	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/aleister1102/linkchecker/internal/ledger"
	"github.com/aleister1102/linkchecker/internal/notifier"
	"github.com/aleister1102/linkchecker/internal/paste"
	"github.com/aleister1102/linkchecker/internal/progress"
	"github.com/aleister1102/linkchecker/internal/verifier"
	"github.com/rs/zerolog"
)

// CheckerBuilder wires a Checker from configuration
type CheckerBuilder struct {
	config    *config.GlobalConfig
	logger    zerolog.Logger
	registry  *hosts.Registry
	transport http.RoundTripper
	verifier  Verifier
	history   HistoryRecorder
}

// NewCheckerBuilder creates a builder; a nil config uses defaults
func NewCheckerBuilder(cfg *config.GlobalConfig, logger zerolog.Logger) *CheckerBuilder {
	if cfg == nil {
		cfg = config.NewDefaultGlobalConfig()
	}
	return &CheckerBuilder{config: cfg, logger: logger}
}

// WithRegistry replaces the default host table
func (b *CheckerBuilder) WithRegistry(reg *hosts.Registry) *CheckerBuilder {
	b.registry = reg
	return b
}

// WithTransport routes every outbound request through rt
func (b *CheckerBuilder) WithTransport(rt http.RoundTripper) *CheckerBuilder {
	b.transport = rt
	return b
}

// WithVerifier replaces the verification engine
func (b *CheckerBuilder) WithVerifier(v Verifier) *CheckerBuilder {
	b.verifier = v
	return b
}

// WithHistory replaces the run history store
func (b *CheckerBuilder) WithHistory(h HistoryRecorder) *CheckerBuilder {
	b.history = h
	return b
}

// Build opens the ledger and constructs every component. A ledger that
// cannot be opened is returned as an error.
func (b *CheckerBuilder) Build() (*Checker, error) {
	cfg := b.config
	logger := b.logger.With().Str("module", "Checker").Logger()

	reg := b.registry
	if reg == nil {
		reg = hosts.Default(cfg.VerifierConfig.NegativeSignals...)
	}

	ext, err := extractor.New(reg, b.logger)
	if err != nil {
		return nil, err
	}

	clientCfg := httpclient.FromAppConfig(cfg.HTTPClientConfig)
	client, err := httpclient.NewHTTPClientBuilder(b.logger).WithConfig(clientCfg).WithTransport(b.transport).Build()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create HTTP client")
	}

	pasteCfg := clientCfg
	pasteCfg.MaxContentSize = cfg.PasteConfig.MaxBodyMB * 1024 * 1024
	pasteClient, err := httpclient.NewHTTPClientBuilder(b.logger).WithConfig(pasteCfg).WithTransport(b.transport).Build()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create paste HTTP client")
	}

	v := b.verifier
	if v == nil {
		v = verifier.New(reg, client, cfg.VerifierConfig, b.logger)
	}

	l, err := ledger.Open(cfg.LedgerConfig, b.logger)
	if err != nil {
		return nil, err
	}

	history := b.history
	if history == nil && cfg.StorageConfig.HistoryEnabled {
		store, err := datastore.NewRunHistoryStore(cfg.StorageConfig.HistoryDBPath, b.logger)
		if err != nil {
			// History is informational; the run goes on without it.
			logger.Warn().Err(err).Str("path", cfg.StorageConfig.HistoryDBPath).Msg("Run history disabled")
		} else {
			history = store
		}
	}

	var nh *notifier.NotificationHelper
	if cfg.NotificationConfig.DiscordWebhookURL != "" {
		nh = notifier.NewNotificationHelper(notifier.NewDiscordNotifier(b.logger, client), cfg.NotificationConfig, b.logger)
	}

	return &Checker{
		config:    cfg,
		logger:    logger,
		registry:  reg,
		extractor: ext,
		expander:  paste.New(reg, ext, pasteClient, cfg.PasteConfig.Timeout(), b.logger),
		verifier:  v,
		ledger:    l,
		progress:  progress.NewProgressDisplayManager(b.logger, progress.DisplayConfigFrom(cfg.ProgressConfig)),
		history:   history,
		notifier:  nh,
	}, nil
}
