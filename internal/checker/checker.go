package checker

import (
	"context"
	"errors"
	"time"

	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/datastore"
	"github.com/aleister1102/linkchecker/internal/extractor"
	"github.com/aleister1102/linkchecker/internal/hosts"
	"github.com/aleister1102/linkchecker/internal/ledger"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/aleister1102/linkchecker/internal/notifier"
	"github.com/aleister1102/linkchecker/internal/progress"
	"github.com/rs/zerolog"
)

// Verifier classifies one URL; it must never block past its own deadline
type Verifier interface {
	Verify(ctx context.Context, url string) models.VerificationResult
}

// Expander turns a paste URL into the links it contains
type Expander interface {
	Expand(ctx context.Context, url string, depth int) []string
}

// HistoryRecorder persists one row per run
type HistoryRecorder interface {
	RecordRunStart(ctx context.Context, runID, label, inputFile string, startTime time.Time) (int64, error)
	RecordRunCompletion(ctx context.Context, id int64, summary models.RunSummary) error
	RecentRuns(ctx context.Context, limit int) ([]datastore.RunHistoryEntry, error)
	Close() error
}

// Checker runs the extract, filter, expand, verify and persist pipeline
// over one input file.
type Checker struct {
	config    *config.GlobalConfig
	logger    zerolog.Logger
	registry  *hosts.Registry
	extractor *extractor.Extractor
	expander  Expander
	verifier  Verifier
	ledger    *ledger.Ledger
	progress  *progress.ProgressDisplayManager
	history   HistoryRecorder
	notifier  *notifier.NotificationHelper
}

// Ledger exposes the underlying ledger
func (c *Checker) Ledger() *ledger.Ledger {
	return c.ledger
}

// Close releases the ledger files and the history database
func (c *Checker) Close() error {
	var errs []error
	if c.ledger != nil {
		errs = append(errs, c.ledger.Close())
	}
	if c.history != nil {
		errs = append(errs, c.history.Close())
	}
	return errors.Join(errs...)
}
