package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
)

// Ledger persists judged URLs into two append-only files and remembers what
// was already judged before the run started.
type Ledger struct {
	cfg    config.LedgerConfig
	logger zerolog.Logger

	// seen is loaded once in Open and never written afterwards.
	seen map[string]struct{}

	mu   sync.Mutex
	good *os.File
	bad  *os.File
}

// Open creates the output directory and both ledger files when absent, loads
// every line of both files into the seen set and keeps the files open for
// appending. Any failure here is fatal for a run.
func Open(cfg config.LedgerConfig, logger zerolog.Logger) (*Ledger, error) {
	l := &Ledger{
		cfg:    cfg,
		logger: logger.With().Str("component", "Ledger").Logger(),
		seen:   make(map[string]struct{}),
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create output dir %s: %v", errorwrapper.ErrLedgerUnavailable, cfg.OutputDir, err)
	}

	var err error
	if l.good, err = openAppend(cfg.GoodPath()); err != nil {
		return nil, err
	}
	if l.bad, err = openAppend(cfg.BadPath()); err != nil {
		_ = l.good.Close()
		return nil, err
	}

	for _, f := range []*os.File{l.good, l.bad} {
		if err := l.load(f); err != nil {
			_ = l.Close()
			return nil, err
		}
	}

	l.logger.Info().
		Str("good_file", cfg.GoodPath()).
		Str("bad_file", cfg.BadPath()).
		Int("previously_seen", len(l.seen)).
		Msg("Ledger opened")

	return l, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errorwrapper.ErrLedgerUnavailable, path, err)
	}
	return f, nil
}

func (l *Ledger) load(f *os.File) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek %s: %v", errorwrapper.ErrLedgerUnavailable, f.Name(), err)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		l.seen[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read %s: %v", errorwrapper.ErrLedgerUnavailable, f.Name(), err)
	}
	return nil
}

// IsSeen reports whether url was judged by a previous run
func (l *Ledger) IsSeen(url string) bool {
	_, ok := l.seen[url]
	return ok
}

// SeenCount returns the number of URLs loaded at startup
func (l *Ledger) SeenCount() int {
	return len(l.seen)
}

// Append writes url to the file for outcome as one complete line. The seen
// set is left untouched.
func (l *Ledger) Append(outcome models.Outcome, url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := l.bad
	if outcome == models.OutcomeGood {
		f = l.good
	}
	if f == nil {
		return errorwrapper.ErrLedgerUnavailable
	}

	if _, err := f.WriteString(url + "\n"); err != nil {
		return errorwrapper.WrapError(err, "failed to append to "+filepath.Base(f.Name()))
	}
	if l.cfg.SyncOnAppend {
		if err := f.Sync(); err != nil {
			return errorwrapper.WrapError(err, "failed to sync "+filepath.Base(f.Name()))
		}
	}
	return nil
}

// Close closes both files
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	if l.good != nil {
		errs = append(errs, l.good.Close())
		l.good = nil
	}
	if l.bad != nil {
		errs = append(errs, l.bad.Close())
		l.bad = nil
	}
	return errors.Join(errs...)
}
