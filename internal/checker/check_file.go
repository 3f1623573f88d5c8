package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
)

// NewRunID returns a timestamp based run identifier with a random suffix,
// so runs started within the same second stay distinct.
func NewRunID() string {
	return fmt.Sprintf("%s-%06x", time.Now().Format("20060102-150405.000000"), rand.Uint32()&0xffffff)
}

// CheckFile runs the whole pipeline over the file at path. The summary is
// returned even when the run was interrupted, together with ctx's error. An
// unreadable input yields a FAILED summary along with the read error.
func (c *Checker) CheckFile(ctx context.Context, runID, path string) (models.RunSummary, error) {
	startTime := time.Now()
	if runID == "" {
		runID = NewRunID()
	}
	logger := c.logger.With().Str("run_id", runID).Logger()

	c.logPreviousRun(ctx, logger)
	historyID := c.recordRunStart(ctx, runID, path, startTime)

	builder := models.NewRunSummaryBuilder().
		WithRunID(runID).
		WithRunLabel(c.config.CheckerConfig.RunLabel).
		WithInputFile(path).
		WithPreviouslySeen(c.ledger.SeenCount())

	data, err := c.readInput(path)
	if err != nil {
		summary := builder.
			WithStatus(models.RunStatusFailed).
			WithErrorMessages(err.Error()).
			WithTiming(startTime, time.Since(startTime)).
			Build()
		logger.Error().Err(err).Str("input", path).Msg("Failed to read input file")
		c.finishRun(logger, historyID, summary)
		return summary, err
	}
	builder.WithRawLines(countLines(data))

	c.progress.Start()
	defer c.progress.Stop()

	logger.Info().Int("count", c.ledger.SeenCount()).Msg("Total previously seen URLs")
	logger.Info().Int("count", countLines(data)).Msg("Raw input lines")

	candidates, compileErr := c.CompileCandidates(ctx, string(data))
	builder.WithInputCandidates(len(candidates))
	logger.Info().Int("count", len(candidates)).Msg("Valid, unseen, unique input URLs")

	var counts RunCounts
	if compileErr == nil && len(candidates) > 0 {
		counts = c.Run(ctx, candidates)
	}
	builder.WithCounts(counts.Good, counts.Bad)

	var runErr error
	switch {
	case ctx.Err() != nil:
		runErr = ctx.Err()
		builder.WithStatus(models.RunStatusInterrupted).
			WithErrorMessages(fmt.Sprintf("run interrupted, %d candidates left unchecked", counts.Skipped))
	case len(candidates) == 0:
		builder.WithStatus(models.RunStatusNoTargets)
	}

	summary := builder.WithTiming(startTime, time.Since(startTime)).Build()
	c.finishRun(logger, historyID, summary)

	return summary, runErr
}

// finishRun logs the summary, completes the history row and notifies
func (c *Checker) finishRun(logger zerolog.Logger, historyID int64, summary models.RunSummary) {
	c.logSummary(logger, summary)
	c.recordRunCompletion(historyID, summary)
	if c.notifier != nil {
		c.notifier.SendRunCompletion(summary)
	}
}

// readInput loads the input file, refusing files above the configured size
func (c *Checker) readInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errorwrapper.ErrInputMissing, path)
		}
		return nil, errorwrapper.WrapError(err, "failed to open input file")
	}
	defer f.Close()

	var r io.Reader = f
	limit := int64(c.config.CheckerConfig.MaxInputMB) * 1024 * 1024
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read input file")
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, errorwrapper.NewError("input file %s exceeds %d MB", path, c.config.CheckerConfig.MaxInputMB)
	}
	return data, nil
}

// countLines counts lines the way a line reader would, so a trailing
// newline does not add an empty line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

func (c *Checker) logSummary(logger zerolog.Logger, s models.RunSummary) {
	logger.Info().Int("count", s.InputCandidates).Msg("Input URLs")
	logger.Info().Int("count", s.Good).Msg("Good URLs")
	logger.Info().Int("count", s.Bad).Msg("Bad URLs")
	logger.Info().
		Str("status", string(s.Status)).
		Int("previously_seen", s.PreviouslySeen).
		Int("raw_lines", s.RawLines).
		Int("processed", s.Processed()).
		Dur("duration", s.Duration).
		Msg("Run finished")
}

// logPreviousRun reports the most recent run found in the history store
func (c *Checker) logPreviousRun(ctx context.Context, logger zerolog.Logger) {
	if c.history == nil {
		return
	}
	runs, err := c.history.RecentRuns(ctx, 1)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read run history")
		return
	}
	if len(runs) == 0 {
		return
	}
	prev := runs[0]
	logger.Info().
		Str("previous_run_id", prev.RunID).
		Str("status", prev.Status).
		Time("started_at", prev.StartTime).
		Int("good", prev.Good).
		Int("bad", prev.Bad).
		Msg("Previous run")
}

func (c *Checker) recordRunStart(ctx context.Context, runID, path string, startTime time.Time) int64 {
	if c.history == nil {
		return 0
	}
	id, err := c.history.RecordRunStart(ctx, runID, c.config.CheckerConfig.RunLabel, path, startTime)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to record run start")
		return 0
	}
	return id
}

func (c *Checker) recordRunCompletion(id int64, summary models.RunSummary) {
	if c.history == nil || id == 0 {
		return
	}
	// The run context may already be canceled on interrupt.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.history.RecordRunCompletion(ctx, id, summary); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to record run completion")
	}
}
