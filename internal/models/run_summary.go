package models

import "time"

// RunStatus defines the possible end states of a run.
type RunStatus string

const (
	RunStatusCompleted   RunStatus = "COMPLETED"
	RunStatusFailed      RunStatus = "FAILED"
	RunStatusInterrupted RunStatus = "INTERRUPTED"
	RunStatusNoTargets   RunStatus = "NO_TARGETS"
)

// RunSummary holds the end-of-run counts
type RunSummary struct {
	RunID           string
	RunLabel        string
	InputFile       string
	PreviouslySeen  int // URLs present in either ledger file at startup
	RawLines        int
	InputCandidates int // valid, unseen, unique URLs handed to the worker pool
	Good            int
	Bad             int
	StartedAt       time.Time
	Duration        time.Duration
	Status          RunStatus
	ErrorMessages   []string
}

// Processed returns Good + Bad
func (s RunSummary) Processed() int {
	return s.Good + s.Bad
}

// RunSummaryBuilder helps in constructing RunSummary objects.
type RunSummaryBuilder struct {
	summary RunSummary
}

// NewRunSummaryBuilder creates a builder whose status defaults to completed.
func NewRunSummaryBuilder() *RunSummaryBuilder {
	return &RunSummaryBuilder{
		summary: RunSummary{Status: RunStatusCompleted},
	}
}

// WithRunID sets the run identifier.
func (b *RunSummaryBuilder) WithRunID(runID string) *RunSummaryBuilder {
	b.summary.RunID = runID
	return b
}

// WithRunLabel sets the free-form run label.
func (b *RunSummaryBuilder) WithRunLabel(label string) *RunSummaryBuilder {
	b.summary.RunLabel = label
	return b
}

// WithInputFile sets the input path.
func (b *RunSummaryBuilder) WithInputFile(path string) *RunSummaryBuilder {
	b.summary.InputFile = path
	return b
}

// WithPreviouslySeen sets the size of the seen set at startup.
func (b *RunSummaryBuilder) WithPreviouslySeen(n int) *RunSummaryBuilder {
	b.summary.PreviouslySeen = n
	return b
}

// WithRawLines sets the raw input line count.
func (b *RunSummaryBuilder) WithRawLines(n int) *RunSummaryBuilder {
	b.summary.RawLines = n
	return b
}

// WithInputCandidates sets the number of candidates sent to verification.
func (b *RunSummaryBuilder) WithInputCandidates(n int) *RunSummaryBuilder {
	b.summary.InputCandidates = n
	return b
}

// WithCounts sets the good and bad tallies.
func (b *RunSummaryBuilder) WithCounts(good, bad int) *RunSummaryBuilder {
	b.summary.Good = good
	b.summary.Bad = bad
	return b
}

// WithTiming sets the start time and total duration.
func (b *RunSummaryBuilder) WithTiming(startedAt time.Time, d time.Duration) *RunSummaryBuilder {
	b.summary.StartedAt = startedAt
	b.summary.Duration = d
	return b
}

// WithStatus sets the final status.
func (b *RunSummaryBuilder) WithStatus(status RunStatus) *RunSummaryBuilder {
	b.summary.Status = status
	return b
}

// WithErrorMessages appends error messages.
func (b *RunSummaryBuilder) WithErrorMessages(msgs ...string) *RunSummaryBuilder {
	b.summary.ErrorMessages = append(b.summary.ErrorMessages, msgs...)
	return b
}

// Build returns the constructed RunSummary.
func (b *RunSummaryBuilder) Build() RunSummary {
	return b.summary
}
