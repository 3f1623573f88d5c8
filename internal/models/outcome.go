package models

import "time"

// Outcome is the final classification of a checked URL
type Outcome int

const (
	OutcomeBad Outcome = iota
	OutcomeGood
)

func (o Outcome) String() string {
	if o == OutcomeGood {
		return "good"
	}
	return "bad"
}

// VerificationResult is produced exactly once per verified URL
type VerificationResult struct {
	URL      string
	Outcome  Outcome
	Reason   string // short machine-friendly cause, e.g. "status_404"
	Err      error
	Duration time.Duration
}

// IsGood reports whether the URL was classified as live
func (r VerificationResult) IsGood() bool {
	return r.Outcome == OutcomeGood
}
