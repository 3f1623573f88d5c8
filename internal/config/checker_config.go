package config

import "time"

// CheckerConfig controls the candidate pipeline and the worker pool.
type CheckerConfig struct {
	// Workers is the fixed number of goroutines verifying URLs.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" validate:"min=1,max=256"`
	// PasteDepth is how many levels of paste expansion are allowed.
	PasteDepth int `json:"paste_depth" yaml:"paste_depth" validate:"min=0,max=1"`
	// MaxInputMB caps the size of the input file read at startup.
	MaxInputMB int `json:"max_input_mb,omitempty" yaml:"max_input_mb,omitempty" validate:"min=1"`
	// RunLabel is stored with the run history entry.
	RunLabel string `json:"run_label,omitempty" yaml:"run_label,omitempty"`
}

// NewDefaultCheckerConfig creates default checker configuration
func NewDefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{
		Workers:    DefaultCheckerWorkers,
		PasteDepth: DefaultCheckerPasteDepth,
		MaxInputMB: DefaultCheckerMaxInputMB,
		RunLabel:   DefaultCheckerRunLabel,
	}
}

// VerifierConfig holds the timeouts used while classifying a single URL.
type VerifierConfig struct {
	VerifyTimeoutSecs  int      `json:"verify_timeout_secs,omitempty" yaml:"verify_timeout_secs,omitempty" validate:"min=1"`
	RequestTimeoutSecs int      `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"min=1"`
	MegaTimeoutSecs    int      `json:"mega_timeout_secs,omitempty" yaml:"mega_timeout_secs,omitempty" validate:"min=1"`
	MegaAPIURL         string   `json:"mega_api_url,omitempty" yaml:"mega_api_url,omitempty" validate:"required,url"`
	NegativeSignals    []string `json:"negative_signals,omitempty" yaml:"negative_signals,omitempty" validate:"dive,required"`
}

// NewDefaultVerifierConfig creates default verifier configuration
func NewDefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{
		VerifyTimeoutSecs:  DefaultVerifierVerifyTimeoutSecs,
		RequestTimeoutSecs: DefaultVerifierRequestTimeoutSecs,
		MegaTimeoutSecs:    DefaultVerifierMegaTimeoutSecs,
		MegaAPIURL:         DefaultVerifierMegaAPIURL,
		NegativeSignals:    []string{},
	}
}

// VerifyTimeout returns the per-URL deadline.
func (vc VerifierConfig) VerifyTimeout() time.Duration {
	return time.Duration(vc.VerifyTimeoutSecs) * time.Second
}

// RequestTimeout returns the timeout of the liveness GET.
func (vc VerifierConfig) RequestTimeout() time.Duration {
	return time.Duration(vc.RequestTimeoutSecs) * time.Second
}

// MegaTimeout returns the timeout of the Mega API request.
func (vc VerifierConfig) MegaTimeout() time.Duration {
	return time.Duration(vc.MegaTimeoutSecs) * time.Second
}

// PasteConfig controls paste-site expansion.
type PasteConfig struct {
	TimeoutSecs int `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	MaxBodyMB   int `json:"max_body_mb,omitempty" yaml:"max_body_mb,omitempty" validate:"min=1"`
}

// NewDefaultPasteConfig creates default paste configuration
func NewDefaultPasteConfig() PasteConfig {
	return PasteConfig{
		TimeoutSecs: DefaultPasteTimeoutSecs,
		MaxBodyMB:   DefaultPasteMaxBodyMB,
	}
}

// Timeout returns the paste fetch timeout.
func (pc PasteConfig) Timeout() time.Duration {
	return time.Duration(pc.TimeoutSecs) * time.Second
}
