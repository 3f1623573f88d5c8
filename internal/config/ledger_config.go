package config

import "path/filepath"

// LedgerConfig defines where judged URLs are persisted
type LedgerConfig struct {
	OutputDir    string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" validate:"required"`
	GoodFile     string `json:"good_file,omitempty" yaml:"good_file,omitempty" validate:"required,nefield=BadFile"`
	BadFile      string `json:"bad_file,omitempty" yaml:"bad_file,omitempty" validate:"required"`
	SyncOnAppend bool   `json:"sync_on_append" yaml:"sync_on_append"`
}

// NewDefaultLedgerConfig creates default ledger configuration
func NewDefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		OutputDir:    DefaultLedgerOutputDir,
		GoodFile:     DefaultLedgerGoodFile,
		BadFile:      DefaultLedgerBadFile,
		SyncOnAppend: DefaultLedgerSyncOnAppend,
	}
}

// GoodPath returns the full path of the good ledger file
func (lc LedgerConfig) GoodPath() string {
	return filepath.Join(lc.OutputDir, lc.GoodFile)
}

// BadPath returns the full path of the bad ledger file
func (lc LedgerConfig) BadPath() string {
	return filepath.Join(lc.OutputDir, lc.BadFile)
}
