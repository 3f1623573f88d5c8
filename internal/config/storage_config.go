package config

// StorageConfig defines configuration for the run history database
type StorageConfig struct {
	HistoryEnabled bool   `json:"history_enabled" yaml:"history_enabled"`
	HistoryDBPath  string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty" validate:"required_if=HistoryEnabled true"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HistoryEnabled: DefaultStorageHistoryEnabled,
		HistoryDBPath:  DefaultStorageHistoryDBPath,
	}
}
