package config

const (
	// Checker Defaults
	DefaultCheckerWorkers    = 6
	DefaultCheckerPasteDepth = 1
	DefaultCheckerMaxInputMB = 64
	DefaultCheckerRunLabel   = "manual"

	// Verifier Defaults
	DefaultVerifierVerifyTimeoutSecs  = 10
	DefaultVerifierRequestTimeoutSecs = 20
	DefaultVerifierMegaTimeoutSecs    = 10
	DefaultVerifierMegaAPIURL         = "https://g.api.mega.co.nz/cs"

	// Paste Defaults
	DefaultPasteTimeoutSecs = 10
	DefaultPasteMaxBodyMB   = 5

	// Ledger Defaults
	DefaultLedgerOutputDir    = "output"
	DefaultLedgerGoodFile     = "good_urls.txt"
	DefaultLedgerBadFile      = "bad_urls.txt"
	DefaultLedgerSyncOnAppend = true

	// HTTP Client Defaults
	DefaultHTTPUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultHTTPFollowRedirects    = true
	DefaultHTTPMaxRedirects       = 10
	DefaultHTTPInsecureSkipVerify = false
	DefaultHTTPEnableHTTP2        = true
	DefaultHTTPMaxContentSizeMB   = 10

	// Storage Defaults
	DefaultStorageHistoryEnabled = true
	DefaultStorageHistoryDBPath  = "output/history.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Progress Defaults
	DefaultProgressDisplayInterval = 3
)
