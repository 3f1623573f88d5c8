package notifier

// Discord formatting constants
const (
	DiscordUsername     = "Link Checker"
	SuccessEmbedColor   = 0x5CB85C
	ErrorEmbedColor     = 0xD9534F
	WarningEmbedColor   = 0xF0AD4E
	InterruptEmbedColor = 0xFD7E14
	DefaultEmbedColor   = 0x2B2D31
)

// Error formatting constants
const (
	MaxErrorTextLength   = 800
	MaxSingleErrorLength = 150
	MaxErrorSampleCount  = 3
)
