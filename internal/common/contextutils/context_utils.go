package contextutils

import (
	"context"

	"github.com/rs/zerolog"
)

// CancellationCheck is the outcome of a non-blocking look at ctx
type CancellationCheck struct {
	Cancelled bool
	Error     error
}

// CheckCancellation reports whether ctx is already done without blocking
func CheckCancellation(ctx context.Context) CancellationCheck {
	select {
	case <-ctx.Done():
		return CancellationCheck{Cancelled: true, Error: ctx.Err()}
	default:
		return CancellationCheck{}
	}
}

// CheckCancellationWithLog is CheckCancellation plus one log line naming the
// stage that noticed the cancellation.
func CheckCancellationWithLog(ctx context.Context, logger zerolog.Logger, stage string) CancellationCheck {
	result := CheckCancellation(ctx)
	if result.Cancelled {
		logger.Info().Str("stage", stage).Err(result.Error).Msg("Context cancelled")
	}
	return result
}
