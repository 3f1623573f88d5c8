package progress

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (pdm *ProgressDisplayManager) displayLoop(ctx context.Context, ticker *time.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			pdm.displayProgress()
		case <-pdm.triggerDisplay:
			pdm.displayProgress()
		}
	}
}

// displayProgress logs the current state unless it is unchanged
func (pdm *ProgressDisplayManager) displayProgress() {
	pdm.mutex.Lock()
	defer pdm.mutex.Unlock()

	var builder strings.Builder

	if out := pdm.formatCompileProgress(pdm.compileProgress.Info()); out != "" {
		builder.WriteString(out)
	}
	if out := pdm.formatCheckProgress(pdm.checkProgress.Info()); out != "" {
		if builder.Len() > 0 {
			builder.WriteString(" | ")
		}
		builder.WriteString(out)
	}

	output := builder.String()
	if output != "" && output != pdm.lastDisplayed {
		pdm.logger.Info().Msg(output)
		pdm.lastDisplayed = output
	}
}

func (pdm *ProgressDisplayManager) formatCompileProgress(info ProgressInfo) string {
	// Only shown while it runs; the check line takes over afterwards.
	if info.Status != ProgressStatusRunning && info.Status != ProgressStatusError {
		return ""
	}

	s := fmt.Sprintf("Compile: %s (%d/%d)", pdm.getStatusIcon(info.Status), info.Current, info.Total)
	if info.Message != "" {
		s += " | " + info.Message
	}
	return s
}

func (pdm *ProgressDisplayManager) formatCheckProgress(info ProgressInfo) string {
	if info.Status == ProgressStatusIdle || info.Total <= 0 {
		return ""
	}

	percentage := info.GetPercentage()

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Check: %s %s %.1f%% (%d/%d) | good:%d bad:%d",
		pdm.getStatusIcon(info.Status), pdm.createProgressBar(percentage, 20), percentage,
		info.Current, info.Total, info.Counts.Good, info.Counts.Bad))

	if pdm.config.ShowETAEstimation && info.EstimatedETA > 0 && info.Status == ProgressStatusRunning {
		builder.WriteString(" | ETA: " + formatDuration(info.EstimatedETA))
	}
	if info.Message != "" {
		builder.WriteString(" | " + info.Message)
	}
	return builder.String()
}

func (pdm *ProgressDisplayManager) getStatusIcon(status ProgressStatus) string {
	switch status {
	case ProgressStatusRunning:
		return "⏳"
	case ProgressStatusComplete:
		return "✅"
	case ProgressStatusError:
		return "❌"
	case ProgressStatusCancelled:
		return "🚫"
	case ProgressStatusIdle:
		return "💤"
	default:
		return "❓"
	}
}

func (pdm *ProgressDisplayManager) createProgressBar(percentage float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
