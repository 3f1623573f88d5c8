package notifier

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/models"
)

// FormatRunCompleteMessage builds the end-of-run webhook payload
func FormatRunCompleteMessage(summary models.RunSummary, cfg config.NotificationConfig) models.DiscordMessagePayload {
	title, color := statusTitleAndColor(summary.Status)

	embed := NewDiscordEmbedBuilder().
		WithTitle(title).
		WithDescription(fmt.Sprintf("Input `%s`", filepath.Base(summary.InputFile))).
		WithColor(color).
		WithTimestamp(summary.StartedAt.Add(summary.Duration)).
		AddField("Previously seen", fmt.Sprintf("%d", summary.PreviouslySeen), true).
		AddField("Raw lines", fmt.Sprintf("%d", summary.RawLines), true).
		AddField("Candidates", fmt.Sprintf("%d", summary.InputCandidates), true).
		AddField("Good", fmt.Sprintf("%d", summary.Good), true).
		AddField("Bad", fmt.Sprintf("%d", summary.Bad), true).
		AddField("Duration", summary.Duration.Round(time.Second).String(), true)

	if len(summary.ErrorMessages) > 0 {
		embed.AddField("Errors", formatErrors(summary.ErrorMessages), false)
	}
	if summary.RunID != "" {
		embed.WithFooter("Run " + summary.RunID)
	}

	payload := models.DiscordMessagePayload{
		Username: DiscordUsername,
		Embeds:   []models.DiscordEmbed{embed.Build()},
	}

	if len(cfg.MentionRoleIDs) > 0 {
		mentions := make([]string, 0, len(cfg.MentionRoleIDs))
		for _, id := range cfg.MentionRoleIDs {
			mentions = append(mentions, "<@&"+id+">")
		}
		payload.Content = strings.Join(mentions, " ")
		payload.AllowedMentions = &models.AllowedMentions{Roles: cfg.MentionRoleIDs}
	}

	return payload
}

func statusTitleAndColor(status models.RunStatus) (string, int) {
	switch status {
	case models.RunStatusCompleted:
		return "✅ Link check completed", SuccessEmbedColor
	case models.RunStatusNoTargets:
		return "💤 Link check found nothing to verify", DefaultEmbedColor
	case models.RunStatusInterrupted:
		return "🚫 Link check interrupted", InterruptEmbedColor
	case models.RunStatusFailed:
		return "❌ Link check failed", ErrorEmbedColor
	default:
		return "Link check finished", WarningEmbedColor
	}
}

func formatErrors(msgs []string) string {
	var b strings.Builder
	for i, m := range msgs {
		if i == MaxErrorSampleCount {
			fmt.Fprintf(&b, "... and %d more", len(msgs)-MaxErrorSampleCount)
			break
		}
		b.WriteString("• " + truncate(m, MaxSingleErrorLength) + "\n")
	}
	return truncate(strings.TrimRight(b.String(), "\n"), MaxErrorTextLength)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
