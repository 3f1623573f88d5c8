package notifier

import (
	"context"
	"time"

	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
)

// NotificationHelper decides whether a run summary is worth sending
type NotificationHelper struct {
	discordNotifier *DiscordNotifier
	cfg             config.NotificationConfig
	logger          zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper.
func NewNotificationHelper(dn *DiscordNotifier, cfg config.NotificationConfig, logger zerolog.Logger) *NotificationHelper {
	return &NotificationHelper{
		discordNotifier: dn,
		cfg:             cfg,
		logger:          logger.With().Str("component", "NotificationHelper").Logger(),
	}
}

// Enabled reports whether a webhook is configured
func (nh *NotificationHelper) Enabled() bool {
	return nh != nil && nh.discordNotifier != nil && nh.cfg.DiscordWebhookURL != ""
}

// SendRunCompletion sends the summary when its status is enabled in config.
// Failures are logged and never returned.
func (nh *NotificationHelper) SendRunCompletion(summary models.RunSummary) {
	if !nh.Enabled() {
		return
	}

	var notify bool
	switch summary.Status {
	case models.RunStatusCompleted, models.RunStatusNoTargets:
		notify = nh.cfg.NotifyOnSuccess
	case models.RunStatusFailed, models.RunStatusInterrupted:
		notify = nh.cfg.NotifyOnFailure
	}
	if !notify {
		nh.logger.Debug().Str("status", string(summary.Status)).Msg("Notification for this run status is disabled")
		return
	}

	// The run context may already be cancelled on interrupt.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload := FormatRunCompleteMessage(summary, nh.cfg)
	if err := nh.discordNotifier.SendNotification(ctx, nh.cfg.DiscordWebhookURL, payload); err != nil {
		nh.logger.Error().Err(err).Str("run_id", summary.RunID).Msg("Failed to send run completion notification")
	}
}
