package config

// NotificationConfig defines configuration for notifications
type NotificationConfig struct {
	DiscordWebhookURL string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	MentionRoleIDs    []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	NotifyOnSuccess   bool     `json:"notify_on_success" yaml:"notify_on_success"`
	NotifyOnFailure   bool     `json:"notify_on_failure" yaml:"notify_on_failure"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		DiscordWebhookURL: "",
		MentionRoleIDs:    []string{},
		NotifyOnSuccess:   false,
		NotifyOnFailure:   true,
	}
}
