package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
)

const sendTimeout = 20 * time.Second

// Sender performs a single HTTP request
type Sender interface {
	Do(req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// DiscordNotifier posts payloads to a Discord webhook.
type DiscordNotifier struct {
	logger zerolog.Logger
	sender Sender
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(logger zerolog.Logger, sender Sender) *DiscordNotifier {
	return &DiscordNotifier{
		logger: logger.With().Str("component", "DiscordNotifier").Logger(),
		sender: sender,
	}
}

// SendNotification posts payload to webhookURL. An empty URL is a no-op.
func (dn *DiscordNotifier) SendNotification(ctx context.Context, webhookURL string, payload models.DiscordMessagePayload) error {
	if webhookURL == "" {
		dn.logger.Debug().Msg("Webhook URL is empty, skipping Discord notification")
		return nil
	}
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return fmt.Errorf("invalid discord webhook url: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	resp, err := dn.sender.Do(&httpclient.HTTPRequest{
		URL:     webhookURL,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    bytes.NewReader(body),
		Context: ctx,
		Timeout: sendTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to send discord notification: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("discord notification failed with status %d: %s", resp.StatusCode, truncate(string(resp.Body), 200))
	}

	dn.logger.Info().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}
