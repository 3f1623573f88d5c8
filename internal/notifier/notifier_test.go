package notifier

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/linkchecker/internal/config"
	"github.com/aleister1102/linkchecker/internal/httpclient"
	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary(status models.RunStatus) models.RunSummary {
	return models.NewRunSummaryBuilder().
		WithRunID("20260101-000000").
		WithInputFile("/tmp/links.txt").
		WithPreviouslySeen(1).
		WithRawLines(3).
		WithInputCandidates(2).
		WithCounts(1, 1).
		WithTiming(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 3*time.Second).
		WithStatus(status).
		Build()
}

func TestFormatRunCompleteMessage(t *testing.T) {
	cfg := config.NewDefaultNotificationConfig()
	cfg.MentionRoleIDs = []string{"123"}

	payload := FormatRunCompleteMessage(sampleSummary(models.RunStatusCompleted), cfg)
	require.Len(t, payload.Embeds, 1)

	embed := payload.Embeds[0]
	assert.Contains(t, embed.Title, "completed")
	assert.Equal(t, SuccessEmbedColor, embed.Color)
	assert.Equal(t, "Input `links.txt`", embed.Description)
	assert.Equal(t, "2026-01-01T00:00:03Z", embed.Timestamp)
	assert.Equal(t, "Run 20260101-000000", embed.Footer.Text)
	assert.Len(t, embed.Fields, 6)
	assert.Equal(t, "<@&123>", payload.Content)
	assert.Equal(t, []string{"123"}, payload.AllowedMentions.Roles)
}

func TestFormatErrors(t *testing.T) {
	msgs := []string{"a", "b", strings.Repeat("c", 500), "d", "e"}
	out := formatErrors(msgs)
	assert.Contains(t, out, "• a")
	assert.Contains(t, out, "... and 2 more")
	assert.NotContains(t, out, "• d")
	assert.Contains(t, out, strings.Repeat("c", MaxSingleErrorLength-3)+"...")
}

func TestNotificationHelper_SendsOnFailure(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		var payload models.DiscordMessagePayload
		assert.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, DiscordUsername, payload.Username)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	cfg := config.NewDefaultNotificationConfig()
	cfg.DiscordWebhookURL = server.URL + "/webhook"
	helper := NewNotificationHelper(NewDiscordNotifier(zerolog.Nop(), client), cfg, zerolog.Nop())

	helper.SendRunCompletion(sampleSummary(models.RunStatusInterrupted))
	assert.Equal(t, int32(1), hits.Load())

	// Success notifications are off by default.
	helper.SendRunCompletion(sampleSummary(models.RunStatusCompleted))
	assert.Equal(t, int32(1), hits.Load())
}

func TestNotificationHelper_Disabled(t *testing.T) {
	helper := NewNotificationHelper(nil, config.NewDefaultNotificationConfig(), zerolog.Nop())
	assert.False(t, helper.Enabled())
	helper.SendRunCompletion(sampleSummary(models.RunStatusFailed))
}

func TestDiscordNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	dn := NewDiscordNotifier(zerolog.Nop(), client)

	err = dn.SendNotification(t.Context(), server.URL, models.DiscordMessagePayload{Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	assert.NoError(t, dn.SendNotification(t.Context(), "", models.DiscordMessagePayload{}))
	assert.Error(t, dn.SendNotification(t.Context(), "not a url", models.DiscordMessagePayload{}))
}
