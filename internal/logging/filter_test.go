package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFilterSensitiveValue(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		wants string
	}{
		{
			name:  "discord webhook url",
			in:    "posting to https://discord.com/api/webhooks/123456789/abcDEF_ghi-jkl now",
			wants: "posting to [REDACTED] now",
		},
		{
			name:  "telegram bot token",
			in:    "token 123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw1 rejected",
			wants: "token [REDACTED] rejected",
		},
		{
			name:  "telegram api url",
			in:    "POST https://api.telegram.org/bot123:abc/sendMessage failed",
			wants: "POST https://[REDACTED]/sendMessage failed",
		},
		{
			name:  "generic secret assignment",
			in:    `secret=supersecretvalue123`,
			wants: "[REDACTED]",
		},
		{
			name:  "clean text untouched",
			in:    "completed 3 tasks this week",
			wants: "completed 3 tasks this week",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, FilterSensitiveValue(tt.in))
		})
	}
}

func TestIsSensitiveFieldName(t *testing.T) {
	assert.True(t, IsSensitiveFieldName("telegram_bot_token"))
	assert.True(t, IsSensitiveFieldName("discord_webhook_url"))
	assert.True(t, IsSensitiveFieldName("Password"))
	assert.False(t, IsSensitiveFieldName("task_id"))
	assert.False(t, IsSensitiveFieldName("week"))
}

func TestRedactIfSensitive(t *testing.T) {
	assert.Equal(t, RedactedValue, RedactIfSensitive("bot_token", "anything"))
	assert.Equal(t, "plain", RedactIfSensitive("title", "plain"))
}

func TestFilteringWriter(t *testing.T) {
	var sb strings.Builder
	fw := NewFilteringWriter(&sb)

	payload := "url https://discord.com/api/webhooks/1/tok logged"
	n, err := fw.Write([]byte(payload))
	assert.NoError(t, err)
	assert.Equal(t, len(payload), n, "reports the original length")
	assert.Equal(t, "url [REDACTED] logged", sb.String())
}

func TestSensitiveDataHookFlagsMessages(t *testing.T) {
	var sb strings.Builder
	logger := zerolog.New(&sb).Hook(NewSensitiveDataHook())

	logger.Info().Msg("sending to https://discord.com/api/webhooks/1/tok")
	assert.Contains(t, sb.String(), `"contains_filtered_data":true`)

	sb.Reset()
	logger.Info().Msg("plain message")
	assert.NotContains(t, sb.String(), "contains_filtered_data")
}
