package cli

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitLoggerWithWriter_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    zerolog.Level
	}{
		{name: "default is info", want: zerolog.InfoLevel},
		{name: "verbose is debug", verbose: true, want: zerolog.DebugLevel},
		{name: "quiet is warn", quiet: true, want: zerolog.WarnLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			logger := InitLoggerWithWriter(tc.verbose, tc.quiet, buf)
			assert.Equal(t, tc.want, logger.GetLevel())
		})
	}
}

func TestInitLoggerWithWriter_WritesJSON(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := InitLoggerWithWriter(false, false, buf)

	logger.Info().Str("component", "test").Msg("hello")

	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestInitLoggerWithWriter_RedactsSensitiveValues(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := InitLoggerWithWriter(false, false, buf)

	logger.Info().Msg("posting to https://discord.com/api/webhooks/123456/abcDEF-token_value")

	assert.NotContains(t, buf.String(), "abcDEF-token_value")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestSelectLevelFallsBackToConfig(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, selectLevel(false, false, "debug"))
	assert.Equal(t, zerolog.InfoLevel, selectLevel(false, false, "not-a-level"))
	// Flags win over config.
	assert.Equal(t, zerolog.WarnLevel, selectLevel(false, true, "debug"))
}
