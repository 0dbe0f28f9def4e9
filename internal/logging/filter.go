// Package logging provides zerolog utilities, including redaction of
// webhook credentials so tokens never end up in log files.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match credential formats tempo handles: webhook
// URLs and bot tokens configured for the notify channels.
var sensitivePatterns = []*regexp.Regexp{
	// Discord webhook URLs carry the token in the path.
	regexp.MustCompile(`https://discord(?:app)?\.com/api/webhooks/[0-9]+/[a-zA-Z0-9_-]+`),

	// Telegram bot tokens ("123456:ABC-DEF...") standalone or in a Bot
	// API URL.
	regexp.MustCompile(`\b[0-9]{8,10}:[a-zA-Z0-9_-]{35}\b`),
	regexp.MustCompile(`api\.telegram\.org/bot[^/\s]+`),

	// Generic secret assignments.
	regexp.MustCompile(`(?i)(secret|password|token|credential)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// sensitiveFieldNames are field names whose values are always redacted,
// matched case-insensitively as substrings.
var sensitiveFieldNames = []string{
	"token",
	"password",
	"secret",
	"credential",
	"webhook_url",
	"authorization",
}

// SensitiveDataHook flags log events whose message matches a sensitive
// pattern. Zerolog hooks cannot rewrite the message, so field-level
// filtering happens at call sites via RedactIfSensitive and on file
// sinks via FilteringWriter.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData reports whether s matches any sensitive pattern.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every sensitive pattern match in value
// with RedactedValue.
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether the field name indicates a
// sensitive value.
func IsSensitiveFieldName(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for _, s := range sensitiveFieldNames {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// RedactIfSensitive returns RedactedValue for sensitive field names and
// a pattern-filtered value otherwise. Use when logging values that may
// carry credentials.
func RedactIfSensitive(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from
// everything written through it. File sinks are wrapped with this so
// credentials never reach disk even via message text.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a FilteringWriter over w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write filters p before writing. The original length is returned so
// callers never observe a short write from redaction shrinking the
// payload.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	if _, err = fw.w.Write([]byte(FilterSensitiveValue(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
