// Package notify posts fire-and-forget webhook messages. Failures are
// folded into the Result, never returned as errors: a notification that
// did not go out must not disturb whatever triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is the outcome of a webhook post.
type Result struct {
	OK  bool   `json:"ok"`
	Err string `json:"error,omitempty"`
}

// Notifier posts a message to one configured channel.
type Notifier interface {
	Send(ctx context.Context, message string) Result
}

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func postJSON(ctx context.Context, client *http.Client, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

// Discord posts a message to a Discord webhook URL.
type Discord struct {
	WebhookURL string
	Client     *http.Client
}

// Send posts message as the webhook content.
func (d Discord) Send(ctx context.Context, message string) Result {
	if d.WebhookURL == "" {
		return Result{Err: "discord webhook not configured"}
	}
	resp, err := postJSON(ctx, defaultClient(d.Client), d.WebhookURL, map[string]string{"content": message})
	if err != nil {
		return Result{Err: "discord notify failed: " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: fmt.Sprintf("discord %d", resp.StatusCode)}
	}
	return Result{OK: true}
}

// Telegram posts a message through the Bot API sendMessage endpoint.
type Telegram struct {
	BotToken string
	ChatID   string
	Client   *http.Client

	// BaseURL overrides the Bot API host, for tests.
	BaseURL string
}

// Send posts message to the configured chat.
func (t Telegram) Send(ctx context.Context, message string) Result {
	if t.BotToken == "" || t.ChatID == "" {
		return Result{Err: "telegram not configured"}
	}
	base := t.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", base, t.BotToken)
	body := map[string]string{"chat_id": t.ChatID, "text": message, "parse_mode": "HTML"}
	resp, err := postJSON(ctx, defaultClient(t.Client), url, body)
	if err != nil {
		return Result{Err: "telegram notify failed: " + err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{Err: fmt.Sprintf("telegram %d", resp.StatusCode)}
	}
	return Result{OK: true}
}

var (
	_ Notifier = Discord{}
	_ Notifier = Telegram{}
)
