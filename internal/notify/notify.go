// Package notify delivers the final meal decision to a chat channel.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notifier sends a message and reports the delivery status code.
type Notifier interface {
	Send(ctx context.Context, message string) (int, error)
}

// Discord posts messages to a Discord webhook. It does not retry; the HTTP
// status is passed through and a non-2xx status is not an error.
type Discord struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewDiscord creates a webhook notifier. A nil client uses a 30s timeout client.
func NewDiscord(url string, client *http.Client, logger *zap.Logger) *Discord {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discord{url: url, client: client, logger: logger}
}

type discordPayload struct {
	Content string `json:"content"`
}

// Send posts message as the webhook content.
func (d *Discord) Send(ctx context.Context, message string) (int, error) {
	body, err := json.Marshal(discordPayload{Content: message})
	if err != nil {
		return 0, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	fields := []zap.Field{zap.Int("status", resp.StatusCode), zap.Int("length", len(message))}
	if resp.StatusCode >= 300 {
		d.logger.Warn("webhook rejected notification", fields...)
	} else {
		d.logger.Info("notification sent", fields...)
	}
	return resp.StatusCode, nil
}

// Console writes messages to w instead of delivering them. It reports status 0.
type Console struct {
	w io.Writer
}

// NewConsole creates a dry-run notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Send prints message.
func (c *Console) Send(ctx context.Context, message string) (int, error) {
	if _, err := fmt.Fprintf(c.w, "--- notification (dry run) ---\n%s\n", message); err != nil {
		return 0, fmt.Errorf("failed to print notification: %w", err)
	}
	return 0, nil
}

var (
	_ Notifier = (*Discord)(nil)
	_ Notifier = (*Console)(nil)
)
