// Package mailer delivers admin notifications through a Resend-compatible
// transactional email API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.resend.com"

// HTTPNotifier posts messages to the email API. A notifier with missing
// credentials or an empty recipient list skips sends instead of failing, so
// callers never need to special-case an unconfigured deployment.
type HTTPNotifier struct {
	baseURL    string
	apiKey     string
	from       string
	to         []string
	httpClient *http.Client
	logger     *slog.Logger
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// NewHTTPNotifier creates a notifier. Recipients is a comma-separated list;
// blank entries are dropped.
func NewHTTPNotifier(apiKey, from, recipients string, logger *slog.Logger) *HTTPNotifier {
	var to []string
	for _, email := range strings.Split(recipients, ",") {
		if email = strings.TrimSpace(email); email != "" {
			to = append(to, email)
		}
	}
	return &HTTPNotifier{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		from:    from,
		to:      to,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether the notifier has everything it needs to send.
func (n *HTTPNotifier) Enabled() bool {
	return n.apiKey != "" && n.from != "" && len(n.to) > 0
}

// Send delivers one plain-text message to the admin recipient list.
func (n *HTTPNotifier) Send(ctx context.Context, subject, body string) error {
	if !n.Enabled() {
		n.logger.Warn("admin notification skipped, mailer not configured", slog.String("subject", subject))
		return nil
	}

	payload, err := json.Marshal(message{From: n.from, To: n.to, Subject: subject, Text: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		n.logger.Error("admin notification failed", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("mailer error: %s", resp.Status)
	}
	return nil
}
