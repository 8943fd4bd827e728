package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

// AuditEvent describes an authentication event worth reporting.
type AuditEvent struct {
	Event     string    `json:"event"`
	Email     string    `json:"email"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

// WebhookNotifier posts audit events to an optional downstream collector.
// Delivery is best effort: failures are logged and never surfaced to callers.
type WebhookNotifier struct {
	client *http.Client
	url    string
}

// NewWebhookNotifier builds a notifier, auto-configuring an ID token client
// for authenticated targets. Returns nil when no URL is configured.
func NewWebhookNotifier(client *http.Client, webhookURL string) *WebhookNotifier {
	webhookURL = strings.TrimRight(strings.TrimSpace(webhookURL), "/")
	if webhookURL == "" {
		return nil
	}
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), webhookURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &WebhookNotifier{client: client, url: webhookURL}
}

// Notify delivers the event, stamping it with the current time.
func (n *WebhookNotifier) Notify(ctx context.Context, event AuditEvent) {
	if n == nil {
		return
	}
	event.At = time.Now().UTC()

	if err := n.post(ctx, event); err != nil {
		log.Printf("audit webhook: %v", err)
	}
}

func (n *WebhookNotifier) post(ctx context.Context, event AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-ID", event.RequestID)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver event: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
