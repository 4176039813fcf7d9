package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
)

// defaultTimeout bounds a single delivery attempt
const defaultTimeout = 5 * time.Second

// HTTPNotifier delivers webhook notifications as JSON POST requests.
// Delivery is best effort; the caller decides what a failure means.
type HTTPNotifier struct {
	client *http.Client
	logger coreport.Logger
}

// NewHTTPNotifier creates a new HTTPNotifier
func NewHTTPNotifier(logger coreport.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Notify posts the notification to the given URL
func (n *HTTPNotifier) Notify(ctx context.Context, url string, notification coreport.WebhookNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	n.logger.Debug("Webhook delivered", map[string]any{
		"url":    url,
		"status": resp.StatusCode,
	})
	return nil
}
