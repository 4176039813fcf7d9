package core

import "context"

// WebhookNotification is the payload delivered to a token's webhook URL
// after the token has been consumed.
type WebhookNotification struct {
	Token     string `json:"token"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Label     string `json:"label,omitempty"`
}

// WebhookNotifier delivers payment notifications to external endpoints.
// Delivery is best effort; a failed delivery never rolls back a payment.
type WebhookNotifier interface {
	Notify(ctx context.Context, url string, notification WebhookNotification) error
}
