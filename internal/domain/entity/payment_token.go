package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment token states
const (
	TokenStatusIssued    = "issued"
	TokenStatusConsumed  = "consumed"
	TokenStatusExpired   = "expired"
	TokenStatusCancelled = "cancelled"
)

// Recipient types for payment tokens
const (
	RecipientTypePersonal = "personal"
	RecipientTypeCompany  = "company"
)

// UserAgentInfo is the parsed user-agent audit record stored with a token.
type UserAgentInfo struct {
	Raw     string `json:"raw"`
	Browser string `json:"browser"`
	OS      string `json:"os"`
	Device  string `json:"device"`
	Mobile  bool   `json:"mobile"`
	Bot     bool   `json:"bot"`
}

// PaymentToken is a pre-authorized, single-use representation of a payment.
// Issuing a token moves no funds; consumption executes the payment and is
// the only transition out of the issued state besides expiry and cancel.
type PaymentToken struct {
	ID            uint64
	Token         string
	SenderUUID    string
	RecipientUUID string
	Amount        decimal.Decimal
	TaxCategory   string
	Label         string
	WebhookURL    string
	Status        string
	Expires       time.Time
	IPAddress     string
	UserAgent     UserAgentInfo
	CreatedAt     time.Time
}

// IsExpired reports whether the token is past its expiry.
func (t *PaymentToken) IsExpired(now time.Time) bool {
	return now.After(t.Expires)
}

// IsTerminal reports whether the token has reached a final state.
func (t *PaymentToken) IsTerminal() bool {
	return t.Status != TokenStatusIssued
}
