package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentToken represents the database model for payment tokens. The
// user-agent audit record is stored as a JSON document.
type PaymentToken struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	Token         string          `gorm:"uniqueIndex;not null;size:64"`
	SenderUUID    string          `gorm:"not null;size:36;index"`
	RecipientUUID string          `gorm:"not null;size:36;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,3);not null"`
	TaxCategory   string          `gorm:"size:16"`
	Label         string          `gorm:"size:255"`
	WebhookURL    string          `gorm:"size:2000"`
	Status        string          `gorm:"not null;size:16;index"`
	Expires       time.Time       `gorm:"not null;index"`
	IPAddress     string          `gorm:"size:45"`
	UserAgent     string          `gorm:"type:jsonb"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName specifies the table name for PaymentToken
func (PaymentToken) TableName() string {
	return "payment_tokens"
}
