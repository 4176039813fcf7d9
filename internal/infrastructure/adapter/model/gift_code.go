package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiftCode represents the database model for gift codes
type GiftCode struct {
	Code       string          `gorm:"primaryKey;size:16"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,3);not null"`
	CreatedBy  string          `gorm:"not null;size:36;index"`
	ExpiresAt  time.Time       `gorm:"not null;index"`
	IsActive   bool            `gorm:"not null;default:true"`
	RedeemedBy *string         `gorm:"size:36"`
	RedeemedAt *time.Time
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GiftCode
func (GiftCode) TableName() string {
	return "gift_codes"
}
