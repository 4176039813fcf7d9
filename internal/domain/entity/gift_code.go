package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiftCodeLength is the fixed number of digits in a gift code.
const GiftCodeLength = 16

// SystemCreator marks gift codes issued administratively, without an
// escrow debit or a creator account to refund on expiry.
const SystemCreator = "Administrator"

// GiftCode is a prepaid code holding funds reserved from its creator.
// It reaches exactly one terminal state: redeemed or expired-and-refunded.
type GiftCode struct {
	Code       string
	Amount     decimal.Decimal
	CreatedBy  string
	ExpiresAt  time.Time
	IsActive   bool
	RedeemedBy *string
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

// IsExpired reports whether the code is past its expiry.
func (g *GiftCode) IsExpired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}

// IsSystemIssued reports whether the code was created administratively.
func (g *GiftCode) IsSystemIssued() bool {
	return g.CreatedBy == SystemCreator
}
