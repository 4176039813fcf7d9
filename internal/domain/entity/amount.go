package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/MrEisbear/Silk/internal/domain/error"
)

// Amount limits are package-level, like decimal.DivisionPrecision.
// SetAmountLimits overrides them from configuration at startup.
var (
	// MaxDecimalPlaces is the maximum number of fraction digits allowed for money amounts
	MaxDecimalPlaces int32 = 3

	// MaxAmount is the upper bound for any single movement. The balance column is
	// DECIMAL(19,3), so sixteen integer digits is the most it can represent.
	MaxAmount = decimal.New(1, 16)
)

// SetAmountLimits overrides the movement ceiling and fraction-digit limit.
// Call once at startup, before serving requests. Non-positive values keep
// the current limit.
func SetAmountLimits(ceiling decimal.Decimal, fractionDigits int32) {
	if ceiling.IsPositive() {
		MaxAmount = ceiling
	}
	if fractionDigits > 0 {
		MaxDecimalPlaces = fractionDigits
	}
}

// ParseAmount parses and validates a client-supplied amount string.
// Amounts are kept as strings on the wire to avoid float rounding.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, raw)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ValidateAmount checks that an amount is usable for a balance movement:
// strictly positive, within the fraction-digit limit and below the ceiling.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be positive", errs.ErrInvalidAmount)
	}
	// Compare against the rounded value so trailing zeroes ("25.0000") pass
	if !amount.Equal(amount.Round(MaxDecimalPlaces)) {
		return fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if amount.GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: exceeds maximum representable amount", errs.ErrInvalidAmount)
	}
	return nil
}

// FormatAmount renders an amount with the canonical fraction digits.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}

// TaxFor computes the tax due for an amount at the given rate, rounded to the
// ledger precision. The payer is charged amount plus this value.
func TaxFor(amount decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(MaxDecimalPlaces)
}
