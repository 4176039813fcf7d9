package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/MrEisbear/Silk/internal/domain/error"
)

// Holder types for bank accounts
const (
	HolderTypeUser    = "user"
	HolderTypeCompany = "company"
)

// Account represents a bank account holding a monetary balance.
// Balance mutations happen only inside ledger operations that pair the
// mutation with a transaction row in the same database transaction.
type Account struct {
	ID            uint64
	UUID          string
	AccountNumber string
	HolderType    string
	HolderID      uint64
	Balance       decimal.Decimal
	IsFrozen      bool
	IsDeleted     bool

	// PIN authorization state, personal accounts only
	PinHash           string
	PinFailedAttempts int
	PinLockedUntil    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPersonal reports whether the account is held by a user directly.
// Only personal accounts may carry a PIN or issue payment tokens.
func (a *Account) IsPersonal() bool {
	return a.HolderType == HolderTypeUser
}

// IsOwnedBy reports whether the given user holds this account.
func (a *Account) IsOwnedBy(userID uint64) bool {
	return a.HolderType == HolderTypeUser && a.HolderID == userID
}

// CheckUsable verifies the account can take part in a balance movement.
// Admin adjustments are the only path allowed to skip this check.
func (a *Account) CheckUsable() error {
	if a.IsDeleted {
		return errs.ErrAccountDeleted
	}
	if a.IsFrozen {
		return errs.ErrAccountFrozen
	}
	return nil
}

// CheckDebit verifies the balance covers the requested debit.
func (a *Account) CheckDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return errs.NewInsufficientFundsError(a.UUID, FormatAmount(amount), FormatAmount(a.Balance))
	}
	return nil
}

// HasPin reports whether a PIN hash is stored for this account.
func (a *Account) HasPin() bool {
	return a.PinHash != ""
}

// IsPinLocked reports whether the account is inside its lockout window.
func (a *Account) IsPinLocked(now time.Time) bool {
	return a.PinLockedUntil != nil && now.Before(*a.PinLockedUntil)
}
