package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"insufficient funds", ErrInsufficientFunds, CodeInsufficientFunds},
		{"invalid pin", ErrInvalidPin, CodeInvalidPin},
		{"pin not set", ErrPinNotSet, CodePinNotSet},
		{"account frozen", ErrAccountFrozen, CodeAccountFrozen},
		{"account deleted", ErrAccountDeleted, CodeAccountDeleted},
		{"forbidden", ErrForbidden, CodeForbidden},
		{"account not found", ErrAccountNotFound, CodeAccountNotFound},
		{"token expired", ErrTokenExpired, CodeTokenExpired},
		{"already consumed", ErrAlreadyConsumed, CodeAlreadyConsumed},
		{"already redeemed", ErrAlreadyRedeemed, CodeAlreadyRedeemed},
		{"account locked", ErrAccountLocked, CodeAccountLocked},
		{"cooldown active", ErrCooldownActive, CodeCooldownActive},
		{"no job assigned", ErrNoJob, CodeNoJob},
		{"invalid request", ErrInvalidRequest, CodeInvalidRequest},
		{"conflict", ErrConflict, CodeConflict},
		{"unknown error", errors.New("something else"), CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestErrorCode_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("while paying: %w", ErrInsufficientFunds)
	assert.Equal(t, CodeInsufficientFunds, ErrorCode(wrapped))
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError("acc-uuid", "50.000", "20.000")

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, IsInsufficientFundsError(err))
	assert.Contains(t, err.Error(), "acc-uuid")
	assert.Contains(t, err.Error(), "50.000")

	var detailed *InsufficientFundsError
	assert.True(t, errors.As(err, &detailed))
	assert.Equal(t, "20.000", detailed.Available)
	assert.Equal(t, CodeInsufficientFunds, detailed.LogFields()["error_code"])
}

func TestAccountLockedError(t *testing.T) {
	err := NewAccountLockedError("acc-uuid", "2026-01-01T00:15:00Z")

	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.True(t, IsAccountLockedError(err))
	assert.Contains(t, err.Error(), "locked until")
}

func TestLedgerError_Unwrap(t *testing.T) {
	err := NewLedgerError("transfer", "from-uuid", "to-uuid", "10.000", "frozen account", ErrAccountFrozen)

	assert.ErrorIs(t, err, ErrAccountFrozen)
	assert.True(t, IsFrozenOrDeletedError(err))
	assert.Equal(t, CodeAccountFrozen, ErrorCode(err))

	var ledgerErr *LedgerError
	assert.True(t, errors.As(err, &ledgerErr))
	assert.Equal(t, "transfer", ledgerErr.LogFields()["operation"])
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrAccountNotFound))
	assert.True(t, IsNotFoundError(ErrTokenNotFound))
	assert.True(t, IsNotFoundError(ErrGiftCodeNotFound))
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidPin))
}
