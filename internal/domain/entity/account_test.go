package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/MrEisbear/Silk/internal/domain/error"
)

func TestAccount_CheckUsable(t *testing.T) {
	t.Run("active account is usable", func(t *testing.T) {
		account := &Account{UUID: "a1", HolderType: HolderTypeUser}
		assert.NoError(t, account.CheckUsable())
	})

	t.Run("frozen account rejects movement", func(t *testing.T) {
		account := &Account{UUID: "a1", IsFrozen: true}
		assert.ErrorIs(t, account.CheckUsable(), errs.ErrAccountFrozen)
	})

	t.Run("deleted account rejects movement", func(t *testing.T) {
		account := &Account{UUID: "a1", IsDeleted: true}
		assert.ErrorIs(t, account.CheckUsable(), errs.ErrAccountDeleted)
	})

	t.Run("deleted wins over frozen", func(t *testing.T) {
		account := &Account{UUID: "a1", IsFrozen: true, IsDeleted: true}
		assert.ErrorIs(t, account.CheckUsable(), errs.ErrAccountDeleted)
	})
}

func TestAccount_CheckDebit(t *testing.T) {
	account := &Account{UUID: "a1", Balance: decimal.RequireFromString("20.000")}

	assert.NoError(t, account.CheckDebit(decimal.RequireFromString("20.000")))
	assert.NoError(t, account.CheckDebit(decimal.RequireFromString("19.999")))

	err := account.CheckDebit(decimal.RequireFromString("20.001"))
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
}

func TestAccount_Ownership(t *testing.T) {
	personal := &Account{HolderType: HolderTypeUser, HolderID: 42}
	company := &Account{HolderType: HolderTypeCompany, HolderID: 42}

	assert.True(t, personal.IsOwnedBy(42))
	assert.False(t, personal.IsOwnedBy(43))
	assert.True(t, personal.IsPersonal())

	// Company accounts are never owned by a user directly
	assert.False(t, company.IsOwnedBy(42))
	assert.False(t, company.IsPersonal())
}

func TestAccount_PinLock(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no lockout set", func(t *testing.T) {
		account := &Account{}
		assert.False(t, account.IsPinLocked(now))
		assert.False(t, account.HasPin())
	})

	t.Run("lockout in the future", func(t *testing.T) {
		until := now.Add(10 * time.Minute)
		account := &Account{PinHash: "x", PinLockedUntil: &until}
		assert.True(t, account.IsPinLocked(now))
		assert.True(t, account.HasPin())
	})

	t.Run("lockout elapsed", func(t *testing.T) {
		until := now.Add(-time.Second)
		account := &Account{PinLockedUntil: &until}
		assert.False(t, account.IsPinLocked(now))
	})
}

func TestUser_SalaryCooldown(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	cooldown := 24 * time.Hour

	t.Run("never claimed", func(t *testing.T) {
		user := &User{}
		assert.True(t, user.CanClaimSalary(now, cooldown))
	})

	t.Run("claimed one second ago", func(t *testing.T) {
		last := now.Add(-time.Second)
		user := &User{LastSalaryClaim: &last}
		assert.False(t, user.CanClaimSalary(now, cooldown))
		assert.Equal(t, last.Add(cooldown), user.NextSalaryClaim(cooldown))
	})

	t.Run("claimed just over a day ago", func(t *testing.T) {
		last := now.Add(-cooldown - time.Second)
		user := &User{LastSalaryClaim: &last}
		assert.True(t, user.CanClaimSalary(now, cooldown))
	})
}
