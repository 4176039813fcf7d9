package giftcode

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/logger"
	mockscore "github.com/MrEisbear/Silk/mocks/port/core"
	mockspersistence "github.com/MrEisbear/Silk/mocks/port/persistence"
)

func testGiftConfig() Config {
	return Config{TTL: 72 * time.Hour, GenerationRetries: 5}
}

func giftAccount(id uint64, uuid string, owner uint64, balance string) *entity.Account {
	return &entity.Account{
		ID:         id,
		UUID:       uuid,
		HolderType: entity.HolderTypeUser,
		HolderID:   owner,
		Balance:    decimal.RequireFromString(balance),
	}
}

func TestService_Issue(t *testing.T) {
	ctx := context.Background()
	actorID := uint64(7)
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("debits the creator and escrows the amount", func(t *testing.T) {
		// Arrange
		account := giftAccount(1, "acc-uuid", actorID, "100.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes, Ledger: mockLedger}

		mockTime.On("Now").Return(fixedTime)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)
		mockCodes.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil)

		var created *entity.GiftCode
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.GiftCode")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*entity.GiftCode) }).
			Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		// Act
		result, err := service.Issue(ctx, actorID, "acc-uuid", "25.000")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "75.000", account.Balance.StringFixed(3))
		assert.Len(t, result.Code, entity.GiftCodeLength)
		assert.Equal(t, "25.000", result.Amount)
		assert.Equal(t, fixedTime.Add(72*time.Hour), result.ExpiresAt)

		assert.Equal(t, result.Code, created.Code)
		assert.Equal(t, "acc-uuid", created.CreatedBy)
		assert.True(t, created.IsActive)

		assert.Equal(t, entity.TransactionTypeGiftcard, entry.TransactionType)
		assert.Equal(t, uint64(1), *entry.FromAccountID)
		assert.Nil(t, entry.ToAccountID)
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("insufficient funds leaves no code behind", func(t *testing.T) {
		account := giftAccount(1, "acc-uuid", actorID, "10.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes}

		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(account, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Issue(ctx, actorID, "acc-uuid", "25.000")

		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, "10.000", account.Balance.StringFixed(3))
		assert.Equal(t, 1, uow.Rollbacks)
		mockCodes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("retries code generation on collision", func(t *testing.T) {
		account := giftAccount(1, "acc-uuid", actorID, "100.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes, Ledger: mockLedger}

		mockTime.On("Now").Return(fixedTime)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)
		mockCodes.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Twice()
		mockCodes.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.GiftCode")).Return(nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Issue(ctx, actorID, "acc-uuid", "5.000")
		assert.NoError(t, err)
		mockCodes.AssertExpectations(t)
	})

	t.Run("gives up when the retries are exhausted", func(t *testing.T) {
		account := giftAccount(1, "acc-uuid", actorID, "100.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes}

		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(account, nil)
		mockCodes.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(true, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Issue(ctx, actorID, "acc-uuid", "5.000")
		assert.ErrorIs(t, err, errs.ErrInternalServer)
		assert.Equal(t, "100.000", account.Balance.StringFixed(3))
	})

	t.Run("rejects a foreign account", func(t *testing.T) {
		account := giftAccount(1, "acc-uuid", 99, "100.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts}
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Issue(ctx, actorID, "acc-uuid", "5.000")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestService_IssueSystem(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("mints without debiting any account", func(t *testing.T) {
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{GiftCodes: mockCodes, Accounts: mockAccounts}

		mockTime.On("Now").Return(fixedTime)
		mockCodes.On("CodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil)

		var created *entity.GiftCode
		mockCodes.On("Create", ctx, mock.AnythingOfType("*entity.GiftCode")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*entity.GiftCode) }).
			Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		result, err := service.IssueSystem(ctx, 1, "50.000")

		assert.NoError(t, err)
		assert.Equal(t, "50.000", result.Amount)
		assert.Equal(t, entity.SystemCreator, created.CreatedBy)
		assert.True(t, created.IsSystemIssued())
		mockAccounts.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything)
	})
}

func TestService_Redeem(t *testing.T) {
	ctx := context.Background()
	actorID := uint64(7)
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	activeCode := func(amount string) *entity.GiftCode {
		return &entity.GiftCode{
			Code:      "1234567890123456",
			Amount:    decimal.RequireFromString(amount),
			CreatedBy: "creator-uuid",
			ExpiresAt: fixedTime.Add(time.Hour),
			IsActive:  true,
		}
	}

	t.Run("credits the redeemer and retires the code", func(t *testing.T) {
		// Arrange
		code := activeCode("25.000")
		account := giftAccount(2, "acc-uuid", actorID, "5.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes, Ledger: mockLedger}

		mockTime.On("Now").Return(fixedTime)
		mockCodes.On("GetByCodeForUpdate", ctx, code.Code).Return(code, nil)
		mockCodes.On("Update", ctx, code).Return(nil)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		// Act
		result, err := service.Redeem(ctx, actorID, code.Code, "acc-uuid")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "30.000", result.NewBalance)
		assert.False(t, code.IsActive)
		assert.Equal(t, "acc-uuid", *code.RedeemedBy)
		assert.Equal(t, fixedTime, *code.RedeemedAt)
		assert.Equal(t, entity.TransactionTypeGiftcard, entry.TransactionType)
		assert.Equal(t, uint64(2), *entry.ToAccountID)
		assert.Nil(t, entry.FromAccountID)
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("an expired code refunds the creator and still reads expired", func(t *testing.T) {
		code := activeCode("25.000")
		code.ExpiresAt = fixedTime.Add(-time.Minute)
		creator := giftAccount(1, "creator-uuid", 42, "0.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes, Ledger: mockLedger}

		mockTime.On("Now").Return(fixedTime)
		mockCodes.On("GetByCodeForUpdate", ctx, code.Code).Return(code, nil)
		mockCodes.On("Update", ctx, code).Return(nil)
		mockAccounts.On("GetByUUID", ctx, "creator-uuid").Return(creator, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(creator, nil)
		mockAccounts.On("Update", ctx, creator).Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		result, err := service.Redeem(ctx, actorID, code.Code, "acc-uuid")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrGiftCodeExpired)
		// The refund is a committed terminal transition despite the error
		assert.Equal(t, 1, uow.Commits)
		assert.Equal(t, "25.000", creator.Balance.StringFixed(3))
		assert.False(t, code.IsActive)
		assert.Equal(t, entity.TransactionTypeRefund, entry.TransactionType)
		assert.Equal(t, uint64(1), *entry.ToAccountID)
	})

	t.Run("expired system codes are retired without a refund", func(t *testing.T) {
		code := activeCode("25.000")
		code.CreatedBy = entity.SystemCreator
		code.ExpiresAt = fixedTime.Add(-time.Minute)

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes}

		mockTime.On("Now").Return(fixedTime)
		mockCodes.On("GetByCodeForUpdate", ctx, code.Code).Return(code, nil)
		mockCodes.On("Update", ctx, code).Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Redeem(ctx, actorID, code.Code, "acc-uuid")

		assert.ErrorIs(t, err, errs.ErrGiftCodeExpired)
		assert.False(t, code.IsActive)
		assert.Equal(t, 1, uow.Commits)
		mockAccounts.AssertNotCalled(t, "GetByUUID", mock.Anything, mock.Anything)
	})

	t.Run("a redeemed code cannot be redeemed again", func(t *testing.T) {
		code := activeCode("25.000")
		redeemer := "someone-uuid"
		code.IsActive = false
		code.RedeemedBy = &redeemer

		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		uow := &mockspersistence.FakeUnitOfWork{GiftCodes: mockCodes}
		mockCodes.On("GetByCodeForUpdate", ctx, code.Code).Return(code, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Redeem(ctx, actorID, code.Code, "acc-uuid")
		assert.ErrorIs(t, err, errs.ErrAlreadyRedeemed)
		assert.Equal(t, 1, uow.Rollbacks)
	})

	t.Run("a retired unredeemed code reads expired", func(t *testing.T) {
		code := activeCode("25.000")
		code.IsActive = false

		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		uow := &mockspersistence.FakeUnitOfWork{GiftCodes: mockCodes}
		mockCodes.On("GetByCodeForUpdate", ctx, code.Code).Return(code, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Redeem(ctx, actorID, code.Code, "acc-uuid")
		assert.ErrorIs(t, err, errs.ErrGiftCodeExpired)
	})

	t.Run("a frozen redeemer account blocks redemption", func(t *testing.T) {
		code := activeCode("25.000")
		account := giftAccount(2, "acc-uuid", actorID, "5.000")
		account.IsFrozen = true

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockCodes := new(mockspersistence.MockGiftCodeRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, GiftCodes: mockCodes}

		mockTime.On("Now").Return(fixedTime)
		mockCodes.On("GetByCodeForUpdate", ctx, code.Code).Return(code, nil)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(account, nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testGiftConfig())

		_, err := service.Redeem(ctx, actorID, code.Code, "acc-uuid")
		assert.ErrorIs(t, err, errs.ErrAccountFrozen)
		assert.True(t, code.IsActive)
		assert.Equal(t, 1, uow.Rollbacks)
	})
}
