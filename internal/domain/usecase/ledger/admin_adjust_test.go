package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/logger"
	mockscore "github.com/MrEisbear/Silk/mocks/port/core"
	mockspersistence "github.com/MrEisbear/Silk/mocks/port/persistence"
)

func TestService_AdminAdjust(t *testing.T) {
	ctx := context.Background()
	adminID := uint64(1)
	userID := uint64(7)

	newService := func(uow *mockspersistence.FakeUnitOfWork) *Service {
		return NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())
	}

	t.Run("credits a positive adjustment with admin metadata", func(t *testing.T) {
		// Arrange
		account := personalAccount(4, "acc-uuid", userID, "10.000")
		account.IsFrozen = true // admin path bypasses the freeze

		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts, Ledger: mockLedger}

		mockUsers.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockAccounts.On("GetByHolder", ctx, entity.HolderTypeUser, userID).
			Return([]*entity.Account{account}, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(4)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		// Act
		result, err := newService(uow).AdminAdjust(ctx, usecase.AdminAdjustRequest{
			AdminID: adminID, UserID: userID, Amount: "25.000", Reason: "event reward",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "35.000", account.Balance.StringFixed(3))
		assert.Equal(t, "35.000", result.NewBalance)
		assert.Equal(t, entity.TransactionTypeAdminAdj, entry.TransactionType)
		assert.Equal(t, uint64(4), *entry.ToAccountID)
		assert.Nil(t, entry.FromAccountID)
		assert.Equal(t, adminID, entry.Metadata["admin_id"])
		assert.Equal(t, "event reward", entry.Metadata["reason"])
	})

	t.Run("debits a negative adjustment", func(t *testing.T) {
		account := personalAccount(4, "acc-uuid", userID, "10.000")

		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts, Ledger: mockLedger}

		mockUsers.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockAccounts.On("GetByHolder", ctx, entity.HolderTypeUser, userID).
			Return([]*entity.Account{account}, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(4)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		result, err := newService(uow).AdminAdjust(ctx, usecase.AdminAdjustRequest{
			AdminID: adminID, UserID: userID, Amount: "-4.500", Reason: "fine",
		})

		assert.NoError(t, err)
		assert.Equal(t, "5.500", result.NewBalance)
		assert.Equal(t, uint64(4), *entry.FromAccountID)
		assert.Nil(t, entry.ToAccountID)
		assert.Equal(t, "4.500", entry.Amount.StringFixed(3))
	})

	t.Run("never drives a balance negative", func(t *testing.T) {
		account := personalAccount(4, "acc-uuid", userID, "10.000")

		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts}

		mockUsers.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockAccounts.On("GetByHolder", ctx, entity.HolderTypeUser, userID).
			Return([]*entity.Account{account}, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(4)).Return(account, nil)

		_, err := newService(uow).AdminAdjust(ctx, usecase.AdminAdjustRequest{
			AdminID: adminID, UserID: userID, Amount: "-10.001", Reason: "fine",
		})

		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, "10.000", account.Balance.StringFixed(3))
		assert.Equal(t, 1, uow.Rollbacks)
	})

	t.Run("narrows the target by account uuid", func(t *testing.T) {
		first := personalAccount(4, "first-uuid", userID, "10.000")
		second := personalAccount(5, "second-uuid", userID, "0.000")

		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts, Ledger: mockLedger}

		mockUsers.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockAccounts.On("GetByHolder", ctx, entity.HolderTypeUser, userID).
			Return([]*entity.Account{first, second}, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(5)).Return(second, nil)
		mockAccounts.On("Update", ctx, second).Return(nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		_, err := newService(uow).AdminAdjust(ctx, usecase.AdminAdjustRequest{
			AdminID: adminID, UserID: userID, AccountUUID: "second-uuid", Amount: "3.000", Reason: "bonus",
		})

		assert.NoError(t, err)
		assert.Equal(t, "3.000", second.Balance.StringFixed(3))
		assert.Equal(t, "10.000", first.Balance.StringFixed(3))
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		uow := &mockspersistence.FakeUnitOfWork{}
		_, err := newService(uow).AdminAdjust(ctx, usecase.AdminAdjustRequest{
			AdminID: adminID, UserID: userID, Amount: "0", Reason: "noop",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Equal(t, 0, uow.Begins)
	})

	t.Run("unknown user fails before touching accounts", func(t *testing.T) {
		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts}

		mockUsers.On("GetByID", ctx, userID).Return(nil, errs.ErrUserNotFound)

		_, err := newService(uow).AdminAdjust(ctx, usecase.AdminAdjustRequest{
			AdminID: adminID, UserID: userID, Amount: "5.000", Reason: "bonus",
		})

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		mockAccounts.AssertNotCalled(t, "GetByHolder", mock.Anything, mock.Anything, mock.Anything)
	})
}
