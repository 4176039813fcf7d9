package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/logger"
	mockscore "github.com/MrEisbear/Silk/mocks/port/core"
	mockspersistence "github.com/MrEisbear/Silk/mocks/port/persistence"
)

func testConfig() Config {
	return Config{
		TaxRates:           map[string]decimal.Decimal{"1": decimal.RequireFromString("0.30")},
		TaxSinkAccountUUID: "sink-uuid",
		SalaryCooldown:     24 * time.Hour,
	}
}

func personalAccount(id uint64, uuid string, owner uint64, balance string) *entity.Account {
	return &entity.Account{
		ID:         id,
		UUID:       uuid,
		HolderType: entity.HolderTypeUser,
		HolderID:   owner,
		Balance:    decimal.RequireFromString(balance),
	}
}

func TestService_Transfer(t *testing.T) {
	ctx := context.Background()
	actorID := uint64(7)

	t.Run("conserves the sum of both balances", func(t *testing.T) {
		// Arrange
		from := personalAccount(1, "from-uuid", actorID, "100.000")
		to := personalAccount(2, "to-uuid", actorID, "50.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, Ledger: mockLedger}

		mockAccounts.On("GetByUUID", ctx, "from-uuid").Return(from, nil)
		mockAccounts.On("GetByUUID", ctx, "to-uuid").Return(to, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(from, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(to, nil)
		mockAccounts.On("Update", ctx, from).Return(nil)
		mockAccounts.On("Update", ctx, to).Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		result, err := service.Transfer(ctx, usecase.TransferRequest{
			ActorID: actorID, FromUUID: "from-uuid", ToUUID: "to-uuid", Amount: "30.000",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "70.000", from.Balance.StringFixed(3))
		assert.Equal(t, "80.000", to.Balance.StringFixed(3))
		assert.Equal(t, "150.000", from.Balance.Add(to.Balance).StringFixed(3))
		assert.Equal(t, "70.000", result.NewBalance)

		assert.NotNil(t, entry)
		assert.Equal(t, entity.TransactionTypeTransfer, entry.TransactionType)
		assert.Equal(t, uint64(1), *entry.FromAccountID)
		assert.Equal(t, uint64(2), *entry.ToAccountID)
		assert.True(t, entry.Amount.Equal(decimal.RequireFromString("30.000")))

		assert.Equal(t, 1, uow.Commits)
		assert.Equal(t, 0, uow.Rollbacks)
		mockAccounts.AssertExpectations(t)
		mockLedger.AssertExpectations(t)
	})

	t.Run("insufficient funds rolls back without touching balances", func(t *testing.T) {
		// Arrange
		from := personalAccount(1, "from-uuid", actorID, "10.000")
		to := personalAccount(2, "to-uuid", actorID, "50.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts}

		mockAccounts.On("GetByUUID", ctx, "from-uuid").Return(from, nil)
		mockAccounts.On("GetByUUID", ctx, "to-uuid").Return(to, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(from, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(to, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		result, err := service.Transfer(ctx, usecase.TransferRequest{
			ActorID: actorID, FromUUID: "from-uuid", ToUUID: "to-uuid", Amount: "30.000",
		})

		// Assert
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, "10.000", from.Balance.StringFixed(3))
		assert.Equal(t, "50.000", to.Balance.StringFixed(3))
		assert.Equal(t, 0, uow.Commits)
		assert.Equal(t, 1, uow.Rollbacks)
		mockAccounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects accounts the actor does not own", func(t *testing.T) {
		// Arrange
		from := personalAccount(1, "from-uuid", actorID, "100.000")
		foreign := personalAccount(2, "to-uuid", 99, "50.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts}
		mockAccounts.On("GetByUUID", ctx, "from-uuid").Return(from, nil)
		mockAccounts.On("GetByUUID", ctx, "to-uuid").Return(foreign, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		_, err := service.Transfer(ctx, usecase.TransferRequest{
			ActorID: actorID, FromUUID: "from-uuid", ToUUID: "to-uuid", Amount: "30.000",
		})

		// Assert
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, 1, uow.Rollbacks)
		mockAccounts.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("rejects a frozen destination", func(t *testing.T) {
		// Arrange
		from := personalAccount(1, "from-uuid", actorID, "100.000")
		to := personalAccount(2, "to-uuid", actorID, "50.000")
		to.IsFrozen = true

		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts}
		mockAccounts.On("GetByUUID", ctx, "from-uuid").Return(from, nil)
		mockAccounts.On("GetByUUID", ctx, "to-uuid").Return(to, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(from, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(to, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		_, err := service.Transfer(ctx, usecase.TransferRequest{
			ActorID: actorID, FromUUID: "from-uuid", ToUUID: "to-uuid", Amount: "30.000",
		})

		// Assert
		assert.ErrorIs(t, err, errs.ErrAccountFrozen)
		assert.Equal(t, "100.000", from.Balance.StringFixed(3))
	})

	t.Run("rejects a self transfer before opening a transaction", func(t *testing.T) {
		uow := &mockspersistence.FakeUnitOfWork{}
		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		_, err := service.Transfer(ctx, usecase.TransferRequest{
			ActorID: actorID, FromUUID: "same-uuid", ToUUID: "same-uuid", Amount: "30.000",
		})

		assert.ErrorIs(t, err, errs.ErrSelfTransfer)
		assert.Equal(t, 0, uow.Begins)
	})

	t.Run("rejects an invalid amount before opening a transaction", func(t *testing.T) {
		uow := &mockspersistence.FakeUnitOfWork{}
		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		for _, amount := range []string{"0", "-1", "1.0001", "abc"} {
			_, err := service.Transfer(ctx, usecase.TransferRequest{
				ActorID: actorID, FromUUID: "from-uuid", ToUUID: "to-uuid", Amount: amount,
			})
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "amount %q", amount)
		}
		assert.Equal(t, 0, uow.Begins)
	})
}

func TestLockAccounts_AscendingOrder(t *testing.T) {
	ctx := context.Background()
	high := personalAccount(9, "high-uuid", 1, "0.000")
	low := personalAccount(3, "low-uuid", 1, "0.000")

	mockAccounts := new(mockspersistence.MockAccountRepository)
	var order []uint64
	mockAccounts.On("GetForUpdate", ctx, mock.AnythingOfType("uint64")).
		Run(func(args mock.Arguments) { order = append(order, args.Get(1).(uint64)) }).
		Return(low, nil)

	// Request in descending order; locks must still be taken ascending
	locked, err := lockAccounts(ctx, mockAccounts, high.ID, low.ID, high.ID)

	assert.NoError(t, err)
	assert.Len(t, locked, 2)
	assert.Equal(t, []uint64{3, 9}, order)
}
