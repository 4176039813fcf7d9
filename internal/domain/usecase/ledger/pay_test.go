package ledger

import (
	"context"
	"testing"

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

func TestService_Pay(t *testing.T) {
	ctx := context.Background()
	actorID := uint64(7)

	t.Run("routes 30 percent tax to the sink account", func(t *testing.T) {
		// Arrange
		sender := personalAccount(1, "a-uuid", actorID, "100.000")
		receiver := personalAccount(2, "b-uuid", 42, "0.000")
		sink := personalAccount(3, "sink-uuid", 1, "0.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, Ledger: mockLedger}

		mockAccounts.On("GetByUUID", ctx, "a-uuid").Return(sender, nil)
		mockAccounts.On("GetByUUID", ctx, "b-uuid").Return(receiver, nil)
		mockAccounts.On("GetByUUID", ctx, "sink-uuid").Return(sink, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(sender, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(receiver, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(3)).Return(sink, nil)
		mockAccounts.On("Update", ctx, mock.AnythingOfType("*entity.Account")).Return(nil)

		var entries []*entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entries = append(entries, args.Get(1).(*entity.Transaction)) }).
			Return(nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		result, err := service.Pay(ctx, usecase.PayRequest{
			ActorID: actorID, FromUUID: "a-uuid", ToUUID: "b-uuid",
			Amount: "40.000", Description: "market purchase", TaxCategory: "1",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "48.000", sender.Balance.StringFixed(3)) // 100 - 40 - 12
		assert.Equal(t, "40.000", receiver.Balance.StringFixed(3))
		assert.Equal(t, "12.000", sink.Balance.StringFixed(3))
		assert.Equal(t, "40.000", result.Amount)
		assert.Equal(t, "12.000", result.Tax)
		assert.NotEmpty(t, result.TransactionUUID)
		assert.NotEmpty(t, result.TaxUUID)

		// Exactly two rows, payment then tax, both positive amounts
		assert.Len(t, entries, 2)
		assert.Equal(t, entity.TransactionTypePayment, entries[0].TransactionType)
		assert.Equal(t, entity.TransactionTypeTax, entries[1].TransactionType)
		assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("40.000")))
		assert.True(t, entries[1].Amount.Equal(decimal.RequireFromString("12.000")))
		assert.Equal(t, uint64(3), *entries[1].ToAccountID)

		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("unknown tax category moves the amount only", func(t *testing.T) {
		// Arrange
		sender := personalAccount(1, "a-uuid", actorID, "100.000")
		receiver := personalAccount(2, "b-uuid", 42, "0.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, Ledger: mockLedger}

		mockAccounts.On("GetByUUID", ctx, "a-uuid").Return(sender, nil)
		mockAccounts.On("GetByUUID", ctx, "b-uuid").Return(receiver, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(sender, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(receiver, nil)
		mockAccounts.On("Update", ctx, mock.AnythingOfType("*entity.Account")).Return(nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil).Once()

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		result, err := service.Pay(ctx, usecase.PayRequest{
			ActorID: actorID, FromUUID: "a-uuid", ToUUID: "b-uuid", Amount: "40.000",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "60.000", sender.Balance.StringFixed(3))
		assert.Equal(t, "0.000", result.Tax)
		assert.Empty(t, result.TaxUUID)
		mockLedger.AssertExpectations(t)
	})

	t.Run("insufficient funds against amount plus tax", func(t *testing.T) {
		// Sender covers the amount but not the combined total
		sender := personalAccount(1, "a-uuid", actorID, "45.000")
		receiver := personalAccount(2, "b-uuid", 42, "0.000")
		sink := personalAccount(3, "sink-uuid", 1, "0.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts}

		mockAccounts.On("GetByUUID", ctx, "a-uuid").Return(sender, nil)
		mockAccounts.On("GetByUUID", ctx, "b-uuid").Return(receiver, nil)
		mockAccounts.On("GetByUUID", ctx, "sink-uuid").Return(sink, nil)
		mockAccounts.On("GetForUpdate", ctx, mock.AnythingOfType("uint64")).Return(sender, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		// Act
		_, err := service.Pay(ctx, usecase.PayRequest{
			ActorID: actorID, FromUUID: "a-uuid", ToUUID: "b-uuid",
			Amount: "40.000", TaxCategory: "1",
		})

		// Assert
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, 1, uow.Rollbacks)
		mockAccounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("payment to a foreign account needs no receiver ownership", func(t *testing.T) {
		sender := personalAccount(1, "a-uuid", actorID, "100.000")
		receiver := personalAccount(2, "b-uuid", 99, "0.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts, Ledger: mockLedger}

		mockAccounts.On("GetByUUID", ctx, "a-uuid").Return(sender, nil)
		mockAccounts.On("GetByUUID", ctx, "b-uuid").Return(receiver, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(1)).Return(sender, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(2)).Return(receiver, nil)
		mockAccounts.On("Update", ctx, mock.AnythingOfType("*entity.Account")).Return(nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		_, err := service.Pay(ctx, usecase.PayRequest{
			ActorID: actorID, FromUUID: "a-uuid", ToUUID: "b-uuid", Amount: "10.000",
		})
		assert.NoError(t, err)
	})

	t.Run("sender must be owned by the actor", func(t *testing.T) {
		sender := personalAccount(1, "a-uuid", 99, "100.000")

		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Accounts: mockAccounts}
		mockAccounts.On("GetByUUID", ctx, "a-uuid").Return(sender, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		_, err := service.Pay(ctx, usecase.PayRequest{
			ActorID: actorID, FromUUID: "a-uuid", ToUUID: "b-uuid", Amount: "10.000",
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}
