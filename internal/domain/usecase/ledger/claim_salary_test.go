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
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/logger"
	mockscore "github.com/MrEisbear/Silk/mocks/port/core"
	mockspersistence "github.com/MrEisbear/Silk/mocks/port/persistence"
)

func TestService_ClaimSalary(t *testing.T) {
	ctx := context.Background()
	userID := uint64(7)
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	minerJob := &entity.Job{
		ID:          2,
		JobName:     "Miner",
		Department:  "Industry",
		DailyAmount: decimal.RequireFromString("120.000"),
	}

	t.Run("credits the best job and starts the cooldown", func(t *testing.T) {
		// Arrange
		user := &entity.User{ID: userID}
		account := personalAccount(4, "acc-uuid", userID, "10.000")

		mockUsers := new(mockspersistence.MockUserRepository)
		mockJobs := new(mockspersistence.MockJobRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{
			Users: mockUsers, Jobs: mockJobs, Accounts: mockAccounts, Ledger: mockLedger,
		}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)
		mockUsers.On("Update", ctx, user).Return(nil)
		mockJobs.On("GetHighestPaidForUser", ctx, userID).Return(minerJob, nil)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(4)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)

		var entry *entity.Transaction
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { entry = args.Get(1).(*entity.Transaction) }).
			Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testConfig())

		// Act
		result, err := service.ClaimSalary(ctx, userID, "acc-uuid")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "130.000", account.Balance.StringFixed(3))
		assert.Equal(t, "Miner", result.JobName)
		assert.Equal(t, fixedTime.Add(24*time.Hour), result.NextClaimAt)
		assert.Equal(t, fixedTime, *user.LastSalaryClaim)
		assert.Equal(t, entity.TransactionTypeSalary, entry.TransactionType)
		assert.Equal(t, uint64(4), *entry.ToAccountID)
		assert.Nil(t, entry.FromAccountID)
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("a second claim inside the window fails with the expiry instant", func(t *testing.T) {
		lastClaim := fixedTime.Add(-time.Second)
		user := &entity.User{ID: userID, LastSalaryClaim: &lastClaim}

		mockUsers := new(mockspersistence.MockUserRepository)
		mockJobs := new(mockspersistence.MockJobRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Jobs: mockJobs}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testConfig())

		result, err := service.ClaimSalary(ctx, userID, "acc-uuid")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrCooldownActive)
		assert.Contains(t, err.Error(), lastClaim.Add(24*time.Hour).UTC().Format(time.RFC3339))
		assert.Equal(t, 1, uow.Rollbacks)
		mockJobs.AssertNotCalled(t, "GetHighestPaidForUser", mock.Anything, mock.Anything)
	})

	t.Run("a claim just past the window succeeds", func(t *testing.T) {
		lastClaim := fixedTime.Add(-24*time.Hour - time.Second)
		user := &entity.User{ID: userID, LastSalaryClaim: &lastClaim}
		account := personalAccount(4, "acc-uuid", userID, "0.000")

		mockUsers := new(mockspersistence.MockUserRepository)
		mockJobs := new(mockspersistence.MockJobRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockLedger := new(mockspersistence.MockTransactionRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{
			Users: mockUsers, Jobs: mockJobs, Accounts: mockAccounts, Ledger: mockLedger,
		}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)
		mockUsers.On("Update", ctx, user).Return(nil)
		mockJobs.On("GetHighestPaidForUser", ctx, userID).Return(minerJob, nil)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(account, nil)
		mockAccounts.On("GetForUpdate", ctx, uint64(4)).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(nil)
		mockLedger.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testConfig())

		_, err := service.ClaimSalary(ctx, userID, "acc-uuid")
		assert.NoError(t, err)
		assert.Equal(t, fixedTime, *user.LastSalaryClaim)
	})

	t.Run("fails when the user has no job", func(t *testing.T) {
		user := &entity.User{ID: userID}

		mockUsers := new(mockspersistence.MockUserRepository)
		mockJobs := new(mockspersistence.MockJobRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Jobs: mockJobs}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)
		mockJobs.On("GetHighestPaidForUser", ctx, userID).Return(nil, errs.ErrNoJob)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testConfig())

		_, err := service.ClaimSalary(ctx, userID, "acc-uuid")
		assert.ErrorIs(t, err, errs.ErrNoJob)
		assert.Nil(t, user.LastSalaryClaim)
	})

	t.Run("rejects an account owned by someone else", func(t *testing.T) {
		user := &entity.User{ID: userID}
		foreign := personalAccount(4, "acc-uuid", 99, "0.000")

		mockUsers := new(mockspersistence.MockUserRepository)
		mockJobs := new(mockspersistence.MockJobRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Jobs: mockJobs, Accounts: mockAccounts}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)
		mockJobs.On("GetHighestPaidForUser", ctx, userID).Return(minerJob, nil)
		mockAccounts.On("GetByUUID", ctx, "acc-uuid").Return(foreign, nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testConfig())

		_, err := service.ClaimSalary(ctx, userID, "acc-uuid")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("banned users cannot claim", func(t *testing.T) {
		user := &entity.User{ID: userID, IsBanned: true}

		mockUsers := new(mockspersistence.MockUserRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers}
		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testConfig())

		_, err := service.ClaimSalary(ctx, userID, "acc-uuid")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})
}
