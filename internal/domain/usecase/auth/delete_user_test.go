package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/logger"
	mockscore "github.com/MrEisbear/Silk/mocks/port/core"
	mockspersistence "github.com/MrEisbear/Silk/mocks/port/persistence"
)

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	adminID := uint64(1)
	userID := uint64(7)

	t.Run("bans the user and soft-deletes their accounts", func(t *testing.T) {
		// Arrange
		user := &entity.User{ID: userID, Username: "alice"}
		first := &entity.Account{ID: 2, UUID: "acc-2", HolderID: userID}
		second := &entity.Account{ID: 5, UUID: "acc-5", HolderID: userID}

		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts}

		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)
		mockUsers.On("Update", ctx, user).Return(nil)

		// Holder listing returns the accounts out of id order
		mockAccounts.On("GetByHolder", ctx, entity.HolderTypeUser, userID).
			Return([]*entity.Account{second, first}, nil)

		var lockOrder []uint64
		mockAccounts.On("GetForUpdate", ctx, first.ID).Return(first, nil).
			Run(func(args mock.Arguments) { lockOrder = append(lockOrder, first.ID) })
		mockAccounts.On("GetForUpdate", ctx, second.ID).Return(second, nil).
			Run(func(args mock.Arguments) { lockOrder = append(lockOrder, second.ID) })
		mockAccounts.On("Update", ctx, first).Return(nil)
		mockAccounts.On("Update", ctx, second).Return(nil)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testAuthConfig())

		// Act
		err := service.DeleteUser(ctx, adminID, userID)

		// Assert
		assert.NoError(t, err)
		assert.True(t, user.IsBanned)
		assert.True(t, first.IsDeleted)
		assert.True(t, second.IsDeleted)
		assert.Equal(t, []uint64{2, 5}, lockOrder)
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("admins cannot delete themselves", func(t *testing.T) {
		mockUsers := new(mockspersistence.MockUserRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers}

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testAuthConfig())

		err := service.DeleteUser(ctx, adminID, adminID)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Equal(t, 0, uow.Begins)
	})

	t.Run("rolls back for an unknown user", func(t *testing.T) {
		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts}

		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(nil, errs.ErrUserNotFound)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testAuthConfig())

		err := service.DeleteUser(ctx, adminID, userID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Equal(t, 1, uow.Rollbacks)
		mockAccounts.AssertNotCalled(t, "GetByHolder")
	})

	t.Run("rolls back when an account update fails", func(t *testing.T) {
		user := &entity.User{ID: userID}
		account := &entity.Account{ID: 3, UUID: "acc-3", HolderID: userID}

		mockUsers := new(mockspersistence.MockUserRepository)
		mockAccounts := new(mockspersistence.MockAccountRepository)
		uow := &mockspersistence.FakeUnitOfWork{Users: mockUsers, Accounts: mockAccounts}

		mockUsers.On("GetByIDForUpdate", ctx, userID).Return(user, nil)
		mockUsers.On("Update", ctx, user).Return(nil)
		mockAccounts.On("GetByHolder", ctx, entity.HolderTypeUser, userID).
			Return([]*entity.Account{account}, nil)
		mockAccounts.On("GetForUpdate", ctx, account.ID).Return(account, nil)
		mockAccounts.On("Update", ctx, account).Return(errs.ErrDatabaseConnection)

		service := NewService(uow, new(mockscore.MockTimeProvider), logger.NewNoopLogger(), testAuthConfig())

		err := service.DeleteUser(ctx, adminID, userID)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, 1, uow.Rollbacks)
		assert.Equal(t, 0, uow.Commits)
	})
}
