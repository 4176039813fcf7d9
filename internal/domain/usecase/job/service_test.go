package job

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

func testJobConfig() Config {
	return Config{SalaryCooldown: 24 * time.Hour}
}

func minerJob(id uint64, daily string) *entity.Job {
	return &entity.Job{
		ID:          id,
		JobName:     "Miner",
		Department:  "Industry",
		ClassLevel:  1,
		DailyAmount: decimal.RequireFromString(daily),
	}
}

func TestService_CreateJob(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates a job definition", func(t *testing.T) {
		// Arrange
		mockJobs := new(mockspersistence.MockJobRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs}

		mockTime.On("Now").Return(fixedTime)
		mockJobs.On("Create", ctx, mock.AnythingOfType("*entity.Job")).Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		// Act
		job, err := service.CreateJob(ctx, usecase.CreateJobRequest{
			JobName:     "  Miner ",
			Department:  "Industry",
			ClassLevel:  1,
			DailyAmount: "120.000",
		})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Miner", job.JobName)
		assert.True(t, job.DailyAmount.Equal(decimal.RequireFromString("120.000")))
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("rejects invalid daily amounts", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs}
		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		for _, amount := range []string{"0", "-5", "12.3456", "abc"} {
			_, err := service.CreateJob(ctx, usecase.CreateJobRequest{
				JobName:     "Miner",
				DailyAmount: amount,
			})
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "amount %q", amount)
		}
		assert.Equal(t, 0, uow.Begins)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{}
		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		_, err := service.CreateJob(ctx, usecase.CreateJobRequest{
			JobName:     "   ",
			DailyAmount: "10.000",
		})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})
}

func TestService_Assign(t *testing.T) {
	ctx := context.Background()
	userID := uint64(7)
	jobID := uint64(3)

	t.Run("assigns a job to an existing user", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockUsers := new(mockspersistence.MockUserRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs, Users: mockUsers}

		mockUsers.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockJobs.On("Assign", ctx, userID, jobID).Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		err := service.Assign(ctx, userID, jobID)
		assert.NoError(t, err)
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("fails for an unknown user without touching assignments", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockUsers := new(mockspersistence.MockUserRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs, Users: mockUsers}

		mockUsers.On("GetByID", ctx, userID).Return(nil, errs.ErrUserNotFound)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		err := service.Assign(ctx, userID, jobID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		assert.Equal(t, 1, uow.Rollbacks)
		mockJobs.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("surfaces a duplicate assignment", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockUsers := new(mockspersistence.MockUserRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs, Users: mockUsers}

		mockUsers.On("GetByID", ctx, userID).Return(&entity.User{ID: userID}, nil)
		mockJobs.On("Assign", ctx, userID, jobID).Return(errs.ErrDuplicate)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		err := service.Assign(ctx, userID, jobID)
		assert.ErrorIs(t, err, errs.ErrDuplicate)
		assert.Equal(t, 1, uow.Rollbacks)
	})
}

func TestService_Unassign(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an assignment", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs}

		mockJobs.On("Unassign", ctx, uint64(7), uint64(3)).Return(nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		err := service.Unassign(ctx, 7, 3)
		assert.NoError(t, err)
		assert.Equal(t, 1, uow.Commits)
	})

	t.Run("surfaces a missing assignment", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs}

		mockJobs.On("Unassign", ctx, uint64(7), uint64(3)).Return(errs.ErrNotFound)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		err := service.Unassign(ctx, 7, 3)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.Equal(t, 1, uow.Rollbacks)
	})
}

func TestService_Summary(t *testing.T) {
	ctx := context.Background()
	actorID := uint64(7)
	fixedTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("reports the best job and an open claim window", func(t *testing.T) {
		lastClaim := fixedTime.Add(-48 * time.Hour)
		user := &entity.User{ID: actorID, LastSalaryClaim: &lastClaim}
		jobs := []*entity.Job{minerJob(3, "120.000"), minerJob(4, "90.000")}

		mockJobs := new(mockspersistence.MockJobRepository)
		mockUsers := new(mockspersistence.MockUserRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs, Users: mockUsers}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByID", ctx, actorID).Return(user, nil)
		mockJobs.On("ListForUser", ctx, actorID).Return(jobs, nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		summary, err := service.Summary(ctx, actorID)
		assert.NoError(t, err)
		assert.Len(t, summary.Jobs, 2)
		assert.Same(t, jobs[0], summary.BestJob)
		assert.True(t, summary.CanClaim)
		assert.Equal(t, lastClaim.Add(24*time.Hour), summary.NextClaimAt)
	})

	t.Run("reports a closed window inside the cooldown", func(t *testing.T) {
		lastClaim := fixedTime.Add(-1 * time.Hour)
		user := &entity.User{ID: actorID, LastSalaryClaim: &lastClaim}

		mockJobs := new(mockspersistence.MockJobRepository)
		mockUsers := new(mockspersistence.MockUserRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs, Users: mockUsers}

		mockTime.On("Now").Return(fixedTime)
		mockUsers.On("GetByID", ctx, actorID).Return(user, nil)
		mockJobs.On("ListForUser", ctx, actorID).Return([]*entity.Job{minerJob(3, "120.000")}, nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		summary, err := service.Summary(ctx, actorID)
		assert.NoError(t, err)
		assert.False(t, summary.CanClaim)
		assert.Equal(t, lastClaim.Add(24*time.Hour), summary.NextClaimAt)
	})

	t.Run("returns an empty summary for a user without jobs", func(t *testing.T) {
		mockJobs := new(mockspersistence.MockJobRepository)
		mockUsers := new(mockspersistence.MockUserRepository)
		mockTime := new(mockscore.MockTimeProvider)
		uow := &mockspersistence.FakeUnitOfWork{Jobs: mockJobs, Users: mockUsers}

		mockUsers.On("GetByID", ctx, actorID).Return(&entity.User{ID: actorID}, nil)
		mockJobs.On("ListForUser", ctx, actorID).Return([]*entity.Job{}, nil)

		service := NewService(uow, mockTime, logger.NewNoopLogger(), testJobConfig())

		summary, err := service.Summary(ctx, actorID)
		assert.NoError(t, err)
		assert.Empty(t, summary.Jobs)
		assert.Nil(t, summary.BestJob)
		assert.False(t, summary.CanClaim)
		assert.True(t, summary.NextClaimAt.IsZero())
	})
}
