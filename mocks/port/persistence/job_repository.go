package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// MockJobRepository is a mock implementation of the JobRepository port
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) GetHighestPaidForUser(ctx context.Context, userID uint64) (*entity.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Job), args.Error(1)
}

func (m *MockJobRepository) ListForUser(ctx context.Context, userID uint64) ([]*entity.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Job), args.Error(1)
}

func (m *MockJobRepository) Create(ctx context.Context, job *entity.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) Assign(ctx context.Context, userID uint64, jobID uint64) error {
	args := m.Called(ctx, userID, jobID)
	return args.Error(0)
}

func (m *MockJobRepository) Unassign(ctx context.Context, userID uint64, jobID uint64) error {
	args := m.Called(ctx, userID, jobID)
	return args.Error(0)
}
