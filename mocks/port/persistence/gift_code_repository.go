package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// MockGiftCodeRepository is a mock implementation of the GiftCodeRepository port
type MockGiftCodeRepository struct {
	mock.Mock
}

func (m *MockGiftCodeRepository) Create(ctx context.Context, code *entity.GiftCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockGiftCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entity.GiftCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GiftCode), args.Error(1)
}

func (m *MockGiftCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockGiftCodeRepository) Update(ctx context.Context, code *entity.GiftCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
