package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/entity"
)

// MockPaymentTokenRepository is a mock implementation of the PaymentTokenRepository port
type MockPaymentTokenRepository struct {
	mock.Mock
}

func (m *MockPaymentTokenRepository) Create(ctx context.Context, token *entity.PaymentToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockPaymentTokenRepository) GetByToken(ctx context.Context, token string) (*entity.PaymentToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentToken), args.Error(1)
}

func (m *MockPaymentTokenRepository) GetByTokenForUpdate(ctx context.Context, token string) (*entity.PaymentToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentToken), args.Error(1)
}

func (m *MockPaymentTokenRepository) Update(ctx context.Context, token *entity.PaymentToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
