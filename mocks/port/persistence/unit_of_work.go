package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
)

// MockUnitOfWork is a mock implementation of the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.AccountRepository)
}

func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.TransactionRepository)
}

func (m *MockUnitOfWork) GetGiftCodeRepository(ctx context.Context) persistence.GiftCodeRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.GiftCodeRepository)
}

func (m *MockUnitOfWork) GetPaymentTokenRepository(ctx context.Context) persistence.PaymentTokenRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.PaymentTokenRepository)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.UserRepository)
}

func (m *MockUnitOfWork) GetJobRepository(ctx context.Context) persistence.JobRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.JobRepository)
}

// FakeUnitOfWork is a lightweight stand-in that hands out fixed
// repositories and counts transaction boundaries. Usecase tests assert on
// Commits/Rollbacks instead of wiring mock expectations for every getter.
type FakeUnitOfWork struct {
	Accounts  persistence.AccountRepository
	Ledger    persistence.TransactionRepository
	GiftCodes persistence.GiftCodeRepository
	Tokens    persistence.PaymentTokenRepository
	Users     persistence.UserRepository
	Jobs      persistence.JobRepository

	Begins    int
	Commits   int
	Rollbacks int

	BeginErr  error
	CommitErr error
}

func (f *FakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if f.BeginErr != nil {
		return nil, f.BeginErr
	}
	f.Begins++
	return ctx, nil
}

func (f *FakeUnitOfWork) Commit(ctx context.Context) error {
	if f.CommitErr != nil {
		return f.CommitErr
	}
	f.Commits++
	return nil
}

func (f *FakeUnitOfWork) Rollback(ctx context.Context) error {
	f.Rollbacks++
	return nil
}

func (f *FakeUnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return f.Accounts
}

func (f *FakeUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return f.Ledger
}

func (f *FakeUnitOfWork) GetGiftCodeRepository(ctx context.Context) persistence.GiftCodeRepository {
	return f.GiftCodes
}

func (f *FakeUnitOfWork) GetPaymentTokenRepository(ctx context.Context) persistence.PaymentTokenRepository {
	return f.Tokens
}

func (f *FakeUnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return f.Users
}

func (f *FakeUnitOfWork) GetJobRepository(ctx context.Context) persistence.JobRepository {
	return f.Jobs
}
