package mocks

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	repo "github.com/amirasaad/backoffice/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock of account.Repository.
type MockAccountRepository struct {
	mock.Mock
}

func NewMockAccountRepository(t TestingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) UpdateMoney(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) ListByBank(ctx context.Context, bankID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, bankID)
	as, _ := args.Get(0).([]*account.Account)
	return as, args.Error(1)
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID int64) ([]*account.Account, error) {
	args := m.Called(ctx, userID)
	as, _ := args.Get(0).([]*account.Account)
	return as, args.Error(1)
}

func (m *MockAccountRepository) CreateDeposit(ctx context.Context, d *account.Deposit) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockAccountRepository) ListDeposits(ctx context.Context, accountID int64) ([]*account.Deposit, error) {
	args := m.Called(ctx, accountID)
	ds, _ := args.Get(0).([]*account.Deposit)
	return ds, args.Error(1)
}

func (m *MockAccountRepository) CreateWithdraw(ctx context.Context, w *account.Withdraw) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockAccountRepository) ListWithdraws(ctx context.Context, accountID int64) ([]*account.Withdraw, error) {
	args := m.Called(ctx, accountID)
	ws, _ := args.Get(0).([]*account.Withdraw)
	return ws, args.Error(1)
}

var _ repo.Repository = (*MockAccountRepository)(nil)
