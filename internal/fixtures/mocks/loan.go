package mocks

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/loan"
	repo "github.com/amirasaad/backoffice/pkg/repository/loan"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLoanRepository is a mock of loan.Repository.
type MockLoanRepository struct {
	mock.Mock
}

func NewMockLoanRepository(t TestingT) *MockLoanRepository {
	m := &MockLoanRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoanRepository) CreateType(ctx context.Context, t *loan.Type) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockLoanRepository) GetType(ctx context.Context, id int64) (*loan.Type, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*loan.Type)
	return t, args.Error(1)
}

func (m *MockLoanRepository) ListTypes(ctx context.Context, bankID uuid.UUID) ([]*loan.Type, error) {
	args := m.Called(ctx, bankID)
	ts, _ := args.Get(0).([]*loan.Type)
	return ts, args.Error(1)
}

func (m *MockLoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) Get(ctx context.Context, id int64) (*loan.Loan, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanRepository) GetForUpdate(ctx context.Context, id int64) (*loan.Loan, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*loan.Loan)
	return l, args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLoanRepository) ListByAccount(ctx context.Context, accountID int64) ([]*loan.Loan, error) {
	args := m.Called(ctx, accountID)
	ls, _ := args.Get(0).([]*loan.Loan)
	return ls, args.Error(1)
}

func (m *MockLoanRepository) ListByUser(ctx context.Context, userID int64) ([]*loan.Loan, error) {
	args := m.Called(ctx, userID)
	ls, _ := args.Get(0).([]*loan.Loan)
	return ls, args.Error(1)
}

func (m *MockLoanRepository) CreateCompensation(ctx context.Context, c *loan.Compensation) error {
	return m.Called(ctx, c).Error(0)
}

var _ repo.Repository = (*MockLoanRepository)(nil)
