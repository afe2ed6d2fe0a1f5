package mocks

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	repo "github.com/amirasaad/backoffice/pkg/repository/bank"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBankRepository is a mock of bank.Repository.
type MockBankRepository struct {
	mock.Mock
}

func NewMockBankRepository(t TestingT) *MockBankRepository {
	m := &MockBankRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBankRepository) Create(ctx context.Context, b *bank.Bank) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBankRepository) Get(ctx context.Context, id uuid.UUID) (*bank.Bank, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*bank.Bank)
	return b, args.Error(1)
}

func (m *MockBankRepository) List(ctx context.Context, nameFilter string) ([]*bank.Bank, error) {
	args := m.Called(ctx, nameFilter)
	bs, _ := args.Get(0).([]*bank.Bank)
	return bs, args.Error(1)
}

func (m *MockBankRepository) Update(ctx context.Context, b *bank.Bank) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBankRepository) AddMember(ctx context.Context, mb *bank.Membership) error {
	return m.Called(ctx, mb).Error(0)
}

func (m *MockBankRepository) RemoveMember(ctx context.Context, bankID uuid.UUID, userID int64) error {
	return m.Called(ctx, bankID, userID).Error(0)
}

func (m *MockBankRepository) ListMembers(ctx context.Context, bankID uuid.UUID) ([]*user.User, error) {
	args := m.Called(ctx, bankID)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

func (m *MockBankRepository) AddTeller(ctx context.Context, t *bank.Teller) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockBankRepository) GetTellerByUser(ctx context.Context, userID int64) (*bank.Teller, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*bank.Teller)
	return t, args.Error(1)
}

func (m *MockBankRepository) ListTellers(ctx context.Context, bankID uuid.UUID) ([]*user.User, error) {
	args := m.Called(ctx, bankID)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

var _ repo.Repository = (*MockBankRepository)(nil)
