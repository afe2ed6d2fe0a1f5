package mocks

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/user"
	repo "github.com/amirasaad/backoffice/pkg/repository/user"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of user.Repository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t TestingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByIdentity(ctx context.Context, identity string) (*user.User, error) {
	args := m.Called(ctx, identity)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*user.User, error) {
	args := m.Called(ctx, offset, limit)
	us, _ := args.Get(0).([]*user.User)
	return us, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) IncrementAccounts(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.Repository = (*MockUserRepository)(nil)
