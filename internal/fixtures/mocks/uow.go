// Package mocks provides testify mocks for the repository contracts.
package mocks

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/repository/account"
	"github.com/amirasaad/backoffice/pkg/repository/bank"
	"github.com/amirasaad/backoffice/pkg/repository/loan"
	"github.com/amirasaad/backoffice/pkg/repository/user"
	"github.com/stretchr/testify/mock"
)

// TestingT is the subset of *testing.T the constructors need.
type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

// DoFunc is the signature of UnitOfWork.Do; returning one from a Do
// expectation makes the mock run it.
type DoFunc func(ctx context.Context, fn func(repository.UnitOfWork) error) error

// PassThrough runs the transaction body against uow, as a committed
// transaction would.
func PassThrough(uow repository.UnitOfWork) DoFunc {
	return func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
		return fn(uow)
	}
}

// MockUnitOfWork is a mock of repository.UnitOfWork.
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a mock and asserts its expectations on cleanup.
func NewMockUnitOfWork(t TestingT) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if rf, ok := args.Get(0).(DoFunc); ok {
		return rf(ctx, fn)
	}
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() (user.Repository, error) {
	args := m.Called()
	r, _ := args.Get(0).(user.Repository)
	return r, args.Error(1)
}

func (m *MockUnitOfWork) BankRepository() (bank.Repository, error) {
	args := m.Called()
	r, _ := args.Get(0).(bank.Repository)
	return r, args.Error(1)
}

func (m *MockUnitOfWork) AccountRepository() (account.Repository, error) {
	args := m.Called()
	r, _ := args.Get(0).(account.Repository)
	return r, args.Error(1)
}

func (m *MockUnitOfWork) LoanRepository() (loan.Repository, error) {
	args := m.Called()
	r, _ := args.Get(0).(loan.Repository)
	return r, args.Error(1)
}

var _ repository.UnitOfWork = (*MockUnitOfWork)(nil)
