package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUoW_TypeSafeMethods(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	userRepo, err := uow.UserRepository()
	require.NoError(t, err)
	assert.IsType(t, &userRepository{}, userRepo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		accountRepo, err := txUow.AccountRepository()
		require.NoError(t, err)
		assert.IsType(t, &accountRepository{}, accountRepo)

		bankRepo, err := txUow.BankRepository()
		require.NoError(t, err)
		assert.IsType(t, &bankRepository{}, bankRepo)

		loanRepo, err := txUow.LoanRepository()
		require.NoError(t, err)
		assert.IsType(t, &loanRepository{}, loanRepo)

		inner, ok := txUow.(*UoW)
		require.True(t, ok)
		assert.NotNil(t, inner.tx)
		return nil
	})
	assert.NoError(t, err)
}

func TestUoW_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
