package repository

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/repository/account"
	"github.com/amirasaad/backoffice/pkg/repository/bank"
	"github.com/amirasaad/backoffice/pkg/repository/loan"
	"github.com/amirasaad/backoffice/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do are bound to the transaction session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction. A returned error or panic rolls back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) UserRepository() (user.Repository, error) {
	return NewUserRepository(u.session()), nil
}

func (u *UoW) BankRepository() (bank.Repository, error) {
	return NewBankRepository(u.session()), nil
}

func (u *UoW) AccountRepository() (account.Repository, error) {
	return NewAccountRepository(u.session()), nil
}

func (u *UoW) LoanRepository() (loan.Repository, error) {
	return NewLoanRepository(u.session()), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
