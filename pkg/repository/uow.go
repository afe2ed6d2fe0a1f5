// Package repository defines persistence contracts the services depend on.
package repository

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/repository/account"
	"github.com/amirasaad/backoffice/pkg/repository/bank"
	"github.com/amirasaad/backoffice/pkg/repository/loan"
	"github.com/amirasaad/backoffice/pkg/repository/user"
)

// UnitOfWork provides a transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (user.Repository, error)
	BankRepository() (bank.Repository, error)
	AccountRepository() (account.Repository, error)
	LoanRepository() (loan.Repository, error)
}
