package account

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/google/uuid"
)

// Repository persists accounts and their ledger records.
type Repository interface {
	// Create inserts a and sets its ID.
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id int64) (*account.Account, error)
	// GetForUpdate reads the row with a lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*account.Account, error)
	// UpdateMoney writes the balance of a.
	UpdateMoney(ctx context.Context, a *account.Account) error
	ListByBank(ctx context.Context, bankID uuid.UUID) ([]*account.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]*account.Account, error)

	CreateDeposit(ctx context.Context, d *account.Deposit) error
	ListDeposits(ctx context.Context, accountID int64) ([]*account.Deposit, error)
	CreateWithdraw(ctx context.Context, w *account.Withdraw) error
	ListWithdraws(ctx context.Context, accountID int64) ([]*account.Withdraw, error)
}
