package loan

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/google/uuid"
)

// Repository persists loan types, loans and compensations.
type Repository interface {
	CreateType(ctx context.Context, t *loan.Type) error
	GetType(ctx context.Context, id int64) (*loan.Type, error)
	ListTypes(ctx context.Context, bankID uuid.UUID) ([]*loan.Type, error)

	Create(ctx context.Context, l *loan.Loan) error
	Get(ctx context.Context, id int64) (*loan.Loan, error)
	// GetForUpdate reads the row with a lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*loan.Loan, error)
	Update(ctx context.Context, l *loan.Loan) error
	ListByAccount(ctx context.Context, accountID int64) ([]*loan.Loan, error)
	ListByUser(ctx context.Context, userID int64) ([]*loan.Loan, error)

	CreateCompensation(ctx context.Context, c *loan.Compensation) error
}
