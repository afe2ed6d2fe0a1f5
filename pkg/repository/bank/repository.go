package bank

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/google/uuid"
)

// Repository persists banks, memberships and tellers.
type Repository interface {
	Create(ctx context.Context, b *bank.Bank) error
	Get(ctx context.Context, id uuid.UUID) (*bank.Bank, error)
	// List returns banks whose name contains nameFilter; empty matches all.
	List(ctx context.Context, nameFilter string) ([]*bank.Bank, error)
	Update(ctx context.Context, b *bank.Bank) error

	AddMember(ctx context.Context, m *bank.Membership) error
	// RemoveMember returns bank.ErrNotMember when no row was removed.
	RemoveMember(ctx context.Context, bankID uuid.UUID, userID int64) error
	ListMembers(ctx context.Context, bankID uuid.UUID) ([]*user.User, error)

	AddTeller(ctx context.Context, t *bank.Teller) error
	// GetTellerByUser returns domain.ErrNotFound when userID is not a teller.
	GetTellerByUser(ctx context.Context, userID int64) (*bank.Teller, error)
	ListTellers(ctx context.Context, bankID uuid.UUID) ([]*user.User, error)
}
