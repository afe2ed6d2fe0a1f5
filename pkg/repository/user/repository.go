package user

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/user"
)

// Repository persists users.
type Repository interface {
	// Create inserts u and sets its ID.
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	// GetByIdentity looks a user up by email or phone number.
	GetByIdentity(ctx context.Context, identity string) (*user.User, error)
	List(ctx context.Context, offset, limit int) ([]*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	// IncrementAccounts bumps the accounts_number counter by one.
	IncrementAccounts(ctx context.Context, id int64) error
}
