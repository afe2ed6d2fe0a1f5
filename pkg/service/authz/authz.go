// Package authz resolves the effective role of a caller for a bank.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/role"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/google/uuid"
)

// Resolve loads the caller and computes their role for bankID. A nil bankID
// never yields Teller. An unknown caller is unauthorized.
func Resolve(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID int64,
	bankID uuid.UUID,
) (*user.User, role.Role, error) {
	users, err := uow.UserRepository()
	if err != nil {
		return nil, role.None, err
	}
	u, err := users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, role.None, user.ErrUserUnauthorized
		}
		return nil, role.None, err
	}
	subject := role.Subject{IsActive: u.IsActive, IsSuperuser: u.IsSuperuser}
	if bankID != uuid.Nil && u.IsActive && !u.IsSuperuser {
		banks, err := uow.BankRepository()
		if err != nil {
			return nil, role.None, err
		}
		teller, err := banks.GetTellerByUser(ctx, userID)
		switch {
		case err == nil:
			subject.IsTeller = teller.BankID == bankID
		case !errors.Is(err, domain.ErrNotFound):
			return nil, role.None, err
		}
	}
	return u, role.Resolve(subject), nil
}

// Require resolves the caller's role and fails unless it allows need.
func Require(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID int64,
	bankID uuid.UUID,
	need role.Role,
) (*user.User, error) {
	u, have, err := Resolve(ctx, uow, userID, bankID)
	if err != nil {
		return nil, err
	}
	if err := role.Require(have, need); err != nil {
		return nil, err
	}
	return u, nil
}

// ConcealMissing replaces a not-found err with the forbidden error a caller
// below need would get for an existing row. Only superusers see not-found.
// Other errors pass through.
func ConcealMissing(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID int64,
	need role.Role,
	err error,
) error {
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	_, have, rerr := Resolve(ctx, uow, userID, uuid.Nil)
	if rerr != nil {
		return rerr
	}
	if have.Allows(role.Superuser) {
		return err
	}
	return fmt.Errorf("%w: %s required", role.ErrInsufficientRole, need)
}
