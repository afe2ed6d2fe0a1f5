// Package bank manages banks, their customers and their tellers.
package bank

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/role"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/service/authz"
	"github.com/google/uuid"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Summary is a bank together with the loan types it offers.
type Summary struct {
	bank.Bank
	LoanTypes []*loan.Type `json:"loan_types"`
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Location *string
}

// Create adds a bank. Superuser only.
func (s *Service) Create(ctx context.Context, callerID int64, name, location string) (*bank.Bank, error) {
	log := s.logger.With("context", "CreateBank", "name", name)
	b, err := bank.New(name, location)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Superuser); err != nil {
			return err
		}
		repo, err := uow.BankRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, b)
	})
	if err != nil {
		log.Error("Create bank failed", "error", err)
		return nil, err
	}
	log.Info("Bank created", "bankID", b.ID)
	return b, nil
}

// List returns every bank whose name contains nameFilter, with loan types.
func (s *Service) List(ctx context.Context, nameFilter string) (out []*Summary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		bs, err := banks.List(ctx, strings.TrimSpace(nameFilter))
		if err != nil {
			return err
		}
		out = make([]*Summary, 0, len(bs))
		for _, b := range bs {
			types, err := loans.ListTypes(ctx, b.ID)
			if err != nil {
				return err
			}
			out = append(out, &Summary{Bank: *b, LoanTypes: types})
		}
		return nil
	})
	return
}

// Get returns one bank with its loan types.
func (s *Service) Get(ctx context.Context, bankID uuid.UUID) (out *Summary, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		b, err := banks.Get(ctx, bankID)
		if err != nil {
			return err
		}
		types, err := loans.ListTypes(ctx, b.ID)
		if err != nil {
			return err
		}
		out = &Summary{Bank: *b, LoanTypes: types}
		return nil
	})
	if err != nil {
		out = nil
	}
	return
}

// Update renames or relocates a bank. Superuser only.
func (s *Service) Update(ctx context.Context, callerID int64, bankID uuid.UUID, in UpdateInput) (b *bank.Bank, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Superuser); err != nil {
			return err
		}
		repo, err := uow.BankRepository()
		if err != nil {
			return err
		}
		b, err = repo.Get(ctx, bankID)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err := bank.ValidateName(name); err != nil {
				return err
			}
			b.Name = name
		}
		if in.Location != nil {
			b.Location = strings.TrimSpace(*in.Location)
		}
		return repo.Update(ctx, b)
	})
	if err != nil {
		s.logger.Error("Update bank failed", "bankID", bankID, "error", err)
		return nil, err
	}
	return b, nil
}

// AddUser registers an active user as a customer of the bank. Superuser only.
func (s *Service) AddUser(ctx context.Context, callerID int64, bankID uuid.UUID, userID int64) (u *user.User, err error) {
	log := s.logger.With("context", "AddUser", "bankID", bankID, "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Superuser); err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		if _, err := banks.Get(ctx, bankID); err != nil {
			return err
		}
		u, err = users.Get(ctx, userID)
		if err != nil {
			return err
		}
		if !u.IsActive {
			return user.ErrUserInactive
		}
		return banks.AddMember(ctx, &bank.Membership{UserID: userID, BankID: bankID})
	})
	if err != nil {
		log.Error("Add user to bank failed", "error", err)
		return nil, err
	}
	log.Info("User added to bank")
	return u, nil
}

// RemoveUser drops a customer from the bank. Superuser only.
func (s *Service) RemoveUser(ctx context.Context, callerID int64, bankID uuid.UUID, userID int64) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Superuser); err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		return banks.RemoveMember(ctx, bankID, userID)
	})
	if err != nil {
		s.logger.Error("Remove user from bank failed", "bankID", bankID, "userID", userID, "error", err)
		return err
	}
	s.logger.Info("User removed from bank", "bankID", bankID, "userID", userID)
	return nil
}

// ListUsers returns the customers of a bank. Tellers of the bank and up.
func (s *Service) ListUsers(ctx context.Context, callerID int64, bankID uuid.UUID) (us []*user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Teller); err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		us, err = banks.ListMembers(ctx, bankID)
		return err
	})
	return
}

// AddTeller makes a user a teller of the bank. Superuser only.
func (s *Service) AddTeller(ctx context.Context, callerID int64, bankID uuid.UUID, userID int64) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Superuser); err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		if _, err := banks.Get(ctx, bankID); err != nil {
			return err
		}
		u, err = users.Get(ctx, userID)
		if err != nil {
			return err
		}
		return banks.AddTeller(ctx, &bank.Teller{UserID: userID, BankID: bankID})
	})
	if err != nil {
		s.logger.Error("Add teller failed", "bankID", bankID, "userID", userID, "error", err)
		return nil, err
	}
	s.logger.Info("Teller added", "bankID", bankID, "userID", userID)
	return u, nil
}

// ListTellers returns the tellers of a bank. Tellers of the bank and up.
func (s *Service) ListTellers(ctx context.Context, callerID int64, bankID uuid.UUID) (us []*user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Teller); err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		us, err = banks.ListTellers(ctx, bankID)
		return err
	})
	return
}
