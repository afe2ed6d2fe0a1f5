// Package account provides the ledger use cases: opening accounts and moving
// money in and out of them. Every mutation runs in one unit of work with the
// account row locked.
package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/domain/role"
	"github.com/amirasaad/backoffice/pkg/eventbus"
	"github.com/amirasaad/backoffice/pkg/repository"
	"github.com/amirasaad/backoffice/pkg/service/authz"
	"github.com/google/uuid"
)

// Service provides account operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// Create opens an account for userID in bankID and bumps the user's account
// counter in the same transaction. Tellers of the bank and up.
func (s *Service) Create(
	ctx context.Context,
	callerID int64,
	bankID uuid.UUID,
	userID int64,
	money int64,
) (a *account.Account, err error) {
	log := s.logger.With("context", "CreateAccount", "bankID", bankID, "userID", userID)
	a, err = account.New().WithUserID(userID).WithBankID(bankID).WithMoney(money).Build()
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Teller); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, a); err != nil {
			return err
		}
		return users.IncrementAccounts(ctx, userID)
	})
	if err != nil {
		log.Error("Create account failed", "error", err)
		return nil, err
	}
	log.Info("Account created", "accountID", a.ID)
	return a, nil
}

// Get returns an account. Tellers of its bank and up.
func (s *Service) Get(ctx context.Context, callerID, accountID int64) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = tellerAccount(ctx, uow, callerID, accountID, false)
		return err
	})
	if err != nil {
		a = nil
	}
	return
}

// ListByBank returns the accounts of a bank. Tellers of the bank and up.
func (s *Service) ListByBank(ctx context.Context, callerID int64, bankID uuid.UUID) (as []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Teller); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		as, err = repo.ListByBank(ctx, bankID)
		return err
	})
	return
}

// ListMine returns the caller's own accounts. Active users only.
func (s *Service) ListMine(ctx context.Context, callerID int64) (as []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Active); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		as, err = repo.ListByUser(ctx, callerID)
		return err
	})
	return
}

// Deposit pays amount into an account. Tellers of its bank and up.
func (s *Service) Deposit(
	ctx context.Context,
	callerID, accountID, amount int64,
) (a *account.Account, d *account.Deposit, err error) {
	log := s.logger.With("context", "Deposit", "accountID", accountID, "amount", amount)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = tellerAccount(ctx, uow, callerID, accountID, true)
		if err != nil {
			return err
		}
		d, err = a.Deposit(amount)
		if err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.CreateDeposit(ctx, d); err != nil {
			return err
		}
		return repo.UpdateMoney(ctx, a)
	})
	if err != nil {
		log.Error("Deposit failed", "error", err)
		return nil, nil, err
	}
	log.Info("Deposit made", "balance", a.Money)
	s.emit(ctx, events.DepositMade{
		AccountID:  a.ID,
		DepositID:  d.ID,
		Amount:     d.Amount,
		Balance:    a.Money,
		OccurredAt: time.Now().UTC(),
	})
	return a, d, nil
}

// Withdraw takes amount out of an account. Tellers of its bank and up.
func (s *Service) Withdraw(
	ctx context.Context,
	callerID, accountID, amount int64,
) (a *account.Account, w *account.Withdraw, err error) {
	log := s.logger.With("context", "Withdraw", "accountID", accountID, "amount", amount)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err = tellerAccount(ctx, uow, callerID, accountID, true)
		if err != nil {
			return err
		}
		w, err = a.Withdraw(amount)
		if err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.CreateWithdraw(ctx, w); err != nil {
			return err
		}
		return repo.UpdateMoney(ctx, a)
	})
	if err != nil {
		log.Error("Withdraw failed", "error", err)
		return nil, nil, err
	}
	log.Info("Withdraw made", "balance", a.Money)
	s.emit(ctx, events.WithdrawMade{
		AccountID:  a.ID,
		WithdrawID: w.ID,
		Amount:     w.Amount,
		Balance:    a.Money,
		OccurredAt: time.Now().UTC(),
	})
	return a, w, nil
}

// ListDeposits returns the deposits of an account. Tellers of its bank and up.
func (s *Service) ListDeposits(ctx context.Context, callerID, accountID int64) (ds []*account.Deposit, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := tellerAccount(ctx, uow, callerID, accountID, false); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ds, err = repo.ListDeposits(ctx, accountID)
		return err
	})
	return
}

// ListWithdraws returns the withdrawals of an account. Tellers of its bank and up.
func (s *Service) ListWithdraws(ctx context.Context, callerID, accountID int64) (ws []*account.Withdraw, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := tellerAccount(ctx, uow, callerID, accountID, false); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		ws, err = repo.ListWithdraws(ctx, accountID)
		return err
	})
	return
}

// tellerAccount loads an account, locked when forUpdate is set, and checks
// the caller is at least a teller of its bank.
func tellerAccount(
	ctx context.Context,
	uow repository.UnitOfWork,
	callerID, accountID int64,
	forUpdate bool,
) (*account.Account, error) {
	repo, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	var a *account.Account
	if forUpdate {
		a, err = repo.GetForUpdate(ctx, accountID)
	} else {
		a, err = repo.Get(ctx, accountID)
	}
	if err != nil {
		return nil, authz.ConcealMissing(ctx, uow, callerID, role.Teller, err)
	}
	if _, err := authz.Require(ctx, uow, callerID, a.BankID, role.Teller); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("Failed to emit event", "type", e.Type(), "error", err)
	}
}
