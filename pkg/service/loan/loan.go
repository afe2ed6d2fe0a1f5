// Package loan issues loans against accounts and books their repayments.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/role"
	"github.com/amirasaad/backoffice/pkg/eventbus"
	"github.com/amirasaad/backoffice/pkg/repository"
	loanrepo "github.com/amirasaad/backoffice/pkg/repository/loan"
	"github.com/amirasaad/backoffice/pkg/service/authz"
	"github.com/google/uuid"
)

type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
	now    func() time.Time
}

func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueInput describes a requested loan. A zero ExpiresAt uses the loan
// type's term.
type IssueInput struct {
	AccountID  int64
	LoanTypeID int64
	AmountOut  int64
	ExpiresAt  time.Time
}

// CreateType adds a loan product to a bank. Superuser only.
func (s *Service) CreateType(
	ctx context.Context,
	callerID int64,
	bankID uuid.UUID,
	name string,
	interest, days int,
) (t *loan.Type, err error) {
	t, err = loan.NewType(bankID, name, interest, days)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, bankID, role.Superuser); err != nil {
			return err
		}
		banks, err := uow.BankRepository()
		if err != nil {
			return err
		}
		if _, err := banks.Get(ctx, bankID); err != nil {
			return err
		}
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		return repo.CreateType(ctx, t)
	})
	if err != nil {
		s.logger.Error("Create loan type failed", "bankID", bankID, "name", name, "error", err)
		return nil, err
	}
	s.logger.Info("Loan type created", "bankID", bankID, "loanTypeID", t.ID)
	return t, nil
}

// ListTypes returns the loan products of a bank.
func (s *Service) ListTypes(ctx context.Context, bankID uuid.UUID) (ts []*loan.Type, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		ts, err = repo.ListTypes(ctx, bankID)
		return err
	})
	return
}

// Issue disburses a loan into an account. Tellers of the account's bank and up.
func (s *Service) Issue(ctx context.Context, callerID int64, in IssueInput) (*loan.Loan, error) {
	return s.disburse(ctx, callerID, role.Teller, in, func(uow repository.UnitOfWork, a *account.Account) error {
		_, err := authz.Require(ctx, uow, callerID, a.BankID, role.Teller)
		return err
	})
}

// Apply lets an active user take a loan on their own account.
func (s *Service) Apply(ctx context.Context, callerID int64, in IssueInput) (*loan.Loan, error) {
	return s.disburse(ctx, callerID, role.Active, in, func(uow repository.UnitOfWork, a *account.Account) error {
		if _, err := authz.Require(ctx, uow, callerID, a.BankID, role.Active); err != nil {
			return err
		}
		return a.EnsureOwner(callerID)
	})
}

func (s *Service) disburse(
	ctx context.Context,
	callerID int64,
	need role.Role,
	in IssueInput,
	allow func(repository.UnitOfWork, *account.Account) error,
) (l *loan.Loan, err error) {
	log := s.logger.With("context", "IssueLoan", "accountID", in.AccountID, "loanTypeID", in.LoanTypeID)
	var a *account.Account
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		a, err = accounts.GetForUpdate(ctx, in.AccountID)
		if err != nil {
			return authz.ConcealMissing(ctx, uow, callerID, need, err)
		}
		if err := allow(uow, a); err != nil {
			return err
		}
		lt, err := loans.GetType(ctx, in.LoanTypeID)
		if err != nil {
			return err
		}
		if lt.BankID != a.BankID {
			return loan.ErrBankMismatch
		}
		l, err = loan.Issue(a.ID, lt, in.AmountOut, in.ExpiresAt, s.now())
		if err != nil {
			return err
		}
		if err := a.Credit(l.AmountOut); err != nil {
			return err
		}
		if err := loans.Create(ctx, l); err != nil {
			return err
		}
		return accounts.UpdateMoney(ctx, a)
	})
	if err != nil {
		log.Error("Issue loan failed", "error", err)
		return nil, err
	}
	log.Info("Loan issued", "loanID", l.ID, "amountOut", l.AmountOut, "amountExpected", l.AmountExpected)
	s.emit(ctx, events.LoanIssued{
		LoanID:         l.ID,
		AccountID:      a.ID,
		BankID:         a.BankID,
		AmountOut:      l.AmountOut,
		AmountExpected: l.AmountExpected,
		ExpiredAt:      l.ExpiredAt,
		OccurredAt:     s.now().UTC(),
	})
	return l, nil
}

// Compensate books a repayment. Tellers of the loan's bank and up.
func (s *Service) Compensate(
	ctx context.Context,
	callerID, loanID, amount int64,
) (l *loan.Loan, c *loan.Compensation, err error) {
	log := s.logger.With("context", "Compensate", "loanID", loanID, "amount", amount)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		l, err = loans.GetForUpdate(ctx, loanID)
		if err != nil {
			return authz.ConcealMissing(ctx, uow, callerID, role.Teller, err)
		}
		a, err := accounts.Get(ctx, l.AccountID)
		if err != nil {
			return err
		}
		if _, err := authz.Require(ctx, uow, callerID, a.BankID, role.Teller); err != nil {
			return err
		}
		c, err = l.Compensate(amount)
		if err != nil {
			return err
		}
		l.RefreshExpiry(s.now())
		if err := loans.CreateCompensation(ctx, c); err != nil {
			return err
		}
		return loans.Update(ctx, l)
	})
	if err != nil {
		log.Error("Compensation failed", "error", err)
		return nil, nil, err
	}
	log.Info("Compensation booked", "amountExpected", l.AmountExpected, "state", l.State())
	now := s.now().UTC()
	s.emit(ctx, events.LoanCompensated{
		LoanID:         l.ID,
		CompensationID: c.ID,
		Amount:         c.Amount,
		AmountExpected: l.AmountExpected,
		OccurredAt:     now,
	})
	if l.IsCovered {
		s.emit(ctx, events.LoanCovered{LoanID: l.ID, AmountIn: l.AmountIn, OccurredAt: now})
	}
	return l, c, nil
}

// ListMine returns every loan on the caller's accounts. Active users only.
func (s *Service) ListMine(ctx context.Context, callerID int64) (ls []*loan.Loan, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := authz.Require(ctx, uow, callerID, uuid.Nil, role.Active); err != nil {
			return err
		}
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		ls, err = repo.ListByUser(ctx, callerID)
		if err != nil {
			return err
		}
		return s.refresh(ctx, repo, ls)
	})
	return
}

// ListForAccount returns the loans of one of the caller's accounts.
func (s *Service) ListForAccount(ctx context.Context, callerID, accountID int64) (ls []*loan.Loan, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, accountID)
		if err != nil {
			return authz.ConcealMissing(ctx, uow, callerID, role.Active, err)
		}
		if _, err := authz.Require(ctx, uow, callerID, a.BankID, role.Active); err != nil {
			return err
		}
		if err := a.EnsureOwner(callerID); err != nil {
			return err
		}
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		ls, err = repo.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		return s.refresh(ctx, repo, ls)
	})
	return
}

// refresh persists loans whose expiry flag moved since they were stored.
func (s *Service) refresh(ctx context.Context, repo loanrepo.Repository, ls []*loan.Loan) error {
	now := s.now()
	for _, l := range ls {
		if l.RefreshExpiry(now) {
			if err := repo.Update(ctx, l); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Warn("Failed to emit event", "type", e.Type(), "error", err)
	}
}
