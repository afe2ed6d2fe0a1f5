package loan_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/backoffice/infra/eventbus"
	"github.com/amirasaad/backoffice/internal/fixtures/mocks"
	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	loansvc "github.com/amirasaad/backoffice/pkg/service/loan"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	superID    int64 = 1
	tellerID   int64 = 2
	customerID int64 = 3
	accountID  int64 = 100
	loanTypeID int64 = 7
	loanID     int64 = 500
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *loansvc.Service
	users    *mocks.MockUserRepository
	banks    *mocks.MockBankRepository
	accounts *mocks.MockAccountRepository
	loans    *mocks.MockLoanRepository
	bus      *eventbus.Recorder
	bank     uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := mocks.NewMockUnitOfWork(t)
	f := &fixture{
		users:    mocks.NewMockUserRepository(t),
		banks:    mocks.NewMockBankRepository(t),
		accounts: mocks.NewMockAccountRepository(t),
		loans:    mocks.NewMockLoanRepository(t),
		bus:      eventbus.NewRecorder(eventbus.NewWithMemory(logger)),
		bank:     uuid.New(),
	}
	uow.On("Do", mock.Anything, mock.Anything).Return(mocks.PassThrough(uow)).Maybe()
	uow.On("UserRepository").Return(f.users, nil).Maybe()
	uow.On("BankRepository").Return(f.banks, nil).Maybe()
	uow.On("AccountRepository").Return(f.accounts, nil).Maybe()
	uow.On("LoanRepository").Return(f.loans, nil).Maybe()

	f.users.On("Get", mock.Anything, superID).Return(&user.User{ID: superID, IsActive: true, IsSuperuser: true}, nil).Maybe()
	f.users.On("Get", mock.Anything, tellerID).Return(&user.User{ID: tellerID, IsActive: true}, nil).Maybe()
	f.users.On("Get", mock.Anything, customerID).Return(&user.User{ID: customerID, IsActive: true}, nil).Maybe()
	f.banks.On("GetTellerByUser", mock.Anything, tellerID).Return(&bank.Teller{UserID: tellerID, BankID: f.bank}, nil).Maybe()
	f.banks.On("GetTellerByUser", mock.Anything, customerID).Return(nil, domain.ErrNotFound).Maybe()

	f.svc = loansvc.New(uow, f.bus, logger).WithClock(func() time.Time { return now })
	return f
}

func (f *fixture) account(money int64) *account.Account {
	return &account.Account{ID: accountID, UserID: customerID, BankID: f.bank, Money: money}
}

func (f *fixture) loanType(interest int) *loan.Type {
	return &loan.Type{ID: loanTypeID, BankID: f.bank, Name: "Consumer", Interest: interest, Days: 30}
}

func TestCreateType(t *testing.T) {
	ctx := context.Background()

	t.Run("superuser", func(t *testing.T) {
		f := newFixture(t)
		f.banks.On("Get", ctx, f.bank).Return(&bank.Bank{ID: f.bank}, nil)
		f.loans.On("CreateType", ctx, mock.AnythingOfType("*loan.Type")).Return(nil)

		lt, err := f.svc.CreateType(ctx, superID, f.bank, "Car", 12, 0)
		require.NoError(t, err)
		assert.Equal(t, loan.DefaultDays, lt.Days)
	})

	t.Run("teller is forbidden", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateType(ctx, tellerID, f.bank, "Car", 12, 10)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture(t)
		f.banks.On("Get", ctx, f.bank).Return(&bank.Bank{ID: f.bank}, nil)
		f.loans.On("CreateType", ctx, mock.Anything).Return(loan.ErrDuplicateName)

		_, err := f.svc.CreateType(ctx, superID, f.bank, "Car", 12, 10)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("negative interest", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateType(ctx, superID, f.bank, "Car", -1, 10)
		assert.ErrorIs(t, err, loan.ErrNegativeInterest)
	})
}

func TestIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("credits account and computes expected", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(0)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(a, nil)
		f.loans.On("GetType", ctx, loanTypeID).Return(f.loanType(10), nil)
		f.loans.On("Create", ctx, mock.AnythingOfType("*loan.Loan")).
			Run(func(args mock.Arguments) { args.Get(1).(*loan.Loan).ID = loanID }).
			Return(nil)
		f.accounts.On("UpdateMoney", ctx, a).Return(nil)

		l, err := f.svc.Issue(ctx, tellerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 200_000,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(220_000), l.AmountExpected)
		assert.Equal(t, int64(200_000), a.Money)
		assert.Equal(t, now.AddDate(0, 0, 30), l.ExpiredAt)
		assert.Equal(t, loan.StateOpen, l.State())

		published := f.bus.Published()
		require.Len(t, published, 1)
		ev, ok := published[0].(events.LoanIssued)
		require.True(t, ok)
		assert.Equal(t, loanID, ev.LoanID)
		assert.Equal(t, f.bank, ev.BankID)
	})

	t.Run("principal out of range", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(0)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(a, nil)
		f.loans.On("GetType", ctx, loanTypeID).Return(f.loanType(10), nil)

		_, err := f.svc.Issue(ctx, tellerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 5_000_001,
		})
		assert.ErrorIs(t, err, loan.ErrInvalidPrincipal)
		assert.Zero(t, a.Money)
	})

	t.Run("loan type of another bank", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(f.account(0), nil)
		other := f.loanType(10)
		other.BankID = uuid.New()
		f.loans.On("GetType", ctx, loanTypeID).Return(other, nil)

		_, err := f.svc.Issue(ctx, tellerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 200_000,
		})
		assert.ErrorIs(t, err, loan.ErrBankMismatch)
	})

	t.Run("customer cannot issue", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(f.account(0), nil)

		_, err := f.svc.Issue(ctx, customerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 200_000,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("owner applies", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(0)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(a, nil)
		f.loans.On("GetType", ctx, loanTypeID).Return(f.loanType(3), nil)
		f.loans.On("Create", ctx, mock.Anything).Return(nil)
		f.accounts.On("UpdateMoney", ctx, a).Return(nil)

		l, err := f.svc.Apply(ctx, customerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 100_050,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(103_052), l.AmountExpected)
	})

	t.Run("not the owner", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(0)
		a.UserID = 99
		f.accounts.On("GetForUpdate", ctx, accountID).Return(a, nil)

		_, err := f.svc.Apply(ctx, customerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 200_000,
		})
		assert.ErrorIs(t, err, account.ErrNotOwner)
	})

	t.Run("missing account", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(nil, account.ErrAccountNotFound)

		_, err := f.svc.Apply(ctx, customerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 200_000,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("expiry in the past", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("GetForUpdate", ctx, accountID).Return(f.account(0), nil)
		f.loans.On("GetType", ctx, loanTypeID).Return(f.loanType(3), nil)

		_, err := f.svc.Apply(ctx, customerID, loansvc.IssueInput{
			AccountID: accountID, LoanTypeID: loanTypeID, AmountOut: 200_000,
			ExpiresAt: now.Add(-time.Hour),
		})
		assert.ErrorIs(t, err, loan.ErrInvalidExpiry)
	})
}

func openLoan(expected int64) *loan.Loan {
	return &loan.Loan{
		ID:             loanID,
		AccountID:      accountID,
		LoanTypeID:     loanTypeID,
		AmountOut:      200_000,
		AmountExpected: expected,
		ExpiredAt:      now.Add(24 * time.Hour),
	}
}

func TestCompensate(t *testing.T) {
	ctx := context.Background()

	t.Run("full repayment covers", func(t *testing.T) {
		f := newFixture(t)
		l := openLoan(220_000)
		f.loans.On("GetForUpdate", ctx, loanID).Return(l, nil)
		f.accounts.On("Get", ctx, accountID).Return(f.account(0), nil)
		f.loans.On("CreateCompensation", ctx, mock.AnythingOfType("*loan.Compensation")).Return(nil)
		f.loans.On("Update", ctx, l).Return(nil)

		got, c, err := f.svc.Compensate(ctx, tellerID, loanID, 220_000)
		require.NoError(t, err)
		assert.Equal(t, int64(220_000), c.Amount)
		assert.True(t, got.IsCovered)
		assert.Equal(t, int64(220_000), got.AmountIn)
		assert.Equal(t, loan.StateCovered, got.State())

		var types []string
		for _, e := range f.bus.Published() {
			types = append(types, e.Type())
		}
		assert.Equal(t, []string{events.TypeLoanCompensated, events.TypeLoanCovered}, types)

		_, _, err = f.svc.Compensate(ctx, tellerID, loanID, 1)
		assert.ErrorIs(t, err, loan.ErrLoanAlreadyCovered)
	})

	t.Run("partial repayment", func(t *testing.T) {
		f := newFixture(t)
		l := openLoan(220_000)
		f.loans.On("GetForUpdate", ctx, loanID).Return(l, nil)
		f.accounts.On("Get", ctx, accountID).Return(f.account(0), nil)
		f.loans.On("CreateCompensation", ctx, mock.Anything).Return(nil)
		f.loans.On("Update", ctx, l).Return(nil)

		got, _, err := f.svc.Compensate(ctx, tellerID, loanID, 20_000)
		require.NoError(t, err)
		assert.Equal(t, int64(200_000), got.AmountExpected)
		assert.False(t, got.IsCovered)
		assert.Len(t, f.bus.Published(), 1)
	})

	t.Run("over compensation is rejected whole", func(t *testing.T) {
		f := newFixture(t)
		l := openLoan(50_000)
		f.loans.On("GetForUpdate", ctx, loanID).Return(l, nil)
		f.accounts.On("Get", ctx, accountID).Return(f.account(0), nil)

		_, _, err := f.svc.Compensate(ctx, tellerID, loanID, 50_001)
		assert.ErrorIs(t, err, domain.ErrOverCompensation)
		assert.Equal(t, int64(50_000), l.AmountExpected)
		assert.Zero(t, l.AmountIn)
		assert.Empty(t, f.bus.Published())
	})

	t.Run("missing loan looks forbidden to a teller", func(t *testing.T) {
		f := newFixture(t)
		f.loans.On("GetForUpdate", ctx, loanID).Return(nil, loan.ErrLoanNotFound)

		_, _, err := f.svc.Compensate(ctx, tellerID, loanID, 1_000)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing loan is not found for a superuser", func(t *testing.T) {
		f := newFixture(t)
		f.loans.On("GetForUpdate", ctx, loanID).Return(nil, loan.ErrLoanNotFound)

		_, _, err := f.svc.Compensate(ctx, superID, loanID, 1_000)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListMine_RefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	overdue := openLoan(100_000)
	overdue.ExpiredAt = now.Add(-time.Hour)
	fresh := openLoan(100_000)
	fresh.ID = loanID + 1
	f.loans.On("ListByUser", ctx, customerID).Return([]*loan.Loan{overdue, fresh}, nil)
	f.loans.On("Update", ctx, overdue).Return(nil).Once()

	ls, err := f.svc.ListMine(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, ls, 2)
	assert.True(t, ls[0].IsExpired)
	assert.False(t, ls[1].IsExpired)
}

func TestListForAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("Get", ctx, accountID).Return(f.account(0), nil)
		f.loans.On("ListByAccount", ctx, accountID).Return([]*loan.Loan{openLoan(1_000)}, nil)

		ls, err := f.svc.ListForAccount(ctx, customerID, accountID)
		require.NoError(t, err)
		assert.Len(t, ls, 1)
	})

	t.Run("someone else's account", func(t *testing.T) {
		f := newFixture(t)
		a := f.account(0)
		a.UserID = 42
		f.accounts.On("Get", ctx, accountID).Return(a, nil)

		_, err := f.svc.ListForAccount(ctx, customerID, accountID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing account matches someone else's", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("Get", ctx, accountID).Return(nil, account.ErrAccountNotFound)

		_, err := f.svc.ListForAccount(ctx, customerID, accountID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListTypes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.loans.On("ListTypes", ctx, f.bank).Return([]*loan.Type{f.loanType(10)}, nil)

	ts, err := f.svc.ListTypes(ctx, f.bank)
	require.NoError(t, err)
	assert.Len(t, ts, 1)
}
