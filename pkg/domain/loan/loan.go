// Package loan holds loan types, issued loans and their compensations.
package loan

import (
	"fmt"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Principal limits, inclusive, in whole currency units.
const (
	MinPrincipal int64 = 100_000
	MaxPrincipal int64 = 5_000_000
)

// DefaultDays is the term used when a loan type is created without one.
const DefaultDays = 5

// Loan type limits, inclusive. Both fit the INTEGER columns they are stored in.
const (
	MaxInterest = 1000
	MaxDays     = 36500
)

// MaxNameLength bounds loan type names.
const MaxNameLength = 100

// State is the lifecycle state of a loan.
type State string

const (
	// StateOpen means part of the expected amount is still owed.
	StateOpen State = "OPEN"
	// StateCovered is terminal: the expected amount reached zero.
	StateCovered State = "COVERED"
)

var (
	ErrLoanNotFound     = fmt.Errorf("%w: loan not found", domain.ErrNotFound)
	ErrLoanTypeNotFound = fmt.Errorf("%w: loan type not found", domain.ErrNotFound)
	ErrDuplicateName    = fmt.Errorf("%w: loan type name already exists", domain.ErrAlreadyExists)

	ErrInvalidName        = fmt.Errorf("%w: loan type name must be 1-%d characters", domain.ErrValidation, MaxNameLength)
	ErrNegativeInterest   = fmt.Errorf("%w: interest must not be negative", domain.ErrValidation)
	ErrInterestTooHigh    = fmt.Errorf("%w: interest must not exceed %d", domain.ErrValidation, MaxInterest)
	ErrInvalidDays        = fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, MaxDays)
	ErrInvalidPrincipal   = fmt.Errorf("%w: amount_out must be between %d and %d", domain.ErrValidation, MinPrincipal, MaxPrincipal)
	ErrInvalidExpiry      = fmt.Errorf("%w: expiry must be in the future", domain.ErrValidation)
	ErrBankMismatch       = fmt.Errorf("%w: loan type belongs to another bank", domain.ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: compensation amount must be greater than 0", domain.ErrValidation)
	ErrLoanAlreadyCovered = fmt.Errorf("%w: loan is totally covered", domain.ErrValidation)
	ErrOverCompensation   = fmt.Errorf("%w: amount exceeds what is owed", domain.ErrOverCompensation)
)

// Type is a bank-scoped loan product.
type Type struct {
	ID        int64     `json:"id"`
	BankID    uuid.UUID `json:"bank_id"`
	Name      string    `json:"name"`
	Interest  int       `json:"interest"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

// NewType validates and returns a loan type. Zero days falls back to DefaultDays.
func NewType(bankID uuid.UUID, name string, interest, days int) (*Type, error) {
	if bankID == uuid.Nil {
		return nil, fmt.Errorf("%w: bank id is required", domain.ErrValidation)
	}
	if name == "" || len(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	if interest < 0 {
		return nil, ErrNegativeInterest
	}
	if interest > MaxInterest {
		return nil, ErrInterestTooHigh
	}
	if days == 0 {
		days = DefaultDays
	}
	if days < 1 || days > MaxDays {
		return nil, ErrInvalidDays
	}
	return &Type{
		BankID:    bankID,
		Name:      name,
		Interest:  interest,
		Days:      days,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ExpectedAmount returns principal * (1 + interest/100) rounded half-up to whole units.
func (t *Type) ExpectedAmount(principal int64) int64 {
	rate := decimal.NewFromInt(int64(t.Interest)).Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(principal).Mul(decimal.NewFromInt(1).Add(rate)).Round(0).IntPart()
}

// Loan is a principal disbursed to an account and the repayment owed on it.
//
// Invariants:
//   - AmountExpected only decreases once issued.
//   - IsCovered is true exactly when AmountExpected is zero.
type Loan struct {
	ID             int64     `json:"id"`
	AccountID      int64     `json:"account_id"`
	LoanTypeID     int64     `json:"loan_type_id"`
	AmountOut      int64     `json:"amount_out"`
	AmountExpected int64     `json:"amount_expected"`
	AmountIn       int64     `json:"amount_in"`
	IsCovered      bool      `json:"is_covered"`
	IsExpired      bool      `json:"is_expired"`
	ExpiredAt      time.Time `json:"expired_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Issue creates an open loan against accountID. A zero expiresAt defaults to
// now plus the loan type's term.
func Issue(accountID int64, lt *Type, principal int64, expiresAt time.Time, now time.Time) (*Loan, error) {
	if principal < MinPrincipal || principal > MaxPrincipal {
		return nil, ErrInvalidPrincipal
	}
	if expiresAt.IsZero() {
		expiresAt = now.AddDate(0, 0, lt.Days)
	} else if !expiresAt.After(now) {
		return nil, ErrInvalidExpiry
	}
	return &Loan{
		AccountID:      accountID,
		LoanTypeID:     lt.ID,
		AmountOut:      principal,
		AmountExpected: lt.ExpectedAmount(principal),
		ExpiredAt:      expiresAt.UTC(),
		CreatedAt:      now.UTC(),
	}, nil
}

// State reports whether the loan is still owed.
func (l *Loan) State() State {
	if l.IsCovered {
		return StateCovered
	}
	return StateOpen
}

// Compensate applies a repayment. Overpayment is rejected as a whole.
func (l *Loan) Compensate(amount int64) (*Compensation, error) {
	if l.IsCovered {
		return nil, ErrLoanAlreadyCovered
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	diff := l.AmountExpected - amount
	if diff < 0 {
		return nil, fmt.Errorf("%w: over by %d, expected up to %d", ErrOverCompensation, -diff, l.AmountExpected)
	}
	l.AmountExpected = diff
	l.AmountIn += amount
	if diff == 0 {
		l.IsCovered = true
		l.IsExpired = false
	}
	return &Compensation{LoanID: l.ID, Amount: amount, CreatedAt: time.Now().UTC()}, nil
}

// RefreshExpiry updates IsExpired against now and reports whether it changed.
func (l *Loan) RefreshExpiry(now time.Time) bool {
	expired := !l.IsCovered && now.After(l.ExpiredAt)
	if expired == l.IsExpired {
		return false
	}
	l.IsExpired = expired
	return true
}

// Compensation is an immutable repayment record.
type Compensation struct {
	ID        int64     `json:"id"`
	LoanID    int64     `json:"loan_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
