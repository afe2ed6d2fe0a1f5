package account

import (
	"fmt"
	"math"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/google/uuid"
)

// Amount limits for ledger operations, in whole currency units.
const (
	// MinDepositExclusive is the bound a deposit must exceed.
	MinDepositExclusive int64 = 100_000
	// MinWithdraw is the smallest withdrawal allowed.
	MinWithdraw int64 = 100_000
	// MaxWithdraw is the largest withdrawal allowed.
	MaxWithdraw int64 = 3_000_000
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", domain.ErrNotFound)

	// ErrDuplicateAccount is returned when the user already has an account in the bank.
	ErrDuplicateAccount = fmt.Errorf("%w: user already has an account in this bank", domain.ErrAlreadyExists)

	// ErrInvalidDepositAmount is returned when a deposit is not greater than 100k.
	ErrInvalidDepositAmount = fmt.Errorf("%w: deposit amount must be greater than %d", domain.ErrValidation, MinDepositExclusive)

	// ErrInvalidWithdrawAmount is returned when a withdrawal is outside [100k, 3m].
	ErrInvalidWithdrawAmount = fmt.Errorf("%w: withdraw amount must be between %d and %d", domain.ErrValidation, MinWithdraw, MaxWithdraw)

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = fmt.Errorf("%w: amount exceeds account balance", domain.ErrInsufficientFunds)

	// ErrNegativeMoney is returned when an account would be opened with a negative balance.
	ErrNegativeMoney = fmt.Errorf("%w: initial money must not be negative", domain.ErrValidation)

	// ErrBalanceOverflow is returned when a credit would overflow the balance.
	ErrBalanceOverflow = fmt.Errorf("%w: balance would exceed maximum safe integer value", domain.ErrValidation)

	// ErrNonPositiveCredit is returned when a credit amount is zero or negative.
	ErrNonPositiveCredit = fmt.Errorf("%w: credit amount must be positive", domain.ErrValidation)

	// ErrNotOwner is returned when a user acts on an account they do not own.
	ErrNotOwner = fmt.Errorf("%w: not owner", domain.ErrForbidden)

	errUserRequired = fmt.Errorf("%w: user id is required", domain.ErrValidation)
	errBankRequired = fmt.Errorf("%w: bank id is required", domain.ErrValidation)
)

// Account holds the single integer balance a user keeps in one bank.
//
// Invariants:
//   - One account per (UserID, BankID).
//   - Money never goes negative through Withdraw.
type Account struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BankID    uuid.UUID `json:"bank_id"`
	Money     int64     `json:"money"`
	CreatedAt time.Time `json:"created_at"`
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id        int64
	userID    int64
	bankID    uuid.UUID
	money     int64
	createdAt time.Time
}

// New creates a new Builder.
func New() *Builder {
	return &Builder{createdAt: time.Now().UTC()}
}

// WithID sets the ID, used when hydrating from storage.
func (b *Builder) WithID(id int64) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owner. Mandatory.
func (b *Builder) WithUserID(userID int64) *Builder {
	b.userID = userID
	return b
}

// WithBankID sets the bank. Mandatory.
func (b *Builder) WithBankID(bankID uuid.UUID) *Builder {
	b.bankID = bankID
	return b
}

// WithMoney sets the opening balance.
func (b *Builder) WithMoney(money int64) *Builder {
	b.money = money
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the invariants and returns the account.
func (b *Builder) Build() (*Account, error) {
	if b.userID <= 0 {
		return nil, errUserRequired
	}
	if b.bankID == uuid.Nil {
		return nil, errBankRequired
	}
	if b.money < 0 {
		return nil, ErrNegativeMoney
	}
	return &Account{
		ID:        b.id,
		UserID:    b.userID,
		BankID:    b.bankID,
		Money:     b.money,
		CreatedAt: b.createdAt,
	}, nil
}

// ValidateDeposit checks the deposit range without mutating the account.
func (a *Account) ValidateDeposit(amount int64) error {
	if amount <= MinDepositExclusive {
		return ErrInvalidDepositAmount
	}
	if a.Money > math.MaxInt64-amount {
		return ErrBalanceOverflow
	}
	return nil
}

// ValidateWithdraw checks the withdrawal range and the balance. A withdrawal
// is rejected whenever it exceeds the balance, an empty account included.
func (a *Account) ValidateWithdraw(amount int64) error {
	if amount < MinWithdraw || amount > MaxWithdraw {
		return ErrInvalidWithdrawAmount
	}
	if amount > a.Money {
		return ErrInsufficientFunds
	}
	return nil
}

// Deposit adds amount to the balance and returns the record to persist.
func (a *Account) Deposit(amount int64) (*Deposit, error) {
	if err := a.ValidateDeposit(amount); err != nil {
		return nil, err
	}
	a.Money += amount
	return &Deposit{AccountID: a.ID, Amount: amount, CreatedAt: time.Now().UTC()}, nil
}

// Withdraw subtracts amount from the balance and returns the record to persist.
func (a *Account) Withdraw(amount int64) (*Withdraw, error) {
	if err := a.ValidateWithdraw(amount); err != nil {
		return nil, err
	}
	a.Money -= amount
	return &Withdraw{AccountID: a.ID, Amount: amount, CreatedAt: time.Now().UTC()}, nil
}

// Credit adds loan proceeds to the balance. No deposit range applies.
func (a *Account) Credit(amount int64) error {
	if amount <= 0 {
		return ErrNonPositiveCredit
	}
	if a.Money > math.MaxInt64-amount {
		return ErrBalanceOverflow
	}
	a.Money += amount
	return nil
}

// EnsureOwner returns ErrNotOwner unless userID owns the account.
func (a *Account) EnsureOwner(userID int64) error {
	if a.UserID != userID {
		return ErrNotOwner
	}
	return nil
}
