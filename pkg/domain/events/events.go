// Package events declares the domain events emitted after a unit of work commits.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type names as they travel on the bus.
const (
	TypeUserRegistered  = "User.Registered"
	TypeDepositMade     = "Deposit.Made"
	TypeWithdrawMade    = "Withdraw.Made"
	TypeLoanIssued      = "Loan.Issued"
	TypeLoanCompensated = "Loan.Compensated"
	TypeLoanCovered     = "Loan.Covered"
)

// Event is anything that can be published on the event bus.
type Event interface {
	Type() string
}

// UserRegistered is emitted when a new, inactive user signs up.
type UserRegistered struct {
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone_number"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (UserRegistered) Type() string { return TypeUserRegistered }

// DepositMade is emitted after a deposit is committed.
type DepositMade struct {
	AccountID  int64     `json:"account_id"`
	DepositID  int64     `json:"deposit_id"`
	Amount     int64     `json:"amount"`
	Balance    int64     `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (DepositMade) Type() string { return TypeDepositMade }

// WithdrawMade is emitted after a withdrawal is committed.
type WithdrawMade struct {
	AccountID  int64     `json:"account_id"`
	WithdrawID int64     `json:"withdraw_id"`
	Amount     int64     `json:"amount"`
	Balance    int64     `json:"balance"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (WithdrawMade) Type() string { return TypeWithdrawMade }

// LoanIssued is emitted after a loan is disbursed to an account.
type LoanIssued struct {
	LoanID         int64     `json:"loan_id"`
	AccountID      int64     `json:"account_id"`
	BankID         uuid.UUID `json:"bank_id"`
	AmountOut      int64     `json:"amount_out"`
	AmountExpected int64     `json:"amount_expected"`
	ExpiredAt      time.Time `json:"expired_at"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (LoanIssued) Type() string { return TypeLoanIssued }

// LoanCompensated is emitted after each accepted repayment.
type LoanCompensated struct {
	LoanID         int64     `json:"loan_id"`
	CompensationID int64     `json:"compensation_id"`
	Amount         int64     `json:"amount"`
	AmountExpected int64     `json:"amount_expected"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func (LoanCompensated) Type() string { return TypeLoanCompensated }

// LoanCovered is emitted once when a loan reaches zero owed.
type LoanCovered struct {
	LoanID     int64     `json:"loan_id"`
	AmountIn   int64     `json:"amount_in"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (LoanCovered) Type() string { return TypeLoanCovered }

// Factories builds empty events by type name, used to decode payloads read
// back from a broker.
func Factories() map[string]func() Event {
	return map[string]func() Event{
		TypeUserRegistered:  func() Event { return &UserRegistered{} },
		TypeDepositMade:     func() Event { return &DepositMade{} },
		TypeWithdrawMade:    func() Event { return &WithdrawMade{} },
		TypeLoanIssued:      func() Event { return &LoanIssued{} },
		TypeLoanCompensated: func() Event { return &LoanCompensated{} },
		TypeLoanCovered:     func() Event { return &LoanCovered{} },
	}
}
