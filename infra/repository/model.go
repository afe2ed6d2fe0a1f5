package repository

import (
	"time"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/google/uuid"
)

// The schema is owned by the SQL migrations; these models only map columns.

// User represents a user record in the database.
type User struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null"`
	Email          string `gorm:"size:255;not null"`
	PhoneNumber    string `gorm:"size:13;not null"`
	HashedPassword string `gorm:"not null"`
	IsActive       bool
	IsSuperuser    bool
	AccountsNumber int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string { return "users" }

// Bank represents a bank record in the database.
type Bank struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Location  string
	CreatedAt time.Time
}

func (Bank) TableName() string { return "banks" }

// BankUser is the membership join row.
type BankUser struct {
	ID     int64     `gorm:"primaryKey"`
	UserID int64     `gorm:"not null"`
	BankID uuid.UUID `gorm:"type:uuid;not null"`
}

func (BankUser) TableName() string { return "bank_users" }

// Teller represents a teller record in the database.
type Teller struct {
	ID     int64     `gorm:"primaryKey"`
	UserID int64     `gorm:"not null"`
	BankID uuid.UUID `gorm:"type:uuid;not null"`
}

func (Teller) TableName() string { return "tellers" }

// Account represents an account record in the database.
type Account struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null"`
	BankID    uuid.UUID `gorm:"type:uuid;not null"`
	Money     int64     `gorm:"not null"`
	CreatedAt time.Time
}

func (Account) TableName() string { return "accounts" }

// Deposit represents a persisted deposit.
type Deposit struct {
	ID        int64 `gorm:"primaryKey"`
	AccountID int64 `gorm:"not null"`
	Amount    int64 `gorm:"not null"`
	CreatedAt time.Time
}

func (Deposit) TableName() string { return "deposits" }

// Withdraw represents a persisted withdrawal.
type Withdraw struct {
	ID        int64 `gorm:"primaryKey"`
	AccountID int64 `gorm:"not null"`
	Amount    int64 `gorm:"not null"`
	CreatedAt time.Time
}

func (Withdraw) TableName() string { return "withdraws" }

// LoanType represents a loan product in the database.
type LoanType struct {
	ID        int64     `gorm:"primaryKey"`
	BankID    uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"size:100;not null"`
	Interest  int       `gorm:"not null"`
	Days      int       `gorm:"not null"`
	CreatedAt time.Time
}

func (LoanType) TableName() string { return "loan_types" }

// Loan represents an issued loan in the database.
type Loan struct {
	ID             int64 `gorm:"primaryKey"`
	AccountID      int64 `gorm:"not null"`
	LoanTypeID     int64 `gorm:"not null"`
	AmountOut      int64 `gorm:"not null"`
	AmountExpected int64 `gorm:"not null"`
	AmountIn       int64 `gorm:"not null"`
	IsCovered      bool
	IsExpired      bool
	ExpiredAt      time.Time
	CreatedAt      time.Time
}

func (Loan) TableName() string { return "loans" }

// LoanCompensation represents a persisted repayment.
type LoanCompensation struct {
	ID        int64 `gorm:"primaryKey"`
	LoanID    int64 `gorm:"not null"`
	Amount    int64 `gorm:"not null"`
	CreatedAt time.Time
}

func (LoanCompensation) TableName() string { return "loan_compensations" }

func mapUserModelToDomain(m *User) *user.User {
	return &user.User{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.PhoneNumber,
		HashedPassword: m.HashedPassword,
		IsActive:       m.IsActive,
		IsSuperuser:    m.IsSuperuser,
		AccountsNumber: m.AccountsNumber,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func mapUserDomainToModel(u *user.User) *User {
	return &User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PhoneNumber:    u.Phone,
		HashedPassword: u.HashedPassword,
		IsActive:       u.IsActive,
		IsSuperuser:    u.IsSuperuser,
		AccountsNumber: u.AccountsNumber,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func mapUsers(ms []User) []*user.User {
	out := make([]*user.User, 0, len(ms))
	for i := range ms {
		out = append(out, mapUserModelToDomain(&ms[i]))
	}
	return out
}

func mapBankModelToDomain(m *Bank) *bank.Bank {
	return &bank.Bank{ID: m.ID, Name: m.Name, Location: m.Location, CreatedAt: m.CreatedAt}
}

func mapAccountModelToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		BankID:    m.BankID,
		Money:     m.Money,
		CreatedAt: m.CreatedAt,
	}
}

func mapAccounts(ms []Account) []*account.Account {
	out := make([]*account.Account, 0, len(ms))
	for i := range ms {
		out = append(out, mapAccountModelToDomain(&ms[i]))
	}
	return out
}

func mapLoanTypeModelToDomain(m *LoanType) *loan.Type {
	return &loan.Type{
		ID:        m.ID,
		BankID:    m.BankID,
		Name:      m.Name,
		Interest:  m.Interest,
		Days:      m.Days,
		CreatedAt: m.CreatedAt,
	}
}

func mapLoanModelToDomain(m *Loan) *loan.Loan {
	return &loan.Loan{
		ID:             m.ID,
		AccountID:      m.AccountID,
		LoanTypeID:     m.LoanTypeID,
		AmountOut:      m.AmountOut,
		AmountExpected: m.AmountExpected,
		AmountIn:       m.AmountIn,
		IsCovered:      m.IsCovered,
		IsExpired:      m.IsExpired,
		ExpiredAt:      m.ExpiredAt,
		CreatedAt:      m.CreatedAt,
	}
}

func mapLoans(ms []Loan) []*loan.Loan {
	out := make([]*loan.Loan, 0, len(ms))
	for i := range ms {
		out = append(out, mapLoanModelToDomain(&ms[i]))
	}
	return out
}
