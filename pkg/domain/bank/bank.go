// Package bank holds banks and the join entities that grant users access to
// them: plain membership and tellers.
package bank

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/google/uuid"
)

// MaxNameLength bounds bank names.
const MaxNameLength = 100

var (
	ErrBankNotFound  = fmt.Errorf("%w: bank not found", domain.ErrNotFound)
	ErrDuplicateName = fmt.Errorf("%w: bank with this name already exists", domain.ErrAlreadyExists)
	ErrInvalidName   = fmt.Errorf("%w: bank name must be 1-%d characters", domain.ErrValidation, MaxNameLength)

	ErrAlreadyMember = fmt.Errorf("%w: user is already registered to this bank", domain.ErrAlreadyExists)
	ErrNotMember     = fmt.Errorf("%w: user is not registered in this bank", domain.ErrNotFound)
	ErrAlreadyTeller = fmt.Errorf("%w: teller is already registered", domain.ErrAlreadyExists)
)

// Bank is identified by a UUID and owns accounts, loan types and tellers.
type Bank struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New returns a bank with a fresh id.
func New(name, location string) (*Bank, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Bank{
		ID:        uuid.New(),
		Name:      name,
		Location:  strings.TrimSpace(location),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidateName checks the bank name length.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

// Teller grants a user staff access to one bank. A user is a teller of at
// most one bank.
type Teller struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	BankID uuid.UUID `json:"bank_id"`
}

// Membership registers a user as a customer of a bank.
type Membership struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	BankID uuid.UUID `json:"bank_id"`
}
