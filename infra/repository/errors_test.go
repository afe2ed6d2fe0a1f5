package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func pgError(code, constraint string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, ConstraintName: constraint, Message: "ignored"})
}

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"duplicate account", pgError("23505", "unique_account_in_bank"), account.ErrDuplicateAccount},
		{"duplicate phone", pgError("23505", "users_phone_number_key"), user.ErrDuplicatePhone},
		{"duplicate bank name", pgError("23505", "banks_name_key"), bank.ErrDuplicateName},
		{"duplicate membership", pgError("23505", "unique_user_in_bank"), bank.ErrAlreadyMember},
		{"duplicate teller", pgError("23505", "tellers_user_id_key"), bank.ErrAlreadyTeller},
		{"duplicate loan type", pgError("23505", "loan_types_name_key"), loan.ErrDuplicateName},
		{"deposit range", pgError("23514", "check_d_amount_gt_100k"), account.ErrInvalidDepositAmount},
		{"withdraw range", pgError("23514", "check_w_amount_between_range"), account.ErrInvalidWithdrawAmount},
		{"negative money", pgError("23514", "check_money_non_negative"), account.ErrInsufficientFunds},
		{"principal range", pgError("23514", "check_amount_out_between_range"), loan.ErrInvalidPrincipal},
		{"unknown bank", pgError("23503", "accounts_bank_id_fkey"), bank.ErrBankNotFound},
		{"unknown loan type", pgError("23503", "loans_loan_type_id_fkey"), loan.ErrLoanTypeNotFound},
		{"unnamed unique", pgError("23505", "other_key"), domain.ErrAlreadyExists},
		{"unnamed check", pgError("23514", "other_check"), domain.ErrValidation},
		{"unnamed fk", pgError("23503", "other_fkey"), domain.ErrNotFound},
		{"integer out of range", pgError("22003", ""), domain.ErrValidation},
		{"gorm duplicate key", gorm.ErrDuplicatedKey, domain.ErrAlreadyExists},
		{"gorm record not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"joined record not found", errors.Join(errors.New("outer"), gorm.ErrRecordNotFound), domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapGormErrorToDomain(tt.input), tt.expected)
		})
	}
}

func TestMapGormErrorToDomain_Passthrough(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapGormErrorToDomain(nil))

	orig := errors.New("connection reset")
	assert.Same(t, orig, MapGormErrorToDomain(orig))

	serialization := pgError("40001", "")
	assert.Equal(t, serialization, MapGormErrorToDomain(serialization))
}

func TestMapGormErrorToDomain_IgnoresMessageText(t *testing.T) {
	t.Parallel()
	err := &pgconn.PgError{Code: "23505", ConstraintName: "", Message: "unique_account_in_bank"}
	mapped := MapGormErrorToDomain(err)
	assert.ErrorIs(t, mapped, domain.ErrAlreadyExists)
	assert.NotErrorIs(t, mapped, account.ErrDuplicateAccount)
}
