package repository

import (
	"errors"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations and
// out-of-range input.
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
)

// constraintErrors maps constraint names declared in the migrations to the
// domain error a violation means.
var constraintErrors = map[string]error{
	"users_phone_number_key":         user.ErrDuplicatePhone,
	"users_email_key":                user.ErrDuplicateEmail,
	"banks_name_key":                 bank.ErrDuplicateName,
	"unique_user_in_bank":            bank.ErrAlreadyMember,
	"tellers_user_id_key":            bank.ErrAlreadyTeller,
	"unique_account_in_bank":         account.ErrDuplicateAccount,
	"check_money_non_negative":       account.ErrInsufficientFunds,
	"check_d_amount_gt_100k":         account.ErrInvalidDepositAmount,
	"check_w_amount_between_range":   account.ErrInvalidWithdrawAmount,
	"loan_types_name_key":            loan.ErrDuplicateName,
	"check_interest_gte_0":           loan.ErrNegativeInterest,
	"check_days_gte_1":               loan.ErrInvalidDays,
	"check_amount_out_between_range": loan.ErrInvalidPrincipal,
	"check_c_amount_gt_0":            loan.ErrInvalidAmount,
	"accounts_user_id_fkey":          user.ErrUserNotFound,
	"accounts_bank_id_fkey":          bank.ErrBankNotFound,
	"bank_users_user_id_fkey":        user.ErrUserNotFound,
	"bank_users_bank_id_fkey":        bank.ErrBankNotFound,
	"tellers_user_id_fkey":           user.ErrUserNotFound,
	"tellers_bank_id_fkey":           bank.ErrBankNotFound,
	"loan_types_bank_id_fkey":        bank.ErrBankNotFound,
	"loans_account_id_fkey":          account.ErrAccountNotFound,
	"loans_loan_type_id_fkey":        loan.ErrLoanTypeNotFound,
}

// MapGormErrorToDomain converts GORM and PostgreSQL errors to domain errors.
// Constraint violations are classified by SQLSTATE and constraint name, never
// by message text. Unknown errors are returned unchanged.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrAlreadyExists
		case pgCheckViolation, pgNumericOutOfRange:
			return domain.ErrValidation
		case pgForeignKeyViolation:
			return domain.ErrNotFound
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return domain.ErrValidation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrNotFound
	}
	return err
}

// WrapError wraps a GORM operation and automatically maps errors.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// notFoundAs returns target for a missing row and maps anything else.
func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return MapGormErrorToDomain(err)
}
