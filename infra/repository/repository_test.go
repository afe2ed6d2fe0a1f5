package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/account"
	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/loan"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return db, mock
}

func TestAccountRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acc, err := account.New().WithUserID(1).WithBankID(uuid.New()).WithMoney(500_000).Build()
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "accounts" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, repo.Create(context.Background(), acc))
	assert.Equal(t, int64(42), acc.ID)
}

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acc, err := account.New().WithUserID(1).WithBankID(uuid.New()).Build()
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "accounts" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "unique_account_in_bank"})

	err = repo.Create(context.Background(), acc)
	assert.ErrorIs(t, err, account.ErrDuplicateAccount)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAccountRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	bankID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE "accounts"."id" = \$1 ORDER BY "accounts"."id" LIMIT \$2 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bank_id", "money", "created_at"}).
			AddRow(7, 3, bankID, 500_000, time.Now()))

	acc, err := repo.GetForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), acc.ID)
	assert.Equal(t, int64(3), acc.UserID)
	assert.Equal(t, bankID, acc.BankID)
	assert.Equal(t, int64(500_000), acc.Money)
}

func TestAccountRepository_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_UpdateMoney(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)
	acc := &account.Account{ID: 7, Money: 350_000}

	mock.ExpectExec(`UPDATE "accounts" SET "money"=\$1 WHERE id = \$2`).
		WithArgs(int64(350_000), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateMoney(context.Background(), acc))

	mock.ExpectExec(`UPDATE "accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "check_money_non_negative"})
	err := repo.UpdateMoney(context.Background(), acc)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestAccountRepository_DepositRecords(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`INSERT INTO "deposits" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	d := &account.Deposit{AccountID: 7, Amount: 150_000, CreatedAt: time.Now()}
	require.NoError(t, repo.CreateDeposit(context.Background(), d))
	assert.Equal(t, int64(1), d.ID)

	mock.ExpectQuery(`INSERT INTO "deposits"`).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "check_d_amount_gt_100k"})
	err := repo.CreateDeposit(context.Background(), &account.Deposit{AccountID: 7, Amount: 10})
	assert.ErrorIs(t, err, account.ErrInvalidDepositAmount)

	mock.ExpectQuery(`SELECT \* FROM "deposits" WHERE account_id = \$1 ORDER BY id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "amount", "created_at"}).
			AddRow(1, 7, 150_000, time.Now()).
			AddRow(2, 7, 200_000, time.Now()))
	list, err := repo.ListDeposits(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(200_000), list[1].Amount)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	u := &user.User{Name: "Ali", Email: "ali@example.com", Phone: "+998901234567", HashedPassword: "x"}

	mock.ExpectQuery(`INSERT INTO "users" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(5), u.ID)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_phone_number_key"})
	err := repo.Create(context.Background(), &user.User{Name: "Vali"})
	assert.ErrorIs(t, err, user.ErrDuplicatePhone)
}

func TestUserRepository_GetByIdentity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE .*email = \$1 OR phone_number = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone_number", "is_active"}).
			AddRow(5, "Ali", "ali@example.com", "+998901234567", true))

	u, err := repo.GetByIdentity(context.Background(), "+998901234567")
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
	assert.Equal(t, "+998901234567", u.Phone)
	assert.True(t, u.IsActive)
}

func TestUserRepository_IncrementAccounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "accounts_number"=accounts_number \+ \$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.IncrementAccounts(context.Background(), 5))

	mock.ExpectExec(`UPDATE "users"`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.IncrementAccounts(context.Background(), 6), user.ErrUserNotFound)
}

func TestUserRepository_DeleteWithAccounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM "users" WHERE "users"."id" = \$1`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "accounts_user_id_fkey"})
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), user.ErrUserHasAccounts)

	mock.ExpectExec(`DELETE FROM "users"`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 5), user.ErrUserNotFound)
}

func TestBankRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBankRepository(db)
	b, err := bank.New("Kapital", "Tashkent")
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "banks" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), b))

	mock.ExpectExec(`INSERT INTO "banks"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "banks_name_key"})
	assert.ErrorIs(t, repo.Create(context.Background(), b), bank.ErrDuplicateName)
}

func TestBankRepository_Members(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBankRepository(db)
	bankID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "bank_users" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "unique_user_in_bank"})
	err := repo.AddMember(context.Background(), &bank.Membership{UserID: 1, BankID: bankID})
	assert.ErrorIs(t, err, bank.ErrAlreadyMember)

	mock.ExpectExec(`DELETE FROM "bank_users" WHERE bank_id = \$1 AND user_id = \$2`).
		WithArgs(bankID.String(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.RemoveMember(context.Background(), bankID, 1), bank.ErrNotMember)

	mock.ExpectQuery(`SELECT "users"."id",(.+) FROM "users" JOIN bank_users ON bank_users.user_id = users.id WHERE bank_users.bank_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Ali").AddRow(2, "Vali"))
	users, err := repo.ListMembers(context.Background(), bankID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestBankRepository_GetTellerByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBankRepository(db)
	bankID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "tellers" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bank_id"}).AddRow(1, 4, bankID))
	tl, err := repo.GetTellerByUser(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, bankID, tl.BankID)

	mock.ExpectQuery(`SELECT \* FROM "tellers"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = repo.GetTellerByUser(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoanRepository_CreateAndUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)
	l := &loan.Loan{AccountID: 1, LoanTypeID: 2, AmountOut: 200_000, AmountExpected: 220_000, ExpiredAt: time.Now()}

	mock.ExpectQuery(`INSERT INTO "loans" (.+) VALUES (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	require.NoError(t, repo.Create(context.Background(), l))
	assert.Equal(t, int64(11), l.ID)

	l.AmountExpected, l.AmountIn, l.IsCovered = 0, 220_000, true
	mock.ExpectExec(`UPDATE "loans" SET "amount_expected"=\$1,"amount_in"=\$2,"is_covered"=\$3,"is_expired"=\$4 WHERE id = \$5`).
		WithArgs(int64(0), int64(220_000), true, false, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), l))
}

func TestLoanRepository_InvalidPrincipal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery(`INSERT INTO "loans"`).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "check_amount_out_between_range"})
	err := repo.Create(context.Background(), &loan.Loan{AccountID: 1, LoanTypeID: 2, AmountOut: 1})
	assert.ErrorIs(t, err, loan.ErrInvalidPrincipal)
}

func TestLoanRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery(`SELECT loans.\* FROM "loans" JOIN accounts ON accounts.id = loans.account_id WHERE accounts.user_id = \$1 ORDER BY loans.id`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "amount_out"}).AddRow(1, 9, 200_000))
	loans, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, int64(9), loans[0].AccountID)
}
