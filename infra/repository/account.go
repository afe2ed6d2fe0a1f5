package repository

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/account"
	repo "github.com/amirasaad/backoffice/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository using the provided *gorm.DB.
func NewAccountRepository(db *gorm.DB) repo.Repository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := Account{UserID: a.UserID, BankID: a.BankID, Money: a.Money, CreatedAt: a.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	a.ID = m.ID
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id int64) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFoundAs(err, account.ErrAccountNotFound)
	}
	return mapAccountModelToDomain(&m), nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id int64) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, notFoundAs(err, account.ErrAccountNotFound)
	}
	return mapAccountModelToDomain(&m), nil
}

func (r *accountRepository) UpdateMoney(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).Update("money", a.Money)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) ListByBank(ctx context.Context, bankID uuid.UUID) ([]*account.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Where("bank_id = ?", bankID).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccounts(ms), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID int64) ([]*account.Account, error) {
	var ms []Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapAccounts(ms), nil
}

func (r *accountRepository) CreateDeposit(ctx context.Context, d *account.Deposit) error {
	m := Deposit{AccountID: d.AccountID, Amount: d.Amount, CreatedAt: d.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	d.ID = m.ID
	return nil
}

func (r *accountRepository) ListDeposits(ctx context.Context, accountID int64) ([]*account.Deposit, error) {
	var ms []Deposit
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.Deposit, 0, len(ms))
	for _, m := range ms {
		out = append(out, &account.Deposit{ID: m.ID, AccountID: m.AccountID, Amount: m.Amount, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

func (r *accountRepository) CreateWithdraw(ctx context.Context, w *account.Withdraw) error {
	m := Withdraw{AccountID: w.AccountID, Amount: w.Amount, CreatedAt: w.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	w.ID = m.ID
	return nil
}

func (r *accountRepository) ListWithdraws(ctx context.Context, accountID int64) ([]*account.Withdraw, error) {
	var ms []Withdraw
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.Withdraw, 0, len(ms))
	for _, m := range ms {
		out = append(out, &account.Withdraw{ID: m.ID, AccountID: m.AccountID, Amount: m.Amount, CreatedAt: m.CreatedAt})
	}
	return out, nil
}
