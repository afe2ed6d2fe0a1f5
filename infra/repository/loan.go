package repository

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/loan"
	repo "github.com/amirasaad/backoffice/pkg/repository/loan"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a loan repository using the provided *gorm.DB.
func NewLoanRepository(db *gorm.DB) repo.Repository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateType(ctx context.Context, t *loan.Type) error {
	m := LoanType{BankID: t.BankID, Name: t.Name, Interest: t.Interest, Days: t.Days, CreatedAt: t.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	t.ID = m.ID
	return nil
}

func (r *loanRepository) GetType(ctx context.Context, id int64) (*loan.Type, error) {
	var m LoanType
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFoundAs(err, loan.ErrLoanTypeNotFound)
	}
	return mapLoanTypeModelToDomain(&m), nil
}

func (r *loanRepository) ListTypes(ctx context.Context, bankID uuid.UUID) ([]*loan.Type, error) {
	var ms []LoanType
	if err := r.db.WithContext(ctx).Where("bank_id = ?", bankID).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*loan.Type, 0, len(ms))
	for i := range ms {
		out = append(out, mapLoanTypeModelToDomain(&ms[i]))
	}
	return out, nil
}

func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	m := Loan{
		AccountID:      l.AccountID,
		LoanTypeID:     l.LoanTypeID,
		AmountOut:      l.AmountOut,
		AmountExpected: l.AmountExpected,
		AmountIn:       l.AmountIn,
		IsCovered:      l.IsCovered,
		IsExpired:      l.IsExpired,
		ExpiredAt:      l.ExpiredAt,
		CreatedAt:      l.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	l.ID = m.ID
	return nil
}

func (r *loanRepository) Get(ctx context.Context, id int64) (*loan.Loan, error) {
	var m Loan
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFoundAs(err, loan.ErrLoanNotFound)
	}
	return mapLoanModelToDomain(&m), nil
}

func (r *loanRepository) GetForUpdate(ctx context.Context, id int64) (*loan.Loan, error) {
	var m Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, notFoundAs(err, loan.ErrLoanNotFound)
	}
	return mapLoanModelToDomain(&m), nil
}

func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	res := r.db.WithContext(ctx).Model(&Loan{}).Where("id = ?", l.ID).Updates(map[string]any{
		"amount_expected": l.AmountExpected,
		"amount_in":       l.AmountIn,
		"is_covered":      l.IsCovered,
		"is_expired":      l.IsExpired,
	})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

func (r *loanRepository) ListByAccount(ctx context.Context, accountID int64) ([]*loan.Loan, error) {
	var ms []Loan
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("id").Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapLoans(ms), nil
}

func (r *loanRepository) ListByUser(ctx context.Context, userID int64) ([]*loan.Loan, error) {
	var ms []Loan
	err := r.db.WithContext(ctx).
		Select("loans.*").
		Joins("JOIN accounts ON accounts.id = loans.account_id").
		Where("accounts.user_id = ?", userID).
		Order("loans.id").
		Find(&ms).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapLoans(ms), nil
}

func (r *loanRepository) CreateCompensation(ctx context.Context, c *loan.Compensation) error {
	m := LoanCompensation{LoanID: c.LoanID, Amount: c.Amount, CreatedAt: c.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	c.ID = m.ID
	return nil
}
