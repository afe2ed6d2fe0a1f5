package repository

import (
	"context"
	"strings"

	"github.com/amirasaad/backoffice/pkg/domain/bank"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	repo "github.com/amirasaad/backoffice/pkg/repository/bank"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bankRepository struct {
	db *gorm.DB
}

// NewBankRepository creates a bank repository using the provided *gorm.DB.
func NewBankRepository(db *gorm.DB) repo.Repository {
	return &bankRepository{db: db}
}

func (r *bankRepository) Create(ctx context.Context, b *bank.Bank) error {
	m := Bank{ID: b.ID, Name: b.Name, Location: b.Location, CreatedAt: b.CreatedAt}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

func (r *bankRepository) Get(ctx context.Context, id uuid.UUID) (*bank.Bank, error) {
	var m Bank
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, bank.ErrBankNotFound)
	}
	return mapBankModelToDomain(&m), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *bankRepository) List(ctx context.Context, nameFilter string) ([]*bank.Bank, error) {
	q := r.db.WithContext(ctx).Order("name")
	if nameFilter != "" {
		q = q.Where("name ILIKE ?", "%"+likeEscaper.Replace(nameFilter)+"%")
	}
	var ms []Bank
	if err := q.Find(&ms).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*bank.Bank, 0, len(ms))
	for i := range ms {
		out = append(out, mapBankModelToDomain(&ms[i]))
	}
	return out, nil
}

func (r *bankRepository) Update(ctx context.Context, b *bank.Bank) error {
	res := r.db.WithContext(ctx).Model(&Bank{}).Where("id = ?", b.ID).
		Updates(map[string]any{"name": b.Name, "location": b.Location})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return bank.ErrBankNotFound
	}
	return nil
}

func (r *bankRepository) AddMember(ctx context.Context, mb *bank.Membership) error {
	m := BankUser{UserID: mb.UserID, BankID: mb.BankID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	mb.ID = m.ID
	return nil
}

func (r *bankRepository) RemoveMember(ctx context.Context, bankID uuid.UUID, userID int64) error {
	res := r.db.WithContext(ctx).
		Where("bank_id = ? AND user_id = ?", bankID, userID).
		Delete(&BankUser{})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return bank.ErrNotMember
	}
	return nil
}

func (r *bankRepository) ListMembers(ctx context.Context, bankID uuid.UUID) ([]*user.User, error) {
	var ms []User
	err := r.db.WithContext(ctx).
		Joins("JOIN bank_users ON bank_users.user_id = users.id").
		Where("bank_users.bank_id = ?", bankID).
		Order("users.id").
		Find(&ms).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUsers(ms), nil
}

func (r *bankRepository) AddTeller(ctx context.Context, t *bank.Teller) error {
	m := Teller{UserID: t.UserID, BankID: t.BankID}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	t.ID = m.ID
	return nil
}

func (r *bankRepository) GetTellerByUser(ctx context.Context, userID int64) (*bank.Teller, error) {
	var m Teller
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &bank.Teller{ID: m.ID, UserID: m.UserID, BankID: m.BankID}, nil
}

func (r *bankRepository) ListTellers(ctx context.Context, bankID uuid.UUID) ([]*user.User, error) {
	var ms []User
	err := r.db.WithContext(ctx).
		Joins("JOIN tellers ON tellers.user_id = users.id").
		Where("tellers.bank_id = ?", bankID).
		Order("users.id").
		Find(&ms).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUsers(ms), nil
}
