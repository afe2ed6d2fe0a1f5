package repository

import (
	"context"

	"github.com/amirasaad/backoffice/pkg/domain/user"
	repo "github.com/amirasaad/backoffice/pkg/repository/user"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository using the provided *gorm.DB.
func NewUserRepository(db *gorm.DB) repo.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	m := mapUserDomainToModel(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFoundAs(err, user.ErrUserNotFound)
	}
	return mapUserModelToDomain(&m), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, notFoundAs(err, user.ErrUserNotFound)
	}
	return mapUserModelToDomain(&m), nil
}

func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*user.User, error) {
	var m User
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone_number = ?", identity, identity).
		First(&m).Error
	if err != nil {
		return nil, notFoundAs(err, user.ErrUserNotFound)
	}
	return mapUserModelToDomain(&m), nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]*user.User, error) {
	var ms []User
	err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&ms).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return mapUsers(ms), nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"name":            u.Name,
		"email":           u.Email,
		"phone_number":    u.Phone,
		"is_active":       u.IsActive,
		"is_superuser":    u.IsSuperuser,
		"hashed_password": u.HashedPassword,
	})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&User{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return user.ErrUserHasAccounts
		}
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) IncrementAccounts(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		UpdateColumn("accounts_number", gorm.Expr("accounts_number + ?", 1))
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
