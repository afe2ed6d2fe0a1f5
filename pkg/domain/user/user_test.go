package user_test

import (
	"testing"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := user.New("  Alice ", "alice@example.com", "+998 (90) 123-45-67", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "+998901234567", u.Phone)
	assert.False(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.NotEqual(t, "password123", u.HashedPassword)
	assert.True(t, u.CheckPassword("password123"))
	assert.False(t, u.CheckPassword("password124"))
}

func TestNew_NormalizesEmail(t *testing.T) {
	u, err := user.New("Alice", "  Alice@Example.COM ", "+998901234567", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "alice@example.com", user.NormalizeEmail("ALICE@example.com"))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		phone    string
		password string
		want     error
	}{
		{"empty name", " ", "a@example.com", "+998901234567", "password123", user.ErrInvalidName},
		{"bad email", "Bob", "bob", "+998901234567", "password123", user.ErrInvalidEmail},
		{"short phone", "Bob", "bob@example.com", "+99890123", "password123", user.ErrPhoneLength},
		{"foreign phone", "Bob", "bob@example.com", "+14155552671x", "password123", user.ErrPhoneLength},
		{"not local", "Bob", "bob@example.com", "+447911123456", "password123", user.ErrPhoneNotLocal},
		{"short password", "Bob", "bob@example.com", "+998901234567", "short", user.ErrInvalidPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := user.New(tt.userName, tt.email, tt.phone, tt.password)
			require.Error(t, err)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestActivate(t *testing.T) {
	u, err := user.New("Alice", "alice@example.com", "+998901234567", "password123")
	require.NoError(t, err)
	before := u.UpdatedAt
	u.Activate()
	assert.True(t, u.IsActive)
	assert.False(t, u.UpdatedAt.Before(before))
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, user.ErrUserNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, user.ErrUserInactive, domain.ErrForbidden)
	assert.ErrorIs(t, user.ErrDuplicatePhone, domain.ErrAlreadyExists)
	assert.ErrorIs(t, user.ErrUserUnauthorized, domain.ErrUnauthorized)
}
