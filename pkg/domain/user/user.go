package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amirasaad/backoffice/pkg/domain"
	"github.com/amirasaad/backoffice/pkg/utils"
	"github.com/nyaruka/phonenumbers"
)

const (
	// PhoneLength is the length of a normalized phone number, "+998" included.
	PhoneLength = 13
	// PhonePrefix is the country prefix every local number carries.
	PhonePrefix = "+998"
	// MaxNameLength bounds the display name.
	MaxNameLength = 100
	// MinPasswordLength bounds the plain password on registration.
	MinPasswordLength = 8
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrNotFound)
	// ErrUserUnauthorized is returned when credentials do not match.
	ErrUserUnauthorized = fmt.Errorf("%w: user unauthorized", domain.ErrUnauthorized)
	// ErrUserInactive is returned when an inactive user attempts an action
	// reserved for activated users.
	ErrUserInactive = fmt.Errorf("%w: user is not active", domain.ErrForbidden)
	// ErrDuplicatePhone is returned when the phone number is already taken.
	ErrDuplicatePhone = fmt.Errorf("%w: user with this phone number already exists", domain.ErrAlreadyExists)
	// ErrUserHasAccounts is returned when deleting a user that still owns accounts.
	ErrUserHasAccounts = fmt.Errorf("%w: user still owns accounts", domain.ErrAlreadyExists)
	// ErrDuplicateEmail is returned when the email is already taken.
	ErrDuplicateEmail = fmt.Errorf("%w: user with this email already exists", domain.ErrAlreadyExists)

	ErrInvalidName     = fmt.Errorf("%w: name must be 1-%d characters", domain.ErrValidation, MaxNameLength)
	ErrInvalidEmail    = fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	ErrInvalidPassword = fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	ErrPhoneLength     = fmt.Errorf("%w: phone number must be %d characters long", domain.ErrValidation, PhoneLength)
	ErrPhoneNotLocal   = fmt.Errorf("%w: phone number is not local", domain.ErrValidation)
	ErrPhoneInvalid    = fmt.Errorf("%w: phone number is invalid", domain.ErrValidation)
	ErrInvalidCode     = fmt.Errorf("%w: activation code is invalid or expired", domain.ErrValidation)
)

// User represents a registered person. Users start inactive and are
// activated with an emailed code.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone_number"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	AccountsNumber int       `json:"accounts_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// New validates the registration data and returns an inactive user with a
// hashed password, a lowercased email and a normalized phone number.
func New(name, email, phone, password string) (*User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrInvalidPassword
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	return &User{
		Name:           strings.TrimSpace(name),
		Email:          email,
		Phone:          normalized,
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Activate marks the user as active.
func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now().UTC()
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.HashedPassword)
}

// ValidateName checks the display name length.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

// NormalizeEmail trims and lowercases an email address. Stored emails are
// always normalized, so lookups must normalize too.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the email address syntax.
func ValidateEmail(email string) error {
	if !utils.IsEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

var phoneNoise = regexp.MustCompile(`[^0-9+]+`)

// NormalizePhone strips everything but digits and '+', then requires a
// valid 13 character local number such as "+998901234567".
func NormalizePhone(raw string) (string, error) {
	clean := phoneNoise.ReplaceAllString(raw, "")
	if len(clean) != PhoneLength {
		return "", ErrPhoneLength
	}
	if !strings.HasPrefix(clean, PhonePrefix) {
		return "", ErrPhoneNotLocal
	}
	num, err := phonenumbers.Parse(clean, "UZ")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrPhoneInvalid
	}
	return clean, nil
}
