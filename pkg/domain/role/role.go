// Package role defines the flat capability ladder used for authorization.
package role

import (
	"fmt"

	"github.com/amirasaad/backoffice/pkg/domain"
)

// ErrInsufficientRole is returned when the caller's role is below the one
// an operation needs.
var ErrInsufficientRole = fmt.Errorf("%w: insufficient role", domain.ErrForbidden)

// Role is an ordered capability level. A higher role includes every
// capability of the lower ones.
type Role uint8

const (
	// None is an unknown or inactive caller.
	None Role = iota
	// Active is an activated user.
	Active
	// Teller is staff of a specific bank.
	Teller
	// Superuser may do anything.
	Superuser
)

var names = [...]string{
	None:      "none",
	Active:    "active",
	Teller:    "teller",
	Superuser: "superuser",
}

func (r Role) String() string {
	if int(r) < len(names) {
		return names[r]
	}
	return "unknown"
}

// Allows reports whether r grants at least the capabilities of required.
func (r Role) Allows(required Role) bool {
	return r >= required
}

// Subject is the minimal view of a user needed to resolve a role.
type Subject struct {
	IsActive    bool
	IsSuperuser bool
	// IsTeller is true when the user is a teller of the bank being acted on.
	IsTeller bool
}

// Resolve computes the effective role of s. An inactive user has no role,
// superuser flag or not.
func Resolve(s Subject) Role {
	switch {
	case !s.IsActive:
		return None
	case s.IsSuperuser:
		return Superuser
	case s.IsTeller:
		return Teller
	default:
		return Active
	}
}

// Require returns ErrInsufficientRole unless have allows need.
func Require(have, need Role) error {
	if !have.Allows(need) {
		return fmt.Errorf("%w: %s required, have %s", ErrInsufficientRole, need, have)
	}
	return nil
}
