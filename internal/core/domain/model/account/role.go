package account

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Role is the authorization role of a user.
type Role string

const (
	RoleAdmin          Role = "admin"
	RolePartner        Role = "partner"
	RoleEmployee       Role = "employee"
	RoleDeliveryPerson Role = "delivery_person"
)

// ParseRole validates a stored or token-carried role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleAdmin, RolePartner, RoleEmployee, RoleDeliveryPerson:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}

func (r Role) String() string { return string(r) }
