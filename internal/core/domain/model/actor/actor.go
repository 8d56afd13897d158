// Package actor models the authenticated caller of an operation as a closed set of
// identities. The identity is resolved once per request and travels in the context.
package actor

import (
	"context"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
)

// Identity is implemented by Admin, Partner, Employee and DeliveryPerson only.
type Identity interface {
	UserID() kernel.UUID
	Role() account.Role
	// Label is the human readable actor name used in audit details.
	Label() string
	sealed()
}

type Admin struct {
	User kernel.UUID
}

func (a Admin) UserID() kernel.UUID { return a.User }
func (a Admin) Role() account.Role  { return account.RoleAdmin }
func (a Admin) Label() string       { return "Admin" }
func (Admin) sealed()               {}

type Partner struct {
	User      kernel.UUID
	PartnerID kernel.UUID
	Name      string
}

func (p Partner) UserID() kernel.UUID { return p.User }
func (p Partner) Role() account.Role  { return account.RolePartner }
func (p Partner) Label() string       { return "Partner - " + p.Name }
func (Partner) sealed()               {}

type Employee struct {
	User       kernel.UUID
	EmployeeID kernel.UUID
	Name       string
}

func (e Employee) UserID() kernel.UUID { return e.User }
func (e Employee) Role() account.Role  { return account.RoleEmployee }
func (e Employee) Label() string       { return "Employee - " + e.Name }
func (Employee) sealed()               {}

type DeliveryPerson struct {
	User             kernel.UUID
	DeliveryPersonID kernel.UUID
	Name             string
}

func (d DeliveryPerson) UserID() kernel.UUID { return d.User }
func (d DeliveryPerson) Role() account.Role  { return account.RoleDeliveryPerson }
func (d DeliveryPerson) Label() string       { return "Driver - " + d.Name }
func (DeliveryPerson) sealed()               {}

// IsStaff reports whether the identity may manage orders on behalf of others.
func IsStaff(id Identity) bool {
	switch id.(type) {
	case Admin, Employee:
		return true
	default:
		return false
	}
}

type identityKey struct{}

// WithIdentity stores the resolved identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id != nil
}
