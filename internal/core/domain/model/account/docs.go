// Package account holds the identities able to log in (User) and the read-mostly
// staff profiles attached to them (Employee, Partner).
package account
