package account

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// ErrPasswordMismatch is returned by User.CheckPassword.
var ErrPasswordMismatch = errors.New("password does not match")

// User is a login identity.
type User struct {
	id           kernel.UUID
	email        string
	passwordHash string
	role         Role
}

// NewUser hashes the plain password with bcrypt and builds a user.
func NewUser(id kernel.UUID, email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var emailErr, passwordErr error
	if _, err := mail.ParseAddress(email); err != nil {
		emailErr = errs.NewValueIsInvalidErrorWithCause("email", errors.New("must be a valid email address"))
	}
	if len(password) < minPasswordLength {
		passwordErr = errs.NewValueIsInvalidErrorWithCause("password", fmt.Errorf("must be at least %d characters", minPasswordLength))
	}
	_, roleErr := ParseRole(string(role))
	if err := errors.Join(id.Validate(), emailErr, passwordErr, roleErr); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &User{id: id, email: email, passwordHash: string(hash), role: role}, nil
}

// RestoreUser rebuilds a stored user.
func RestoreUser(id kernel.UUID, email, passwordHash string, role Role) (*User, error) {
	_, roleErr := ParseRole(string(role))
	if err := errors.Join(id.Validate(), roleErr); err != nil {
		return nil, err
	}
	return &User{id: id, email: email, passwordHash: passwordHash, role: role}, nil
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }

// CheckPassword compares a plain password against the stored hash.
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
