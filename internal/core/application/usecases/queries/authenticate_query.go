package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
)

var (
	ErrAuthenticateQueryIsNotConstructed = errors.New(
		"AuthenticateQuery must be created via NewAuthenticateQuery constructor",
	)

	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthenticateQuery checks login credentials against the users of the current tenant.
type AuthenticateQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateQuery(email, password string) (AuthenticateQuery, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var emailErr, passwordErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return AuthenticateQuery{}, err
	}

	return AuthenticateQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (q AuthenticateQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateQueryIsNotConstructed)
}

type AuthenticatedUser struct {
	UserID kernel.UUID
	Email  string
	Role   account.Role
}

type AuthenticateQueryHandler struct {
	db DBResolver
}

func NewAuthenticateQueryHandler(db DBResolver) AuthenticateQueryHandler {
	return AuthenticateQueryHandler{db: db}
}

func (h AuthenticateQueryHandler) Handle(ctx context.Context, query AuthenticateQuery) (AuthenticatedUser, error) {
	if err := query.Validate(); err != nil {
		return AuthenticatedUser{}, err
	}

	db, err := h.db.DB(ctx)
	if err != nil {
		return AuthenticatedUser{}, err
	}

	var (
		id   uuid.UUID
		hash string
		role string
	)
	err = db.WithContext(ctx).Raw(
		`SELECT id, password_hash, role FROM users WHERE email = ?`,
		query.email,
	).Row().Scan(&id, &hash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return AuthenticatedUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthenticatedUser{}, err
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return AuthenticatedUser{}, err
	}
	user, err := account.RestoreUser(userID, query.email, hash, account.Role(role))
	if err != nil {
		return AuthenticatedUser{}, err
	}
	if err = user.CheckPassword(query.password); err != nil {
		return AuthenticatedUser{}, ErrInvalidCredentials
	}

	return AuthenticatedUser{UserID: user.ID(), Email: user.Email(), Role: user.Role()}, nil
}
