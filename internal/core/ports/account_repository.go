package ports

import (
	"context"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
)

// UserRepository defines the persistence contract for login identities.
type UserRepository interface {
	Add(ctx context.Context, user *account.User) error
	Get(ctx context.Context, id kernel.UUID) (*account.User, error)
	GetByEmail(ctx context.Context, email string) (*account.User, error)
}

// EmployeeRepository reads employee profiles.
type EmployeeRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*account.Employee, error)
	GetByUserID(ctx context.Context, userID kernel.UUID) (*account.Employee, error)
	ListActive(ctx context.Context) ([]*account.Employee, error)
}

// PartnerRepository reads partner profiles.
type PartnerRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*account.Partner, error)
	GetByUserID(ctx context.Context, userID kernel.UUID) (*account.Partner, error)
}

// DeviceTokenRepository stores push tokens of users' devices.
type DeviceTokenRepository interface {
	// Save registers token for the user; saving a known token is a no-op.
	Save(ctx context.Context, userID kernel.UUID, role account.Role, token string) error
}
