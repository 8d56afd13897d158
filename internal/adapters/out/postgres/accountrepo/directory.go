package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/actor"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dbResolver interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// ActorResolver turns the user id and role of an authenticated request into the
// identity the commands act as. The role claimed by the token must still match the
// stored user.
type ActorResolver struct {
	db dbResolver
}

func NewActorResolver(db dbResolver) *ActorResolver {
	return &ActorResolver{db: db}
}

func (r *ActorResolver) Resolve(ctx context.Context, userID kernel.UUID, role account.Role) (actor.Identity, error) {
	db, err := r.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	var stored string
	err = db.Raw(`SELECT role FROM users WHERE id = ?`, userID.Bytes()).Row().Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewUnauthorizedError("resolve actor", "unknown user")
	}
	if err != nil {
		return nil, errs.NewPersistenceError("select user role", err)
	}
	if stored != role.String() {
		return nil, errs.NewUnauthorizedError("resolve actor", "role does not match")
	}

	switch role {
	case account.RoleAdmin:
		return actor.Admin{User: userID}, nil
	case account.RolePartner:
		id, name, err := profile(db, "SELECT id, name FROM partners WHERE user_id = ?", userID)
		if err != nil {
			return nil, err
		}
		return actor.Partner{User: userID, PartnerID: id, Name: name}, nil
	case account.RoleEmployee:
		id, name, err := profile(db, "SELECT id, name FROM employees WHERE user_id = ? AND status = 'active'", userID)
		if err != nil {
			return nil, err
		}
		return actor.Employee{User: userID, EmployeeID: id, Name: name}, nil
	case account.RoleDeliveryPerson:
		id, name, err := profile(db, "SELECT id, name FROM delivery_persons WHERE user_id = ?", userID)
		if err != nil {
			return nil, err
		}
		return actor.DeliveryPerson{User: userID, DeliveryPersonID: id, Name: name}, nil
	default:
		return nil, errs.NewUnauthorizedError("resolve actor", "unknown role "+role.String())
	}
}

func profile(db *gorm.DB, query string, userID kernel.UUID) (kernel.UUID, string, error) {
	var (
		raw  uuid.UUID
		name string
	)
	err := db.Raw(query, userID.Bytes()).Row().Scan(&raw, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.UUID{}, "", errs.NewUnauthorizedError("resolve actor", "no profile for user")
	}
	if err != nil {
		return kernel.UUID{}, "", errs.NewPersistenceError("select profile", err)
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, "", err
	}
	return id, name, nil
}

// TokenDirectory answers "which devices should hear about this" for the
// notification dispatcher.
type TokenDirectory struct {
	db dbResolver
}

func NewTokenDirectory(db dbResolver) *TokenDirectory {
	return &TokenDirectory{db: db}
}

func (d *TokenDirectory) TokensForAvailableDrivers(ctx context.Context, exclude ...kernel.UUID) ([]string, error) {
	return d.pluck(ctx, func(q *gorm.DB) *gorm.DB {
		q = q.Joins("JOIN delivery_persons d ON d.user_id = t.user_id").Where("d.is_available")
		if len(exclude) > 0 {
			ids := make([]uuid.UUID, 0, len(exclude))
			for _, id := range exclude {
				ids = append(ids, id.Bytes())
			}
			q = q.Where("d.id NOT IN ?", ids)
		}
		return q
	})
}

func (d *TokenDirectory) TokensForAdmins(ctx context.Context) ([]string, error) {
	return d.pluck(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("t.role = ?", account.RoleAdmin.String())
	})
}

func (d *TokenDirectory) TokensForEmployee(ctx context.Context, employeeID kernel.UUID) ([]string, error) {
	return d.pluck(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN employees e ON e.user_id = t.user_id").Where("e.id = ?", employeeID.Bytes())
	})
}

func (d *TokenDirectory) pluck(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]string, error) {
	db, err := d.db.DB(ctx)
	if err != nil {
		return nil, err
	}

	var tokens []string
	err = db.WithContext(ctx).Table("users_tokens AS t").Scopes(scope).Distinct().Pluck("t.token", &tokens).Error
	if err != nil {
		return nil, errs.NewPersistenceError("select device tokens", err)
	}
	return tokens, nil
}
