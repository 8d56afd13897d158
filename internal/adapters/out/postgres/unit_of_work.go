// Package postgres implements the Unit of Work over GORM.
//
// A unit of work spans exactly one database transaction on the database of the
// tenant carried by the context passed to Begin. Repositories handed out by the
// unit of work are bound to that transaction, so row locks taken through
// GetForUpdate are held until Commit or Rollback.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// mutate o ...
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op returning gorm.ErrInvalidTransaction,
// which is why the deferred call ignores its result.
package postgres

import (
	"context"

	"logistics/internal/adapters/out/postgres/accountrepo"
	"logistics/internal/adapters/out/postgres/clientrepo"
	"logistics/internal/adapters/out/postgres/driverrepo"
	"logistics/internal/adapters/out/postgres/followuprepo"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type dbResolver interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// GormUnitOfWorkFactory creates one unit of work per business operation.
//
// Example:
//
//	registry, _ := tenancy.NewRegistry(tenants, tenancy.OpenPostgres)
//	factory := NewGormUnitOfWorkFactory(registry)
type GormUnitOfWorkFactory struct {
	db dbResolver
}

func NewGormUnitOfWorkFactory(db dbResolver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{resolver: f.db}
}

// GormUnitOfWork is not safe for concurrent use; every goroutine creates its own.
type GormUnitOfWork struct {
	resolver dbResolver
	tx       *gorm.DB
}

// Begin resolves the tenant database from ctx and opens a transaction on it.
// Calling Begin on an active unit of work does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	db, err := uow.resolver.DB(ctx)
	if err != nil {
		return err
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewPersistenceError("begin transaction", tx.Error)
	}
	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return errs.NewPersistenceError("commit transaction", err)
	}
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// session returns the active transaction. Repositories must be requested after Begin.
func (uow *GormUnitOfWork) session() *gorm.DB {
	return uow.tx
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.session())
}

func (uow *GormUnitOfWork) ActionRepository() ports.ActionRepository {
	return orderrepo.NewGormActionRepository(uow.session())
}

func (uow *GormUnitOfWork) DeliveryPersonRepository() ports.DeliveryPersonRepository {
	return driverrepo.NewGormDeliveryPersonRepository(uow.session())
}

func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.session())
}

func (uow *GormUnitOfWork) FollowUpRepository() ports.FollowUpRepository {
	return followuprepo.NewGormFollowUpRepository(uow.session())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return accountrepo.NewGormUserRepository(uow.session())
}

func (uow *GormUnitOfWork) EmployeeRepository() ports.EmployeeRepository {
	return accountrepo.NewGormEmployeeRepository(uow.session())
}

func (uow *GormUnitOfWork) PartnerRepository() ports.PartnerRepository {
	return accountrepo.NewGormPartnerRepository(uow.session())
}

func (uow *GormUnitOfWork) DeviceTokenRepository() ports.DeviceTokenRepository {
	return accountrepo.NewGormDeviceTokenRepository(uow.session())
}
