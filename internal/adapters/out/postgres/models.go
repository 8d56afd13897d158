package postgres

import (
	"logistics/internal/adapters/out/postgres/accountrepo"
	"logistics/internal/adapters/out/postgres/clientrepo"
	"logistics/internal/adapters/out/postgres/driverrepo"
	"logistics/internal/adapters/out/postgres/followuprepo"
	"logistics/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Models lists every table of a tenant database, in creation order.
func Models() []any {
	return []any{
		&accountrepo.UserDTO{},
		&accountrepo.EmployeeDTO{},
		&accountrepo.PartnerDTO{},
		&accountrepo.DeviceTokenDTO{},
		&clientrepo.ClientDTO{},
		&driverrepo.DeliveryPersonDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ActionDTO{},
		&followuprepo.TaskDTO{},
		&followuprepo.CancellationCauseDTO{},
	}
}

// Migrate creates or updates the schema of one tenant database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
