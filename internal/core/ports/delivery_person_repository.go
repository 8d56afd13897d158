package ports

import (
	"context"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DeliveryPersonRepository defines the persistence contract for drivers.
// The ForUpdate variants lock the row for the rest of the unit of work.
type DeliveryPersonRepository interface {
	Add(ctx context.Context, dp *driver.DeliveryPerson) error
	Update(ctx context.Context, dp *driver.DeliveryPerson) error
	Get(ctx context.Context, id kernel.UUID) (*driver.DeliveryPerson, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.DeliveryPerson, error)

	// GetByUserID returns ObjectNotFoundError when the user has no driver record.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.DeliveryPerson, error)
	GetByUserIDForUpdate(ctx context.Context, userID kernel.UUID) (*driver.DeliveryPerson, error)

	// DisableAtOrBelow switches availability off for every available driver whose
	// balance is at or below floor and returns the number of rows changed.
	DisableAtOrBelow(ctx context.Context, floor decimal.Decimal) (int64, error)
}
