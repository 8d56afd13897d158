package driverrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormDeliveryPersonRepository struct {
	db *gorm.DB
}

func NewGormDeliveryPersonRepository(db *gorm.DB) *GormDeliveryPersonRepository {
	return &GormDeliveryPersonRepository{db: db}
}

func (r *GormDeliveryPersonRepository) Add(ctx context.Context, dp *driver.DeliveryPerson) error {
	if err := dp.Validate(); err != nil {
		return err
	}

	dto := fromDomain(dp)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("insert delivery person", err)
	}
	return nil
}

func (r *GormDeliveryPersonRepository) Update(ctx context.Context, dp *driver.DeliveryPerson) error {
	if err := dp.Validate(); err != nil {
		return err
	}

	dto := fromDomain(dp)
	result := r.db.WithContext(ctx).Model(&DeliveryPersonDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update delivery person", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery_person", dp.ID().String())
	}
	return nil
}

func (r *GormDeliveryPersonRepository) Get(ctx context.Context, id kernel.UUID) (*driver.DeliveryPerson, error) {
	return r.first(r.db.WithContext(ctx), "id", id)
}

func (r *GormDeliveryPersonRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*driver.DeliveryPerson, error) {
	return r.first(r.locking(ctx), "id", id)
}

func (r *GormDeliveryPersonRepository) GetByUserID(
	ctx context.Context,
	userID kernel.UUID,
) (*driver.DeliveryPerson, error) {
	return r.first(r.db.WithContext(ctx), "user_id", userID)
}

func (r *GormDeliveryPersonRepository) GetByUserIDForUpdate(
	ctx context.Context,
	userID kernel.UUID,
) (*driver.DeliveryPerson, error) {
	return r.first(r.locking(ctx), "user_id", userID)
}

// DisableAtOrBelow marks every available driver whose balance is at or below floor
// as unavailable and returns how many were changed.
func (r *GormDeliveryPersonRepository) DisableAtOrBelow(ctx context.Context, floor decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).Model(&DeliveryPersonDTO{}).
		Where("is_available AND balance <= ?", floor).
		Update("is_available", false)
	if result.Error != nil {
		return 0, errs.NewPersistenceError("disable delivery persons", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormDeliveryPersonRepository) locking(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *GormDeliveryPersonRepository) first(db *gorm.DB, column string, id kernel.UUID) (*driver.DeliveryPerson, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPersonDTO
	if err := db.First(&dto, column+" = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery_person", id.String())
		}
		return nil, errs.NewPersistenceError("select delivery person", err)
	}

	return toDomain(dto)
}
