package clientrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindOrCreateByPhone inserts the candidate unless a client with the same phone
// exists, then returns the stored row. The first writer's name, address and
// added_by win, so the referrer of a client never changes.
func (r *GormClientRepository) FindOrCreateByPhone(ctx context.Context, candidate *client.Client) (*client.Client, error) {
	db := r.db.WithContext(ctx)

	dto := fromDomain(candidate)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoNothing: true,
	}).Create(&dto).Error
	if err != nil {
		return nil, errs.NewPersistenceError("insert client", err)
	}

	var stored ClientDTO
	if err = db.First(&stored, "phone = ?", candidate.Phone()).Error; err != nil {
		return nil, errs.NewPersistenceError("select client", err)
	}

	return toDomain(stored)
}

func (r *GormClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", id.String())
		}
		return nil, errs.NewPersistenceError("select client", err)
	}

	return toDomain(dto)
}
