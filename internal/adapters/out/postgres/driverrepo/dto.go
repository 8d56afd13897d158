package driverrepo

import (
	"logistics/internal/core/domain/model/driver"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryPersonDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Phone       string          `gorm:"type:varchar(20);not null;default:''"`
	IsAvailable bool            `gorm:"not null;default:false;index"`
	Balance     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Latitude    *float64
	Longitude   *float64
}

func (DeliveryPersonDTO) TableName() string {
	return "delivery_persons"
}

func fromDomain(dp *driver.DeliveryPerson) DeliveryPersonDTO {
	dto := DeliveryPersonDTO{
		ID:          dp.ID().Bytes(),
		UserID:      dp.UserID().Bytes(),
		Name:        dp.Name(),
		Phone:       dp.Phone(),
		IsAvailable: dp.IsAvailable(),
		Balance:     dp.Balance(),
	}
	if loc := dp.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	return dto
}

func toDomain(dto DeliveryPersonDTO) (*driver.DeliveryPerson, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return driver.RestoreDeliveryPerson(id, userID, dto.Name, dto.Phone, dto.IsAvailable, dto.Balance, location)
}
