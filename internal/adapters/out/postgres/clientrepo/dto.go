package clientrepo

import (
	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ClientDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone   string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Address string    `gorm:"type:varchar(500);not null"`
	AddedBy uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:      c.ID().Bytes(),
		Phone:   c.Phone(),
		Name:    c.Name(),
		Address: c.Address(),
		AddedBy: c.AddedBy().Bytes(),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	addedBy, err := kernel.UUIDFromBytes(dto.AddedBy[:])
	if err != nil {
		return nil, err
	}
	return client.RestoreClient(id, dto.Phone, dto.Name, dto.Address, addedBy)
}
