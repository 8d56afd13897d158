package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID              uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID           *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryPersonID    *uuid.UUID `gorm:"type:uuid;index"`
	Status              string     `gorm:"type:varchar(16);not null;index"`
	Request             string     `gorm:"type:text;not null"`
	ClientNotes         string     `gorm:"type:varchar(255);not null;default:''"`
	DriverNotes         string     `gorm:"type:varchar(255);not null;default:''"`
	EmployeeNotes       string     `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt           time.Time  `gorm:"not null;index"`
	DeliveredCanceledAt *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ActionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(16);not null"`
	Details     string    `gorm:"type:text;not null"`
	PerformedAt time.Time `gorm:"not null"`
}

func (ActionDTO) TableName() string {
	return "actions_on_order"
}

func fromDomain(o *order.Order) OrderDTO {
	notes := o.Notes()
	return OrderDTO{
		ID:                  o.ID().Bytes(),
		ClientID:            o.ClientID().Bytes(),
		UserID:              o.CreatorID().Bytes(),
		PartnerID:           kernel.OptionalUUIDToPtr(o.PartnerID()),
		DeliveryPersonID:    kernel.OptionalUUIDToPtr(o.DeliveryPersonID()),
		Status:              o.Status().String(),
		Request:             o.Request(),
		ClientNotes:         notes.Client,
		DriverNotes:         notes.Driver,
		EmployeeNotes:       notes.Employee,
		CreatedAt:           o.CreatedAt(),
		DeliveredCanceledAt: o.DeliveredCanceledAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	creatorID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	partnerID, err := kernel.OptionalUUIDFromPtr(dto.PartnerID)
	if err != nil {
		return nil, err
	}
	deliveryPersonID, err := kernel.OptionalUUIDFromPtr(dto.DeliveryPersonID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		ClientID:            clientID,
		CreatorID:           creatorID,
		PartnerID:           partnerID,
		DeliveryPersonID:    deliveryPersonID,
		Status:              status,
		Request:             dto.Request,
		Notes:               order.Notes{Client: dto.ClientNotes, Driver: dto.DriverNotes, Employee: dto.EmployeeNotes},
		CreatedAt:           dto.CreatedAt,
		DeliveredCanceledAt: dto.DeliveredCanceledAt,
	})
}

func actionFromDomain(a *order.Action) ActionDTO {
	return ActionDTO{
		ID:          a.ID().Bytes(),
		UserID:      a.ActorID().Bytes(),
		OrderID:     a.OrderID().Bytes(),
		Action:      string(a.Tag()),
		Details:     a.Details(),
		PerformedAt: a.PerformedAt(),
	}
}
