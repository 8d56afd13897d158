package followuprepo

import (
	"time"

	"logistics/internal/core/domain/model/followup"

	"github.com/google/uuid"
)

type TaskDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedEmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:varchar(16);not null"`
	CreatedAt          time.Time
}

func (TaskDTO) TableName() string {
	return "tasks"
}

type CancellationCauseDTO struct {
	OrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Cause   string    `gorm:"type:varchar(255);not null"`
}

func (CancellationCauseDTO) TableName() string {
	return "cancellation_causes"
}

func taskFromDomain(t *followup.Task) TaskDTO {
	return TaskDTO{
		ID:                 t.ID().Bytes(),
		OrderID:            t.OrderID().Bytes(),
		AssignedEmployeeID: t.AssignedEmployeeID().Bytes(),
		Status:             string(t.Status()),
	}
}

func causeFromDomain(c *followup.CancellationCause) CancellationCauseDTO {
	return CancellationCauseDTO{OrderID: c.OrderID().Bytes(), Cause: c.Cause()}
}
