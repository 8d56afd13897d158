package accountrepo

import (
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(32);not null;index"`
}

func (UserDTO) TableName() string {
	return "users"
}

type EmployeeDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Phone  string    `gorm:"type:varchar(20);not null;default:''"`
	Status string    `gorm:"type:varchar(16);not null;default:'active'"`
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

type PartnerDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Phone  string    `gorm:"type:varchar(20);not null;default:''"`
}

func (PartnerDTO) TableName() string {
	return "partners"
}

type DeviceTokenDTO struct {
	ID     uint      `gorm:"primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_users_tokens_user_token"`
	Role   string    `gorm:"type:varchar(32);not null;index"`
	Token  string    `gorm:"type:varchar(4096);not null;uniqueIndex:idx_users_tokens_user_token"`
}

func (DeviceTokenDTO) TableName() string {
	return "users_tokens"
}

func userFromDomain(u *account.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
	}
}

func userToDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return account.RestoreUser(id, dto.Email, dto.PasswordHash, account.Role(dto.Role))
}

func employeeToDomain(dto EmployeeDTO) (*account.Employee, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return account.RestoreEmployee(id, userID, dto.Name, dto.Phone, account.EmployeeStatus(dto.Status))
}

func partnerToDomain(dto PartnerDTO) (*account.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return account.RestorePartner(id, userID, dto.Name, dto.Phone)
}
