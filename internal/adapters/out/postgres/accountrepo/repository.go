package accountrepo

import (
	"context"
	"errors"
	"strings"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, user *account.User) error {
	dto := userFromDomain(user)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("insert user", err)
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*account.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "user", id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.first(ctx, "email", email, "email = ?", email)
}

func (r *GormUserRepository) first(ctx context.Context, param string, id any, query string, arg any) (*account.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		return nil, errs.NewPersistenceError("select user", err)
	}
	return userToDomain(dto)
}

// GormEmployeeRepository reads employees; they are managed outside this service.
type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Get(ctx context.Context, id kernel.UUID) (*account.Employee, error) {
	return r.first(ctx, "id", id)
}

func (r *GormEmployeeRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*account.Employee, error) {
	return r.first(ctx, "user_id", userID)
}

func (r *GormEmployeeRepository) ListActive(ctx context.Context) ([]*account.Employee, error) {
	var dtos []EmployeeDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", string(account.EmployeeActive)).
		Order("name, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("select employees", err)
	}

	employees := make([]*account.Employee, 0, len(dtos))
	for _, dto := range dtos {
		e, err := employeeToDomain(dto)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *GormEmployeeRepository) first(ctx context.Context, column string, id kernel.UUID) (*account.Employee, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EmployeeDTO
	if err := r.db.WithContext(ctx).First(&dto, column+" = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("employee", id.String())
		}
		return nil, errs.NewPersistenceError("select employee", err)
	}
	return employeeToDomain(dto)
}

type GormPartnerRepository struct {
	db *gorm.DB
}

func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*account.Partner, error) {
	return r.first(ctx, "id", id)
}

func (r *GormPartnerRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*account.Partner, error) {
	return r.first(ctx, "user_id", userID)
}

func (r *GormPartnerRepository) first(ctx context.Context, column string, id kernel.UUID) (*account.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, column+" = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, errs.NewPersistenceError("select partner", err)
	}
	return partnerToDomain(dto)
}

type GormDeviceTokenRepository struct {
	db *gorm.DB
}

func NewGormDeviceTokenRepository(db *gorm.DB) *GormDeviceTokenRepository {
	return &GormDeviceTokenRepository{db: db}
}

// Save registers the token for the user. Registering the same token twice only
// refreshes its role.
func (r *GormDeviceTokenRepository) Save(ctx context.Context, userID kernel.UUID, role account.Role, token string) error {
	dto := DeviceTokenDTO{UserID: userID.Bytes(), Role: role.String(), Token: token}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceError("save device token", err)
	}
	return nil
}
