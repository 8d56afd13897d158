package followuprepo

import (
	"context"

	"logistics/internal/core/domain/model/followup"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFollowUpRepository stores what a cancellation leaves behind: the cause and
// the follow-up task of the employee in charge.
type GormFollowUpRepository struct {
	db *gorm.DB
}

func NewGormFollowUpRepository(db *gorm.DB) *GormFollowUpRepository {
	return &GormFollowUpRepository{db: db}
}

func (r *GormFollowUpRepository) AddTask(ctx context.Context, task *followup.Task) error {
	dto := taskFromDomain(task)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("insert task", err)
	}
	return nil
}

func (r *GormFollowUpRepository) AddCancellationCause(ctx context.Context, cause *followup.CancellationCause) error {
	dto := causeFromDomain(cause)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("insert cancellation cause", err)
	}
	return nil
}
