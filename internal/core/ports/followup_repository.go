package ports

import (
	"context"

	"logistics/internal/core/domain/model/followup"
)

// FollowUpRepository persists what a cancellation leaves behind.
type FollowUpRepository interface {
	AddTask(ctx context.Context, task *followup.Task) error
	AddCancellationCause(ctx context.Context, cause *followup.CancellationCause) error
}
