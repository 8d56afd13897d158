package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
)

// Notification is a push message for device tokens.
type Notification struct {
	Title string
	Body  string
	// Link is the relative front-end path opened when the notification is clicked.
	Link string
}

// Notifier delivers a notification to each token. Failures for single recipients
// are logged by the implementation; the returned error only reports failures to
// send at all.
type Notifier interface {
	Send(ctx context.Context, n Notification, tokens []string) error
}

// TokenDirectory resolves notification audiences of the tenant in ctx.
type TokenDirectory interface {
	TokensForAvailableDrivers(ctx context.Context, exclude ...kernel.UUID) ([]string, error)
	TokensForAdmins(ctx context.Context) ([]string, error)
	TokensForEmployee(ctx context.Context, employeeID kernel.UUID) ([]string, error)
}
