package ports

import (
	"context"

	"logistics/internal/core/domain/model/client"
	"logistics/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for clients.
type ClientRepository interface {
	// FindOrCreateByPhone inserts candidate unless a client with the same phone
	// exists, and returns the stored client either way. An existing client keeps
	// its original name, address and referrer.
	FindOrCreateByPhone(ctx context.Context, candidate *client.Client) (*client.Client, error)

	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
}
