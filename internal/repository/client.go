package repository

import (
	"context"

	"contabil/internal/model"
)

// ClientRepository defines data access for bookkeeping clients.
// No business logic here — strictly persistence operations.
type ClientRepository interface {
	// Create inserts a new client record and returns the stored row.
	Create(ctx context.Context, c *model.Client) (*model.Client, error)

	// FindByID returns a client by its ID.
	FindByID(ctx context.Context, id string) (*model.Client, error)

	// List returns the clients owned by userID ordered by name. A non-empty
	// search matches name, email or document (case-insensitive contains).
	List(ctx context.Context, userID, search string) ([]model.Client, error)

	// Update rewrites a client row and returns the stored result.
	Update(ctx context.Context, c *model.Client) (*model.Client, error)

	// Delete removes a client by ID.
	Delete(ctx context.Context, id string) error
}
