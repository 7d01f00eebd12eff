package repository

import (
	"context"

	"contabil/internal/model"
)

// DocumentRepository defines data access for client document metadata using
// SQL queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row
	// (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByClient returns a paginated list of a client's documents, newest
	// first, and the total row count.
	ListByClient(ctx context.Context, clientID string, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
