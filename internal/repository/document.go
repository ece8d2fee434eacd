package repository

import (
	"context"

	"docvault/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides required fields (ID, Owner, CreatedAt); returns the stored
	// document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns every document owned by the given username, ordered by
	// creation time ascending. An owner with no documents yields an empty slice.
	ListByOwner(ctx context.Context, owner string) ([]model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
