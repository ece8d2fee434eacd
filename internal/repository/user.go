package repository

import (
	"context"

	"docvault/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user row. A duplicate username surfaces the driver's
	// unique-violation error untranslated; the service layer maps it.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByUsername returns a user by username, sql.ErrNoRows if absent.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Update rewrites password hash and role for an existing user.
	// Returns sql.ErrNoRows if the user does not exist.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user by username. Returns sql.ErrNoRows if nothing matched.
	Delete(ctx context.Context, username string) error
}
