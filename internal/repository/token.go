package repository

import (
	"context"

	"docvault/internal/model"
)

// TokenRepository defines data access for issued bearer tokens.
// Rows hold token digests, never token values.
type TokenRepository interface {
	// Create persists a newly issued token.
	Create(ctx context.Context, token *model.Token) error

	// FindByDigest returns the token row for a digest, sql.ErrNoRows if absent.
	FindByDigest(ctx context.Context, digest string) (*model.Token, error)

	// DeleteByDigest removes a token. Deleting an absent digest is not an error.
	DeleteByDigest(ctx context.Context, digest string) error
}
