package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// TokenPostgres is a PostgreSQL implementation of repository.TokenRepository.
type TokenPostgres struct {
	db *sql.DB
}

// NewTokenPostgres creates a new TokenPostgres repository.
func NewTokenPostgres(db *sql.DB) *TokenPostgres {
	return &TokenPostgres{db: db}
}

var _ repository.TokenRepository = (*TokenPostgres)(nil)

// Create persists a newly issued token digest.
func (r *TokenPostgres) Create(ctx context.Context, token *model.Token) error {
	const q = `
		INSERT INTO tokens (digest, username, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, token.Digest, token.Username, token.IssuedAt, token.ExpiresAt)
	return err
}

// FindByDigest fetches a token row by digest.
func (r *TokenPostgres) FindByDigest(ctx context.Context, digest string) (*model.Token, error) {
	const q = `
		SELECT digest, username, issued_at, expires_at
		FROM tokens
		WHERE digest = $1
	`
	row := r.db.QueryRowContext(ctx, q, digest)
	var t model.Token
	if err := row.Scan(&t.Digest, &t.Username, &t.IssuedAt, &t.ExpiresAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByDigest removes a token. Absent digests are not an error, which makes
// revocation idempotent.
func (r *TokenPostgres) DeleteByDigest(ctx context.Context, digest string) error {
	const q = `DELETE FROM tokens WHERE digest = $1`
	res, err := r.db.ExecContext(ctx, q, digest)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
