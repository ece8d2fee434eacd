package postgres

import (
	"context"
	"database/sql"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING username, password_hash, role, created_at
	`
	row := r.db.QueryRowContext(ctx, q, user.Username, user.PasswordHash, user.Role)
	var out model.User
	if err := row.Scan(&out.Username, &out.PasswordHash, &out.Role, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByUsername fetches a single user by username.
func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
		SELECT username, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`
	row := r.db.QueryRowContext(ctx, q, username)
	var u model.User
	if err := row.Scan(&u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update rewrites the mutable columns of an existing user.
func (r *UserPostgres) Update(ctx context.Context, user *model.User) error {
	const q = `
		UPDATE users
		SET password_hash = $2, role = $3
		WHERE username = $1
	`
	res, err := r.db.ExecContext(ctx, q, user.Username, user.PasswordHash, user.Role)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a user by username.
func (r *UserPostgres) Delete(ctx context.Context, username string) error {
	const q = `DELETE FROM users WHERE username = $1`
	res, err := r.db.ExecContext(ctx, q, username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
