package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// UserService covers the admin-gated account provisioning operations.
// The transfer flow itself never mutates users.
type UserService interface {
	// Create provisions a new account. An empty role defaults to "user".
	Create(ctx context.Context, username, password, role string) (*model.User, error)

	// Get returns an account by username.
	Get(ctx context.Context, username string) (*model.User, error)

	// Update replaces the password and/or role of an existing account.
	// At least one of the two must be provided.
	Update(ctx context.Context, username, password, role string) (*model.User, error)

	// Delete removes an account. Tokens issued to it are cascaded away.
	Delete(ctx context.Context, username string) error
}

type userService struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserService constructs a UserService. A bcryptCost of zero uses the
// bcrypt default.
func NewUserService(repo repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

func validRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleUser
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *userService) Create(ctx context.Context, username, password, role string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if role == "" {
		role = model.RoleUser
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username, password, role string) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" && role == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if role != "" && !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if role != "" {
		user.Role = role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
