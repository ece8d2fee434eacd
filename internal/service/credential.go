package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// tokenBytes is the entropy of an issued token value (256 bits, hex-encoded).
const tokenBytes = 32

// dummyHash is compared against when the username is unknown, so an
// unknown-user login costs the same bcrypt work as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

// CredentialService issues, validates and revokes opaque bearer tokens.
//
// Token values never touch persistent storage: only their SHA-256 digest is
// written, and validation re-derives the digest from the presented value.
type CredentialService interface {
	// Authenticate verifies a username/password pair and returns a fresh token.
	Authenticate(ctx context.Context, username, password string) (string, error)

	// Validate resolves a token to its owning user.
	Validate(ctx context.Context, token string) (*model.User, error)

	// Revoke invalidates a token. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
}

type credentialService struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	tokenTTL time.Duration
}

// NewCredentialService constructs a CredentialService. A tokenTTL of zero
// means issued tokens do not expire.
func NewCredentialService(users repository.UserRepository, tokens repository.TokenRepository, tokenTTL time.Duration) CredentialService {
	return &credentialService{users: users, tokens: tokens, tokenTTL: tokenTTL}
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func digestOf(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *credentialService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	rec := &model.Token{
		Digest:   digestOf(token),
		Username: user.Username,
		IssuedAt: now,
	}
	if s.tokenTTL > 0 {
		exp := now.Add(s.tokenTTL)
		rec.ExpiresAt = &exp
	}

	if err := s.tokens.Create(ctx, rec); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

func (s *credentialService) Validate(ctx context.Context, token string) (*model.User, error) {
	if len(token) != tokenBytes*2 {
		return nil, ErrUnauthorized
	}
	if _, err := hex.DecodeString(token); err != nil {
		return nil, ErrUnauthorized
	}

	rec, err := s.tokens.FindByDigest(ctx, digestOf(token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup token: %w", err)
	}

	if rec.Expired(time.Now().UTC()) {
		// Lazy cleanup; the token is rejected either way.
		_ = s.tokens.DeleteByDigest(ctx, rec.Digest)
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindByUsername(ctx, rec.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Account removed after the token was issued.
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}

func (s *credentialService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.DeleteByDigest(ctx, digestOf(token))
}
