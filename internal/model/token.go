package model

import "time"

// Token is the persisted side of an opaque bearer credential.
// Only the SHA-256 digest of the token value is stored, so a leaked table
// cannot be replayed against the API. ExpiresAt is nil for non-expiring tokens.
type Token struct {
	Digest    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the token has an expiry in the past.
func (t *Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
