package model

import "time"

// Roles assignable to a user. Admins may manage users and delete documents.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account that can authenticate and own documents.
// PasswordHash holds a bcrypt hash and is never serialized or logged.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
