package model

import "time"

// Document represents a stored file's metadata record.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
// The raw bytes live in object storage under StoragePath; metadata and blob are
// always created and destroyed together.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"-"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}
