package models

import (
	"time"
)

// User is an account. Profile content lives in ProfileDocument, keyed by ID.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`

	// Internal only - never returned in JSON
	PasswordHash string `json:"-"`
}
