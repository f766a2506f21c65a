package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is what the auth middleware yields to handlers after token
// verification. Derived from token claims only, never persisted.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
