package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Dashboard struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Layout    json.RawMessage
	Settings  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}
