package models

import (
	"time"
)

// IssuedToken is a signed access token returned on register or login
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
