package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Any structural, signature or expiry problem with an access token.
	// Deliberately a single sentinel: callers must not be able to tell
	// which check failed.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrDashboardNotFound = errors.New("dashboard not found")
)

// ExternalAPIError is returned when an upstream data provider fails:
// transport error or non-2xx response. Responses that produced this error
// are never cached.
type ExternalAPIError struct {
	Provider   string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *ExternalAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}

func NewExternalAPIError(provider string, statusCode int, err error) *ExternalAPIError {
	return &ExternalAPIError{
		Provider:   provider,
		StatusCode: statusCode,
		Err:        err,
	}
}
