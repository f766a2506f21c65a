package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nkiryanov/insightboard/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, email string, passwordHash string) (models.User, error)

	// Get user by it's id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type CreateDashboardParams struct {
	UserID   uuid.UUID
	Name     string
	Layout   json.RawMessage
	Settings json.RawMessage
}

type UpdateDashboardParams struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Layout   json.RawMessage
	Settings json.RawMessage
}

// Dashboard repository interface
// Every query is scoped by owner: a dashboard that exists but belongs to
// another user must be reported as apperrors.ErrDashboardNotFound
type DashboardRepo interface {
	Create(ctx context.Context, params CreateDashboardParams) (models.Dashboard, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Dashboard, error)
	Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.Dashboard, error)
	Update(ctx context.Context, params UpdateDashboardParams) (models.Dashboard, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// Storage aggregates all repositories
type Storage interface {
	User() UserRepo
	Dashboard() DashboardRepo
}
