package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nkiryanov/insightboard/internal/models"
	"github.com/nkiryanov/insightboard/internal/repository"
)

// UpdateParams carries a partial update: nil fields keep current values
type UpdateParams struct {
	Name     *string
	Layout   json.RawMessage
	Settings json.RawMessage
}

// DashboardService owns per user dashboard layouts.
// Every operation is scoped to the calling user, a foreign dashboard is
// indistinguishable from a missing one.
type DashboardService struct {
	repo repository.DashboardRepo
}

func NewService(repo repository.DashboardRepo) (*DashboardService, error) {
	if repo == nil {
		return nil, errors.New("dashboard repo must not be nil")
	}

	return &DashboardService{repo: repo}, nil
}

func (s *DashboardService) Create(ctx context.Context, userID uuid.UUID, name string, layout, settings json.RawMessage) (models.Dashboard, error) {
	return s.repo.Create(ctx, repository.CreateDashboardParams{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Layout:   layout,
		Settings: settings,
	})
}

func (s *DashboardService) List(ctx context.Context, userID uuid.UUID) ([]models.Dashboard, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *DashboardService) Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.Dashboard, error) {
	return s.repo.Get(ctx, id, userID)
}

// Update applies a partial update on top of the stored dashboard
func (s *DashboardService) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, params UpdateParams) (models.Dashboard, error) {
	existing, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return models.Dashboard{}, err
	}

	name := existing.Name
	if params.Name != nil {
		name = strings.TrimSpace(*params.Name)
	}

	layout := existing.Layout
	if params.Layout != nil {
		layout = params.Layout
	}

	settings := existing.Settings
	if params.Settings != nil {
		settings = params.Settings
	}

	return s.repo.Update(ctx, repository.UpdateDashboardParams{
		ID:       id,
		UserID:   userID,
		Name:     name,
		Layout:   layout,
		Settings: settings,
	})
}

func (s *DashboardService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
