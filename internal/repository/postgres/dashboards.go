package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/models"
	"github.com/nkiryanov/insightboard/internal/repository"
)

type DashboardRepo struct {
	DB DBTX
}

const createDashboard = `-- name: CreateDashboard
INSERT INTO dashboards (id, user_id, name, layout, settings)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, name, layout, settings, created_at, updated_at
`

func (r *DashboardRepo) Create(ctx context.Context, params repository.CreateDashboardParams) (models.Dashboard, error) {
	rows, _ := r.DB.Query(ctx, createDashboard,
		uuid.New(), params.UserID, params.Name, rawOrNull(params.Layout), rawOrNull(params.Settings),
	)
	dashboard, err := pgx.CollectOneRow(rows, rowToDashboard)
	if err != nil {
		return dashboard, fmt.Errorf("db error: %w", err)
	}

	return dashboard, nil
}

const listDashboardsByUser = `-- name: ListDashboardsByUser
SELECT id, user_id, name, layout, settings, created_at, updated_at FROM dashboards
WHERE user_id = $1
ORDER BY updated_at DESC
`

func (r *DashboardRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Dashboard, error) {
	rows, _ := r.DB.Query(ctx, listDashboardsByUser, userID)
	dashboards, err := pgx.CollectRows(rows, rowToDashboard)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dashboards, nil
}

const getDashboard = `-- name: GetDashboard
SELECT id, user_id, name, layout, settings, created_at, updated_at FROM dashboards
WHERE id = $1 AND user_id = $2
`

func (r *DashboardRepo) Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.Dashboard, error) {
	rows, _ := r.DB.Query(ctx, getDashboard, id, userID)
	dashboard, err := pgx.CollectOneRow(rows, rowToDashboard)

	switch {
	case err == nil:
		return dashboard, nil
	case errors.Is(err, pgx.ErrNoRows):
		return dashboard, apperrors.ErrDashboardNotFound
	default:
		return dashboard, fmt.Errorf("db error: %w", err)
	}
}

const updateDashboard = `-- name: UpdateDashboard
UPDATE dashboards
SET name = $3, layout = $4, settings = $5, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, name, layout, settings, created_at, updated_at
`

func (r *DashboardRepo) Update(ctx context.Context, params repository.UpdateDashboardParams) (models.Dashboard, error) {
	rows, _ := r.DB.Query(ctx, updateDashboard,
		params.ID, params.UserID, params.Name, rawOrNull(params.Layout), rawOrNull(params.Settings),
	)
	dashboard, err := pgx.CollectOneRow(rows, rowToDashboard)

	switch {
	case err == nil:
		return dashboard, nil
	case errors.Is(err, pgx.ErrNoRows):
		return dashboard, apperrors.ErrDashboardNotFound
	default:
		return dashboard, fmt.Errorf("db error: %w", err)
	}
}

const deleteDashboard = `-- name: DeleteDashboard
DELETE FROM dashboards
WHERE id = $1 AND user_id = $2
`

func (r *DashboardRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteDashboard, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrDashboardNotFound
	}

	return nil
}

func rowToDashboard(row pgx.CollectableRow) (models.Dashboard, error) {
	var d models.Dashboard
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Layout, &d.Settings, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// rawOrNull keeps empty json.RawMessage values from being sent as invalid
// zero length jsonb. Columns are NOT NULL so the JSON null literal is stored.
func rawOrNull(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
