package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/handlers/identityctx"
	"github.com/nkiryanov/insightboard/internal/handlers/render"
	"github.com/nkiryanov/insightboard/internal/logger"
	"github.com/nkiryanov/insightboard/internal/models"
	"github.com/nkiryanov/insightboard/internal/service/dashboard"
)

type dashboardService interface {
	Create(ctx context.Context, userID uuid.UUID, name string, layout, settings json.RawMessage) (models.Dashboard, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Dashboard, error)
	Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.Dashboard, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, params dashboard.UpdateParams) (models.Dashboard, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type dashboardResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Layout    json.RawMessage `json:"layout"`
	Settings  json.RawMessage `json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func newDashboardResponse(d models.Dashboard) dashboardResponse {
	return dashboardResponse{
		ID:        d.ID,
		Name:      d.Name,
		Layout:    d.Layout,
		Settings:  d.Settings,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// dashboardID reads the id path value. Writes 404 and returns false on a
// malformed id, an unparsable id can never match an existing dashboard.
func dashboardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.Error(w, "Dashboard not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func handleCreateDashboard(svc dashboardService, l logger.Logger) http.Handler {
	type request struct {
		Name     string          `json:"name" validate:"required,max=120"`
		Layout   json.RawMessage `json:"layout"`
		Settings json.RawMessage `json:"settings"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityctx.FromContext(r.Context())

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		created, err := svc.Create(r.Context(), identity.UserID, data.Name, data.Layout, data.Settings)
		if err != nil {
			l.Error("failed to create dashboard", "error", err)
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, newDashboardResponse(created), http.StatusCreated)
	})
}

func handleListDashboards(svc dashboardService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityctx.FromContext(r.Context())

		dashboards, err := svc.List(r.Context(), identity.UserID)
		if err != nil {
			l.Error("failed to list dashboards", "error", err)
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]dashboardResponse, 0, len(dashboards))
		for _, d := range dashboards {
			response = append(response, newDashboardResponse(d))
		}
		render.JSON(w, response)
	})
}

func handleGetDashboard(svc dashboardService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityctx.FromContext(r.Context())

		id, ok := dashboardID(w, r)
		if !ok {
			return
		}

		d, err := svc.Get(r.Context(), id, identity.UserID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrDashboardNotFound):
				render.Error(w, "Dashboard not found", http.StatusNotFound)
			default:
				l.Error("failed to get dashboard", "error", err)
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newDashboardResponse(d))
	})
}

func handleUpdateDashboard(svc dashboardService, l logger.Logger) http.Handler {
	type request struct {
		Name     *string         `json:"name" validate:"omitempty,min=1,max=120"`
		Layout   json.RawMessage `json:"layout"`
		Settings json.RawMessage `json:"settings"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityctx.FromContext(r.Context())

		id, ok := dashboardID(w, r)
		if !ok {
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		updated, err := svc.Update(r.Context(), id, identity.UserID, dashboard.UpdateParams{
			Name:     data.Name,
			Layout:   data.Layout,
			Settings: data.Settings,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrDashboardNotFound):
				render.Error(w, "Dashboard not found", http.StatusNotFound)
			default:
				l.Error("failed to update dashboard", "error", err)
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newDashboardResponse(updated))
	})
}

func handleDeleteDashboard(svc dashboardService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityctx.FromContext(r.Context())

		id, ok := dashboardID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id, identity.UserID); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrDashboardNotFound):
				render.Error(w, "Dashboard not found", http.StatusNotFound)
			default:
				l.Error("failed to delete dashboard", "error", err)
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
