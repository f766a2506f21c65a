package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/handlers/identityctx"
	"github.com/nkiryanov/insightboard/internal/handlers/render"
	"github.com/nkiryanov/insightboard/internal/logger"
	"github.com/nkiryanov/insightboard/internal/models"
)

type userRepo interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

func handleUserMe(users userRepo, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityctx.FromContext(r.Context())
		if !ok {
			render.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		user, err := users.GetUserByID(r.Context(), identity.UserID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				// Token outlived the account
				render.Error(w, "Unauthorized", http.StatusUnauthorized)
			default:
				l.Error("failed to load user", "error", err)
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, userResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	})
}
