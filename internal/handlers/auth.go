package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/insightboard/internal/apperrors"
	"github.com/nkiryanov/insightboard/internal/handlers/render"
	"github.com/nkiryanov/insightboard/internal/logger"
	"github.com/nkiryanov/insightboard/internal/models"
)

type authService interface {
	// Register a user. Has to return apperrors.ErrUserAlreadyExists on a
	// duplicate email
	Register(ctx context.Context, email string, password string) (models.User, models.IssuedToken, error)

	// Login with email and password. Wrong password and unknown email are
	// the same apperrors.ErrInvalidCredentials
	Login(ctx context.Context, email string, password string) (models.User, models.IssuedToken, error)

	// Read the request and return the token identity or error
	IdentityFromRequest(ctx context.Context, r *http.Request) (models.Identity, error)
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func newAuthResponse(user models.User, token models.IssuedToken) authResponse {
	return authResponse{
		Token: token.Value,
		User: userResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}
}

func handleRegister(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, token, err := auth.Register(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.Error(w, "Email already registered", http.StatusBadRequest)
			default:
				l.Error("failed to register user", "error", err)
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSONWithStatus(w, newAuthResponse(user, token), http.StatusCreated)
	})
}

func handleLogin(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, token, err := auth.Login(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.Error(w, "Invalid credentials", http.StatusUnauthorized)
			default:
				l.Error("failed to login user", "error", err)
				render.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, newAuthResponse(user, token))
	})
}
