package middleware

import (
	"context"
	"net/http"

	"github.com/nkiryanov/insightboard/internal/handlers/identityctx"
	"github.com/nkiryanov/insightboard/internal/handlers/render"
	"github.com/nkiryanov/insightboard/internal/models"
)

type authService interface {
	IdentityFromRequest(ctx context.Context, r *http.Request) (models.Identity, error)
}

// AuthMiddleware rejects requests without a valid bearer token and puts
// the token identity into the request context
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := as.IdentityFromRequest(r.Context(), r)
			if err != nil {
				render.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := identityctx.New(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
