package handlers

import (
	"net/http"

	"github.com/nkiryanov/insightboard/internal/handlers/middleware"
	"github.com/nkiryanov/insightboard/internal/logger"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	auth authService,
	users userRepo,
	dashboards dashboardService,
	widgets widgetService,
	logger logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(auth)

	api := http.NewServeMux()

	api.Handle("POST /auth/register", handleRegister(auth, logger))
	api.Handle("POST /auth/login", handleLogin(auth, logger))

	api.Handle("GET /me", withAuth(handleUserMe(users, logger)))

	api.Handle("POST /dashboards", withAuth(handleCreateDashboard(dashboards, logger)))
	api.Handle("GET /dashboards", withAuth(handleListDashboards(dashboards, logger)))
	api.Handle("GET /dashboards/{id}", withAuth(handleGetDashboard(dashboards, logger)))
	api.Handle("PUT /dashboards/{id}", withAuth(handleUpdateDashboard(dashboards, logger)))
	api.Handle("DELETE /dashboards/{id}", withAuth(handleDeleteDashboard(dashboards, logger)))

	api.Handle("GET /data/github", withAuth(handleGitHubWidget(widgets, logger)))
	api.Handle("GET /data/weather", withAuth(handleWeatherWidget(widgets, logger)))
	api.Handle("GET /data/news", withAuth(handleNewsWidget(widgets, logger)))
	api.Handle("GET /data/crypto", withAuth(handleCryptoWidget(widgets, logger)))
	api.Handle("GET /data/status", withAuth(handleStatusWidget(widgets, logger)))

	root := http.NewServeMux()
	root.Handle("GET /healthz", handleHealthz())
	root.Handle("/api/", http.StripPrefix("/api", api))

	return chain(root,
		middleware.LoggerMiddleware(logger),
	)
}
