package routers

import (
	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDashboardRoutes(router chi.Router, mw *middlewares.Middlewares, dashboardController *controllers.DashboardController) {
	router.Use(mw.Authenticate)

	router.With(mw.RequireRoles(constvars.RoleAdmin)).Get("/stats", dashboardController.Get)
}
