package routers

import (
	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, mw *middlewares.Middlewares, loginLimiter *middlewares.RateLimiter, authController *controllers.AuthController) {
	router.Post("/register", authController.Register)
	router.With(loginLimiter.Limit).Post("/login", authController.Login)
	router.With(mw.Authenticate).Post("/logout", authController.Logout)
	router.With(mw.Authenticate).Get("/me", authController.WhoAmI)
	router.With(mw.Authenticate, mw.RequireRoles(constvars.RoleAdmin)).Post("/users", authController.CreateStaffUser)
}
