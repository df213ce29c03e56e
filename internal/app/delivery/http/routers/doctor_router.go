package routers

import (
	"fmt"

	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, mw *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Use(mw.Authenticate)

	adminOnly := mw.RequireRoles(constvars.RoleAdmin)

	router.With(adminOnly).Post("/", doctorController.Create)
	router.Get("/", doctorController.FindAll)

	idPattern := fmt.Sprintf("/{%s}", constvars.URLParamDoctorID)

	router.Get(idPattern, doctorController.FindByID)
	router.With(adminOnly).Put(idPattern, doctorController.Update)
	// Doctors manage their own plan; the usecase pins them to it.
	router.With(mw.RequireRoles(constvars.RoleAdmin, constvars.RoleDoctor)).Put(idPattern+"/availability", doctorController.UpdateAvailability)
	router.Get(idPattern+"/slots", doctorController.FindSlots)
}
