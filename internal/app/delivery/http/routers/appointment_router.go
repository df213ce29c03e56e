package routers

import (
	"fmt"

	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, mw *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(mw.Authenticate)

	router.With(mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist, constvars.RolePatient)).Post("/", appointmentController.Create)
	router.Get("/", appointmentController.FindAll)

	idPattern := fmt.Sprintf("/{%s}", constvars.URLParamAppointmentID)

	router.Get(idPattern, appointmentController.FindByID)
	router.With(mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist, constvars.RoleDoctor)).Patch(idPattern+"/status", appointmentController.UpdateStatus)
	// Staff cancel anything still open; the owning patient may cancel too
	// (ownership enforced in the usecase).
	router.With(mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist, constvars.RolePatient)).Patch(idPattern+"/cancel", appointmentController.Cancel)
}
