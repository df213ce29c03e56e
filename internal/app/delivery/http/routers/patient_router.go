package routers

import (
	"fmt"

	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, mw *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Use(mw.Authenticate)

	staffOnly := mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist)

	router.With(staffOnly).Post("/", patientController.Create)
	router.With(mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist, constvars.RoleDoctor)).Get("/", patientController.FindAll)

	idPattern := fmt.Sprintf("/{%s}", constvars.URLParamPatientID)
	staffOrSelf := mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist, constvars.RolePatient)

	// Reads are open to any session; the usecase restricts patients to
	// their own record.
	router.Get(idPattern, patientController.FindByID)
	router.With(staffOrSelf).Put(idPattern, patientController.Update)
	router.With(staffOrSelf).Put(idPattern+"/photo", patientController.UploadPhoto)
	router.With(staffOnly).Delete(idPattern, patientController.Deactivate)
}
