package routers

import (
	"fmt"

	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBillRoutes(router chi.Router, mw *middlewares.Middlewares, billController *controllers.BillController) {
	router.Use(mw.Authenticate)

	billingDesk := mw.RequireRoles(constvars.RoleAdmin, constvars.RoleReceptionist)

	router.With(billingDesk).Post("/", billController.Create)
	// Patients see their own bills only; scoping happens in the usecase.
	router.Get("/", billController.FindAll)

	idPattern := fmt.Sprintf("/{%s}", constvars.URLParamBillID)

	router.Get(idPattern, billController.FindByID)
	router.With(billingDesk).Put(idPattern, billController.Update)
	router.With(billingDesk).Post(idPattern+"/payments", billController.RecordPayment)
	router.With(billingDesk).Patch(idPattern+"/cancel", billController.Cancel)
}
