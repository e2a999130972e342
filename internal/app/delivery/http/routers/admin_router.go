package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/app/services/core/guard"

	"github.com/go-chi/chi/v5"
)

// adminOnly gates a resource behind the admin route guard.
func adminOnly(router chi.Router, middlewares *middlewares.Middlewares) {
	router.Use(middlewares.IdentifySession)
	router.Use(middlewares.RequireView(guard.RequireAdmin))
}

func attachPractitionerRoutes(router chi.Router, middlewares *middlewares.Middlewares, practitionerController *controllers.PractitionerController) {
	adminOnly(router, middlewares)
	router.Get("/", practitionerController.List)
	router.Get("/available-users", practitionerController.AvailableUsers)
	router.Post("/", practitionerController.Create)
	router.Put("/{id}", practitionerController.Update)
	router.Delete("/{id}", practitionerController.Delete)
}

func attachHealthCenterRoutes(router chi.Router, middlewares *middlewares.Middlewares, healthCenterController *controllers.HealthCenterController) {
	adminOnly(router, middlewares)
	router.Get("/", healthCenterController.List)
	router.Post("/", healthCenterController.Create)
	router.Put("/{id}", healthCenterController.Update)
	router.Delete("/{id}", healthCenterController.Delete)
}

func attachAffiliationRoutes(router chi.Router, middlewares *middlewares.Middlewares, affiliationController *controllers.AffiliationController) {
	adminOnly(router, middlewares)
	router.Get("/", affiliationController.List)
	router.Post("/", affiliationController.Create)
	router.Delete("/{id}", affiliationController.Delete)
}

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	adminOnly(router, middlewares)
	router.Get("/", patientController.List)
	router.Put("/{id}", patientController.Update)
	router.Delete("/{id}", patientController.Deactivate)
}

func attachSettingsRoutes(router chi.Router, middlewares *middlewares.Middlewares, settingsController *controllers.SettingsController) {
	adminOnly(router, middlewares)
	router.Get("/", settingsController.Get)
	router.Put("/", settingsController.Save)
}

func attachDashboardRoutes(router chi.Router, middlewares *middlewares.Middlewares, dashboardController *controllers.DashboardController) {
	adminOnly(router, middlewares)
	router.Get("/stats", dashboardController.Stats)
}

func attachOperationsRoutes(router chi.Router, middlewares *middlewares.Middlewares, operationsController *controllers.OperationsController) {
	router.With(middlewares.RequireOperatorAPIKey).Post("/sessions/purge", operationsController.PurgeSessions)
}
