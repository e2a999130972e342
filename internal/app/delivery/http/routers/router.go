package routers

import (
	"fmt"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// Controllers groups every HTTP handler set mounted by SetupRoutes.
type Controllers struct {
	Auth         *controllers.AuthController
	Navigation   *controllers.NavigationController
	Notification *controllers.NotificationController
	Profile      *controllers.ProfileController
	Appointment  *controllers.AppointmentController
	Practitioner *controllers.PractitionerController
	HealthCenter *controllers.HealthCenterController
	Affiliation  *controllers.AffiliationController
	Patient      *controllers.PatientController
	Settings     *controllers.SettingsController
	Dashboard    *controllers.DashboardController
	Operations   *controllers.OperationsController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	accessLogger *logrus.Logger,
	middlewares *middlewares.Middlewares,
	signInLimiter *middlewares.SignInLimiter,
	handlers Controllers,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Location", "Retry-After", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.RequestLogger(internalConfig.App, accessLogger))
	router.Use(middlewares.ErrorHandler)
	router.Use(metrics.Instrument)
	router.Use(middlewares.LimitBody)

	router.Handle("/metrics", metrics.Handler())

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, signInLimiter, handlers.Auth)
			})

			r.Route("/navigation", func(r chi.Router) {
				attachNavigationRoutes(r, middlewares, handlers.Navigation)
			})

			r.Route("/notifications", func(r chi.Router) {
				attachNotificationRoutes(r, middlewares, handlers.Notification)
			})

			r.Route("/profile", func(r chi.Router) {
				attachProfileRoutes(r, middlewares, handlers.Profile)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, handlers.Appointment)
			})

			r.Route("/practitioners", func(r chi.Router) {
				attachPractitionerRoutes(r, middlewares, handlers.Practitioner)
			})

			r.Route("/health-centers", func(r chi.Router) {
				attachHealthCenterRoutes(r, middlewares, handlers.HealthCenter)
			})

			r.Route("/practitioner-centers", func(r chi.Router) {
				attachAffiliationRoutes(r, middlewares, handlers.Affiliation)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, middlewares, handlers.Patient)
			})

			r.Route("/settings", func(r chi.Router) {
				attachSettingsRoutes(r, middlewares, handlers.Settings)
			})

			r.Route("/dashboard", func(r chi.Router) {
				attachDashboardRoutes(r, middlewares, handlers.Dashboard)
			})

			r.Route("/operations", func(r chi.Router) {
				attachOperationsRoutes(r, middlewares, handlers.Operations)
			})
		})
	})
}
