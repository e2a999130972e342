package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/app/services/core/guard"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.IdentifySession)

	router.Get("/statuses", appointmentController.Statuses)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.RequireView(guard.RequireAdmin))
		r.Get("/", appointmentController.List)
		r.Get("/count", appointmentController.Count)
	})

	router.Group(func(r chi.Router) {
		r.Use(middlewares.RequireView(guard.RequireAuthenticated))
		r.Post("/", appointmentController.Create)
		r.Patch("/{id}/status", appointmentController.UpdateStatus)
		r.Delete("/{id}", appointmentController.Delete)
	})
}
