package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/app/services/core/guard"

	"github.com/go-chi/chi/v5"
)

func attachNavigationRoutes(router chi.Router, middlewares *middlewares.Middlewares, navigationController *controllers.NavigationController) {
	router.With(middlewares.IdentifySession).Get("/decision", navigationController.Decide)
}

func attachNotificationRoutes(router chi.Router, middlewares *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.With(middlewares.Authenticate).Get("/", notificationController.Drain)
}

func attachProfileRoutes(router chi.Router, middlewares *middlewares.Middlewares, profileController *controllers.ProfileController) {
	router.With(middlewares.Authenticate, middlewares.RequireView(guard.RequireAuthenticated)).Put("/avatar", profileController.UploadAvatar)
}
