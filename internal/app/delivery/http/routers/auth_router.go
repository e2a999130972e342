package routers

import (
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, signInLimiter *middlewares.SignInLimiter, authController *controllers.AuthController) {
	router.Group(func(r chi.Router) {
		r.Use(signInLimiter.Limit)
		r.Use(middlewares.OptionalAuthenticate)
		r.Post("/signup", authController.SignUp)
		r.Post("/signin", authController.SignIn)
		r.Post("/admin/signin", authController.AdminSignIn)
	})

	router.With(middlewares.Authenticate).Post("/signout", authController.SignOut)
	router.With(middlewares.Authenticate).Get("/session", authController.Session)
	router.With(middlewares.Authenticate).Get("/landing", authController.Landing)
}
