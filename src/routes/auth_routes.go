package routes

import (
	"pulsepad-backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func authRoutes(app *fiber.App, h Handlers) {
	auth := app.Group("/auth")

	auth.Post("/login", h.Auth.Login)
	auth.Get("/google/url", h.Auth.GoogleURL)
	auth.Post("/google", h.Auth.GoogleLogin)
	auth.Get("/verify", middleware.AuthJWT, h.Auth.Verify)
	auth.Post("/logout", middleware.AuthJWT, h.Auth.Logout)
}
