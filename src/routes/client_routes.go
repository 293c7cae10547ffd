package routes

import (
	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func clientRoutes(app *fiber.App, h Handlers) {
	client := app.Group("/client", middleware.AuthJWT, middleware.RequireRoles(models.RoleClient))

	client.Get("/projects", h.Projects.ListForClient)
	client.Get("/projects/:id", h.Projects.GetForClient)
	client.Get("/notifications", h.Notifications.List)
	client.Put("/notifications/:id/read", h.Notifications.MarkRead)
}
