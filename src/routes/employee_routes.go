package routes

import (
	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

func employeeRoutes(app *fiber.App, h Handlers) {
	employee := app.Group("/employee", middleware.AuthJWT, middleware.RequireRoles(models.RoleEmployee))

	employee.Get("/assessments", h.Assessments.ListMine)
	employee.Get("/assessments/:id", h.Assessments.GetMine)
	employee.Put("/assessments/:id/submit", h.Assessments.Submit)
	employee.Get("/performance", h.Assessments.MyPerformance)

	employee.Get("/projects", h.Projects.ListMine)
	employee.Get("/training", h.Training.ListMine)
	employee.Put("/training/:id/status", h.Training.UpdateMyStatus)
	employee.Get("/updates", h.Updates.ListMine)
	employee.Post("/updates", h.Updates.Create)

	employee.Get("/notifications", h.Notifications.List)
	employee.Put("/notifications/:id/read", h.Notifications.MarkRead)
}
