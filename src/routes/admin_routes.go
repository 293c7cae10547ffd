package routes

import (
	"pulsepad-backend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func adminRoutes(app *fiber.App, h Handlers) {
	admin := app.Group("/admin", middleware.AuthJWT, middleware.RequireRoles())

	assessments := admin.Group("/assessments")
	assessments.Get("/", h.Assessments.GetToday)
	assessments.Post("/", h.Assessments.Assign)
	assessments.Put("/submissions/:id", h.Assessments.Validate)
	assessments.Put("/submissions/:id/approve-all", h.Assessments.ApproveAll)
	assessments.Delete("/submissions/:id", h.Assessments.Delete)
	assessments.Get("/performance", h.Assessments.Leaderboard)
	assessments.Get("/performance/:employeeId", h.Assessments.EmployeePerformance)

	templates := assessments.Group("/templates")
	templates.Get("/", h.Assessments.ListTemplates)
	templates.Post("/", h.Assessments.CreateTemplate)
	templates.Get("/:id", h.Assessments.GetTemplate)
	templates.Put("/:id", h.Assessments.UpdateTemplate)
	templates.Delete("/:id", h.Assessments.DeleteTemplate)

	employees := admin.Group("/employees")
	employees.Get("/", h.Employees.List)
	employees.Post("/", h.Employees.Create)
	employees.Get("/:id", h.Employees.Get)
	employees.Put("/:id", h.Employees.Update)
	employees.Delete("/:id", h.Employees.Delete)

	projects := admin.Group("/projects")
	projects.Get("/", h.Projects.List)
	projects.Post("/", h.Projects.Create)
	projects.Get("/:id", h.Projects.Get)
	projects.Put("/:id", h.Projects.Update)
	projects.Delete("/:id", h.Projects.Delete)
	projects.Get("/:id/qrcode", h.Projects.QRCode)

	candidates := admin.Group("/candidates")
	candidates.Get("/", h.Candidates.List)
	candidates.Post("/", h.Candidates.Create)
	candidates.Get("/:id", h.Candidates.Get)
	candidates.Put("/:id", h.Candidates.Update)
	candidates.Delete("/:id", h.Candidates.Delete)

	training := admin.Group("/training")
	training.Get("/", h.Training.List)
	training.Post("/", h.Training.Create)
	training.Get("/:id", h.Training.Get)
	training.Put("/:id", h.Training.Update)
	training.Delete("/:id", h.Training.Delete)

	users := admin.Group("/users")
	users.Get("/", h.Users.List)
	users.Post("/", h.Users.Create)
	users.Get("/:id", h.Users.Get)
	users.Put("/:id", h.Users.Update)
	users.Delete("/:id", h.Users.Delete)

	admin.Get("/updates", h.Updates.List)
	admin.Get("/audit-logs", h.AuditLogs.List)
}
