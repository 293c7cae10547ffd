package routes

import (
	"pulsepad-backend/src/controllers"
	"pulsepad-backend/src/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Auth          *controllers.AuthController
	Assessments   *controllers.AssessmentController
	Employees     *controllers.EmployeeController
	Projects      *controllers.ProjectController
	Candidates    *controllers.CandidateController
	Training      *controllers.TrainingController
	Updates       *controllers.UpdateController
	Notifications *controllers.NotificationController
	AuditLogs     *controllers.AuditLogController
	Users         *controllers.UserController
	Health        *controllers.HealthController
	Metrics       *middleware.Metrics
}

func InitRoutes(app *fiber.App, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ PulsePad API is running...")
	})
	app.Get("/health", h.Health.Health)
	if h.Metrics != nil {
		app.Get("/metrics", h.Metrics.Handler())
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	authRoutes(app, h)
	adminRoutes(app, h)
	employeeRoutes(app, h)
	clientRoutes(app, h)
}
