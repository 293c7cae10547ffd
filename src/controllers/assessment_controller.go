package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/services/assessments"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AssessmentService interface {
	Today(ctx context.Context) (*assessments.TodayOverview, error)
	Assign(ctx context.Context, actor models.Actor, in models.AssignAssessmentsInput) (int, error)
	GetForEmployee(ctx context.Context, actor models.Actor, id string) (*models.AssessmentWithTemplate, error)
	ListForEmployee(ctx context.Context, employeeID, date string) ([]models.AssessmentWithTemplate, error)
	Submit(ctx context.Context, actor models.Actor, id string, in models.SubmitAssessmentInput) (*models.DailyAssessment, error)
	Validate(ctx context.Context, actor models.Actor, id string, in models.ValidateAssessmentInput) (*models.DailyAssessment, error)
	ApproveAll(ctx context.Context, actor models.Actor, id string) (*models.DailyAssessment, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	EmployeePerformance(ctx context.Context, employeeID, month string) (*models.EmployeePerformance, error)
	Leaderboard(ctx context.Context, month string) ([]models.EmployeePerformance, error)

	ListTemplates(ctx context.Context) ([]models.AssessmentTemplate, error)
	GetTemplate(ctx context.Context, id string) (*models.AssessmentTemplate, error)
	CreateTemplate(ctx context.Context, actor models.Actor, in models.AssessmentTemplateInput) (*models.AssessmentTemplate, error)
	UpdateTemplate(ctx context.Context, actor models.Actor, id string, in models.AssessmentTemplateInput) (*models.AssessmentTemplate, error)
	DeleteTemplate(ctx context.Context, actor models.Actor, id string) error
}

type AssessmentController struct {
	svc     AssessmentService
	metrics *middleware.Metrics
}

func NewAssessmentController(svc AssessmentService, metrics *middleware.Metrics) *AssessmentController {
	return &AssessmentController{svc: svc, metrics: metrics}
}

// GetToday godoc
// @Summary      Today's assessments
// @Description  Every assessment dated today together with all templates
// @Tags         admin-assessments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  assessments.TodayOverview
// @Failure      500  {object}  models.ErrorResponse
// @Router       /admin/assessments [get]
func (ac *AssessmentController) GetToday(c *fiber.Ctx) error {
	overview, err := ac.svc.Today(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(overview)
}

// Assign godoc
// @Summary      Assign daily assessments
// @Description  Creates today's record for each employee × template pair that has none
// @Tags         admin-assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.AssignAssessmentsInput  true  "Employees and templates"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Router       /admin/assessments [post]
func (ac *AssessmentController) Assign(c *fiber.Ctx) error {
	var in models.AssignAssessmentsInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}

	created, err := ac.svc.Assign(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	ac.metrics.Track("assigned", created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Assessments assigned successfully",
		"created": created,
	})
}

// Validate godoc
// @Summary      Validate a submission
// @Description  Applies admin corrections, recomputes finalScore and marks the record VALIDATED. A client finalScore is ignored.
// @Tags         admin-assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Assessment ID"
// @Param        body  body      models.ValidateAssessmentInput  true  "Corrections"
// @Success      200   {object}  models.DailyAssessment
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Router       /admin/assessments/submissions/{id} [put]
func (ac *AssessmentController) Validate(c *fiber.Ctx) error {
	var in models.ValidateAssessmentInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}

	a, err := ac.svc.Validate(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	ac.metrics.Track("validated", 1)
	return c.JSON(a)
}

// ApproveAll godoc
// @Summary      Approve every checklist item
// @Tags         admin-assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  models.DailyAssessment
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/assessments/submissions/{id}/approve-all [put]
func (ac *AssessmentController) ApproveAll(c *fiber.Ctx) error {
	a, err := ac.svc.ApproveAll(c.UserContext(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	ac.metrics.Track("validated", 1)
	return c.JSON(a)
}

// Delete godoc
// @Summary      Delete an assessment
// @Tags         admin-assessments
// @Security     BearerAuth
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/assessments/submissions/{id} [delete]
func (ac *AssessmentController) Delete(c *fiber.Ctx) error {
	if err := ac.svc.Delete(c.UserContext(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(message("Assessment deleted successfully"))
}

// Leaderboard godoc
// @Summary      Employee leaderboard
// @Description  Mean finalScore per employee over VALIDATED records, highest first
// @Tags         admin-assessments
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month filter (YYYY-MM)"
// @Success      200    {array}   models.EmployeePerformance
// @Failure      400    {object}  models.ErrorResponse
// @Router       /admin/assessments/performance [get]
func (ac *AssessmentController) Leaderboard(c *fiber.Ctx) error {
	rows, err := ac.svc.Leaderboard(c.UserContext(), c.Query("month"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(rows)
}

// EmployeePerformance godoc
// @Summary      One employee's performance
// @Tags         admin-assessments
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  path      string  true   "Employee ID"
// @Param        month       query     string  false  "Month filter (YYYY-MM)"
// @Success      200         {object}  models.EmployeePerformance
// @Failure      400         {object}  models.ErrorResponse
// @Router       /admin/assessments/performance/{employeeId} [get]
func (ac *AssessmentController) EmployeePerformance(c *fiber.Ctx) error {
	row, err := ac.svc.EmployeePerformance(c.UserContext(), c.Params("employeeId"), c.Query("month"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(row)
}

// ---- employee side ----

// ListMine godoc
// @Summary      My assessments
// @Tags         employee-assessments
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Date filter (YYYY-MM-DD)"
// @Success      200   {array}   models.AssessmentWithTemplate
// @Router       /employee/assessments [get]
func (ac *AssessmentController) ListMine(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.RefID == "" {
		return utils.HandleError(c, fiber.StatusForbidden, "Account is not linked to an employee profile")
	}
	list, err := ac.svc.ListForEmployee(c.UserContext(), actor.RefID, c.Query("date"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetMine godoc
// @Summary      One of my assessments
// @Tags         employee-assessments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assessment ID"
// @Success      200  {object}  models.AssessmentWithTemplate
// @Failure      404  {object}  models.ErrorResponse
// @Router       /employee/assessments/{id} [get]
func (ac *AssessmentController) GetMine(c *fiber.Ctx) error {
	a, err := ac.svc.GetForEmployee(c.UserContext(), middleware.ActorFrom(c), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(a)
}

// Submit godoc
// @Summary      Submit answers
// @Tags         employee-assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                        true  "Assessment ID"
// @Param        body  body      models.SubmitAssessmentInput  true  "Responses keyed by checklist item id"
// @Success      200   {object}  models.DailyAssessment
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /employee/assessments/{id}/submit [put]
func (ac *AssessmentController) Submit(c *fiber.Ctx) error {
	var in models.SubmitAssessmentInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}

	a, err := ac.svc.Submit(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	ac.metrics.Track("submitted", 1)
	return c.JSON(a)
}

// MyPerformance godoc
// @Summary      My performance
// @Tags         employee-assessments
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "Month filter (YYYY-MM)"
// @Success      200    {object}  models.EmployeePerformance
// @Router       /employee/performance [get]
func (ac *AssessmentController) MyPerformance(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.RefID == "" {
		return utils.HandleError(c, fiber.StatusForbidden, "Account is not linked to an employee profile")
	}
	row, err := ac.svc.EmployeePerformance(c.UserContext(), actor.RefID, c.Query("month"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(row)
}
