package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type TrainingService interface {
	List(ctx context.Context, params models.PaginationParams, employeeID, status string) ([]models.TrainingTask, int64, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]models.TrainingTask, error)
	Get(ctx context.Context, id string) (*models.TrainingTask, error)
	Create(ctx context.Context, in models.TrainingTaskInput) (*models.TrainingTask, error)
	Update(ctx context.Context, id string, in models.TrainingTaskInput) (*models.TrainingTask, error)
	UpdateStatus(ctx context.Context, employeeID, id, status string) (*models.TrainingTask, error)
	Delete(ctx context.Context, id string) error
}

type TrainingController struct {
	svc     TrainingService
	auditor Auditor
}

func NewTrainingController(svc TrainingService, auditor Auditor) *TrainingController {
	return &TrainingController{svc: svc, auditor: auditor}
}

// List godoc
// @Summary      List training tasks
// @Tags         admin-training
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "Page number" default(1)
// @Param        limit       query  int     false  "Items per page" default(10)
// @Param        employeeId  query  string  false  "Filter by employee"
// @Param        status      query  string  false  "pending, in_progress or completed"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/training [get]
func (tc *TrainingController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	list, total, err := tc.svc.List(c.UserContext(), params, c.Query("employeeId"), c.Query("status"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

func (tc *TrainingController) Get(c *fiber.Ctx) error {
	task, err := tc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(task)
}

func (tc *TrainingController) Create(c *fiber.Ctx) error {
	var in models.TrainingTaskInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	task, err := tc.svc.Create(c.UserContext(), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, tc.auditor, models.ActionCreate, "trainingTask", task.ID.Hex(), task.Title)
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (tc *TrainingController) Update(c *fiber.Ctx) error {
	var in models.TrainingTaskInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	task, err := tc.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, tc.auditor, models.ActionUpdate, "trainingTask", task.ID.Hex(), task.Title)
	return c.JSON(task)
}

func (tc *TrainingController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := tc.svc.Delete(c.UserContext(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, tc.auditor, models.ActionDelete, "trainingTask", id, "")
	return c.JSON(message("Training task deleted successfully"))
}

// ListMine godoc
// @Summary      My training tasks
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.TrainingTask
// @Router       /employee/training [get]
func (tc *TrainingController) ListMine(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.RefID == "" {
		return c.JSON([]models.TrainingTask{})
	}
	list, err := tc.svc.ListForEmployee(c.UserContext(), actor.RefID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// UpdateMyStatus godoc
// @Summary      Update my training task status
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Training task ID"
// @Param        body  body      models.TrainingStatusInput  true  "Status"
// @Success      200   {object}  models.TrainingTask
// @Failure      404   {object}  models.ErrorResponse
// @Router       /employee/training/{id}/status [put]
func (tc *TrainingController) UpdateMyStatus(c *fiber.Ctx) error {
	var in models.TrainingStatusInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	task, err := tc.svc.UpdateStatus(c.UserContext(), middleware.ActorFrom(c).RefID, c.Params("id"), in.Status)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(task)
}
