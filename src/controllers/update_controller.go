package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/services/updates"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type UpdateService interface {
	Create(ctx context.Context, employeeID string, in models.DailyUpdateInput) (*models.DailyUpdate, error)
	ListForEmployee(ctx context.Context, employeeID string, limit int64) ([]models.DailyUpdate, error)
	List(ctx context.Context, params models.PaginationParams, f updates.Filter) ([]models.DailyUpdate, int64, error)
}

type UpdateController struct {
	svc UpdateService
}

func NewUpdateController(svc UpdateService) *UpdateController {
	return &UpdateController{svc: svc}
}

// List godoc
// @Summary      List daily updates
// @Tags         admin-updates
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "Page number" default(1)
// @Param        limit       query  int     false  "Items per page" default(10)
// @Param        employeeId  query  string  false  "Filter by employee"
// @Param        projectId   query  string  false  "Filter by project"
// @Param        date        query  string  false  "Filter by date (YYYY-MM-DD)"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/updates [get]
func (uc *UpdateController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	var f updates.Filter
	if err := c.QueryParser(&f); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	list, total, err := uc.svc.List(c.UserContext(), params, f)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

// ListMine godoc
// @Summary      My recent daily updates
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "How many" default(30)
// @Success      200  {array}  models.DailyUpdate
// @Router       /employee/updates [get]
func (uc *UpdateController) ListMine(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.RefID == "" {
		return utils.HandleError(c, fiber.StatusForbidden, "Account is not linked to an employee profile")
	}
	list, err := uc.svc.ListForEmployee(c.UserContext(), actor.RefID, int64(c.QueryInt("limit", 30)))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Post a daily update
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.DailyUpdateInput  true  "Update"
// @Success      201   {object}  models.DailyUpdate
// @Failure      400   {object}  models.ErrorResponse
// @Router       /employee/updates [post]
func (uc *UpdateController) Create(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.RefID == "" {
		return utils.HandleError(c, fiber.StatusForbidden, "Account is not linked to an employee profile")
	}
	var in models.DailyUpdateInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	u, err := uc.svc.Create(c.UserContext(), actor.RefID, in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}
